package postgres

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(Migrations, MigrationsDir)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	for _, e := range entries {
		data, err := fs.ReadFile(Migrations, MigrationsDir+"/"+e.Name())
		require.NoError(t, err)
		body := string(data)
		assert.Contains(t, body, "-- +goose Up", e.Name())
		assert.Contains(t, body, "-- +goose Down", e.Name())
	}
}

func TestMigrationsDeclareUniqueConstraints(t *testing.T) {
	var all strings.Builder
	entries, err := fs.ReadDir(Migrations, MigrationsDir)
	require.NoError(t, err)
	for _, e := range entries {
		data, err := fs.ReadFile(Migrations, MigrationsDir+"/"+e.Name())
		require.NoError(t, err)
		all.Write(data)
	}

	for constraint := range constraintFields {
		assert.Contains(t, all.String(), "CONSTRAINT "+constraint+" UNIQUE", constraint)
	}
}

func TestContractReferencesAreTenantScoped(t *testing.T) {
	data, err := fs.ReadFile(Migrations, MigrationsDir+"/00003_create_contracts.sql")
	require.NoError(t, err)
	body := string(data)

	assert.Contains(t, body, "FOREIGN KEY (tenant_id, client_id)\n        REFERENCES clients (tenant_id, id)")
	assert.Contains(t, body, "FOREIGN KEY (tenant_id, service_id)\n        REFERENCES services (tenant_id, id)")
	assert.NotContains(t, body, "REFERENCES clients(id)")
	assert.NotContains(t, body, "REFERENCES services(id)")

	for file, constraint := range map[string]string{
		"00001_create_clients.sql":  "CONSTRAINT clients_tenant_id_key UNIQUE (tenant_id, id)",
		"00002_create_services.sql": "CONSTRAINT services_tenant_id_key UNIQUE (tenant_id, id)",
	} {
		data, err := fs.ReadFile(Migrations, MigrationsDir+"/"+file)
		require.NoError(t, err)
		assert.Contains(t, string(data), constraint, file)
	}
}
