package service_test

import (
	"bytes"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/contracts-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

var ctxArg = mock.Anything

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

// assignID simulates the repository assigning an id on insert.
func assignID[T any](entity func(*T) *domain.Entity) func(mock.Arguments) {
	return func(args mock.Arguments) {
		e := entity(args.Get(1).(*T))
		if !e.ID.Valid {
			e.ID = domain.Persisted(uuid.New())
		}
	}
}

func persisted(tenantID uuid.UUID) domain.Entity {
	return domain.Entity{ID: domain.Persisted(uuid.New()), TenantID: tenantID}
}

func ptr[T any](v T) *T { return &v }
