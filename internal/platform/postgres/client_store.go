package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/contracts-api/internal/domain"
	"github.com/phrazzld/contracts-api/internal/platform/logger"
	"github.com/phrazzld/contracts-api/internal/store"
)

const clientColumns = `id, tenant_id, code, nickname, company_name, cnpj`

// PostgresClientStore implements the store.ClientStore interface
// using a PostgreSQL database as the storage backend.
type PostgresClientStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresClientStore creates a new PostgreSQL implementation of the ClientStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresClientStore(db store.DBTX, logger *slog.Logger) *PostgresClientStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresClientStore{
		db:     db,
		logger: logger.With(slog.String("component", "client_store")),
	}
}

// Ensure PostgresClientStore implements store.ClientStore interface
var _ store.ClientStore = (*PostgresClientStore)(nil)

func scanClient(row rowScanner) (*domain.Client, error) {
	var c domain.Client
	var id uuid.UUID
	if err := row.Scan(&id, &c.TenantID, &c.Code, &c.Nickname, &c.CompanyName, &c.CNPJ); err != nil {
		return nil, err
	}
	c.ID = domain.Persisted(id)
	return &c, nil
}

func (s *PostgresClientStore) findOne(ctx context.Context, where string, args ...any) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE ` + where
	c, err := scanClient(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, store.ErrClientNotFound
		}
		return nil, mapStoreError("client", "find", err)
	}
	return c, nil
}

// FindByID implements store.ClientStore.FindByID.
// Returns store.ErrClientNotFound if the client does not exist.
func (s *PostgresClientStore) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Client, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	c, err := s.findOne(ctx, `tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to get client by ID",
			slog.String("error", err.Error()),
			slog.String("client_id", id.String()))
	}
	return c, err
}

// FindByCNPJ implements store.ClientStore.FindByCNPJ.
func (s *PostgresClientStore) FindByCNPJ(ctx context.Context, tenantID uuid.UUID, cnpj string) (*domain.Client, error) {
	return s.findOne(ctx, `tenant_id = $1 AND cnpj = $2`, tenantID, cnpj)
}

// FindByCode implements store.ClientStore.FindByCode.
func (s *PostgresClientStore) FindByCode(ctx context.Context, tenantID uuid.UUID, code int) (*domain.Client, error) {
	return s.findOne(ctx, `tenant_id = $1 AND code = $2`, tenantID, code)
}

// ListAll implements store.ClientStore.ListAll, ordered by code.
func (s *PostgresClientStore) ListAll(ctx context.Context, tenantID uuid.UUID) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE tenant_id = $1 ORDER BY code, id`
	rows, err := s.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, mapStoreError("client", "list", err)
	}
	defer func() { _ = rows.Close() }()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, mapStoreError("client", "list", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError("client", "list", err)
	}
	return clients, nil
}

// Save implements store.ClientStore.Save.
// Unsaved clients are inserted and receive their ID; others are updated in place.
func (s *PostgresClientStore) Save(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.IsNew() {
		query := `
			INSERT INTO clients (tenant_id, code, nickname, company_name, cnpj)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`
		var id uuid.UUID
		err := s.db.QueryRowContext(ctx, query,
			c.TenantID, c.Code, c.Nickname, c.CompanyName, c.CNPJ,
		).Scan(&id)
		if err != nil {
			log.Warn("failed to insert client", slog.String("error", err.Error()))
			return nil, mapStoreError("client", "save", err)
		}
		c.ID = domain.Persisted(id)
		log.Info("client created", slog.String("client_id", id.String()))
		return c, nil
	}

	query := `
		UPDATE clients
		SET code = $3, nickname = $4, company_name = $5, cnpj = $6, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`
	result, err := s.db.ExecContext(ctx, query,
		c.TenantID, c.ID.UUID, c.Code, c.Nickname, c.CompanyName, c.CNPJ,
	)
	if err != nil {
		log.Warn("failed to update client",
			slog.String("error", err.Error()),
			slog.String("client_id", c.ID.UUID.String()))
		return nil, mapStoreError("client", "save", err)
	}
	if err := CheckRowsAffected(result, store.ErrClientNotFound); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete implements store.ClientStore.Delete.
// Returns store.ErrClientNotFound if the client does not exist and
// store.ErrDeleteFailed while contracts still reference it.
func (s *PostgresClientStore) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return mapDeleteError(err, "client")
	}
	if err := CheckRowsAffected(result, store.ErrClientNotFound); err != nil {
		return err
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("client deleted", slog.String("client_id", id.String()))
	return nil
}
