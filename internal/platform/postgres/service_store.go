package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/contracts-api/internal/domain"
	"github.com/phrazzld/contracts-api/internal/platform/logger"
	"github.com/phrazzld/contracts-api/internal/store"
)

const serviceColumns = `id, tenant_id, name, code, default_price`

// PostgresServiceStore implements store.ServiceStore over PostgreSQL.
type PostgresServiceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresServiceStore creates a PostgresServiceStore. A nil logger means slog.Default().
func NewPostgresServiceStore(db store.DBTX, logger *slog.Logger) *PostgresServiceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresServiceStore{
		db:     db,
		logger: logger.With(slog.String("component", "service_store")),
	}
}

var _ store.ServiceStore = (*PostgresServiceStore)(nil)

func scanService(row rowScanner) (*domain.Service, error) {
	var svc domain.Service
	var id uuid.UUID
	var price sql.NullFloat64
	if err := row.Scan(&id, &svc.TenantID, &svc.Name, &svc.Code, &price); err != nil {
		return nil, err
	}
	svc.ID = domain.Persisted(id)
	svc.DefaultPrice = floatPtr(price)
	return &svc, nil
}

func (s *PostgresServiceStore) findOne(ctx context.Context, where string, args ...any) (*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE ` + where
	svc, err := scanService(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, store.ErrServiceNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to query service",
			slog.String("error", err.Error()))
		return nil, mapStoreError("service", "find", err)
	}
	return svc, nil
}

// FindByID returns store.ErrServiceNotFound if the service does not exist.
func (s *PostgresServiceStore) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Service, error) {
	return s.findOne(ctx, `tenant_id = $1 AND id = $2`, tenantID, id)
}

// FindByCode returns store.ErrServiceNotFound if no service carries code.
func (s *PostgresServiceStore) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*domain.Service, error) {
	return s.findOne(ctx, `tenant_id = $1 AND code = $2`, tenantID, code)
}

// ListAll returns the tenant's catalog ordered by name.
func (s *PostgresServiceStore) ListAll(ctx context.Context, tenantID uuid.UUID) ([]*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE tenant_id = $1 ORDER BY name, id`
	rows, err := s.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, mapStoreError("service", "list", err)
	}
	defer func() { _ = rows.Close() }()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, mapStoreError("service", "list", err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError("service", "list", err)
	}
	return services, nil
}

// Save inserts an unsaved service or updates an existing one.
func (s *PostgresServiceStore) Save(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := svc.Validate(); err != nil {
		return nil, err
	}

	if svc.IsNew() {
		var id uuid.UUID
		err := s.db.QueryRowContext(ctx, `
			INSERT INTO services (tenant_id, name, code, default_price)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, svc.TenantID, svc.Name, svc.Code, nullFloat(svc.DefaultPrice)).Scan(&id)
		if err != nil {
			log.Warn("failed to insert service", slog.String("error", err.Error()))
			return nil, mapStoreError("service", "save", err)
		}
		svc.ID = domain.Persisted(id)
		log.Info("service created", slog.String("service_id", id.String()))
		return svc, nil
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE services
		SET name = $3, code = $4, default_price = $5, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`, svc.TenantID, svc.ID.UUID, svc.Name, svc.Code, nullFloat(svc.DefaultPrice))
	if err != nil {
		log.Warn("failed to update service",
			slog.String("error", err.Error()),
			slog.String("service_id", svc.ID.UUID.String()))
		return nil, mapStoreError("service", "save", err)
	}
	if err := CheckRowsAffected(result, store.ErrServiceNotFound); err != nil {
		return nil, err
	}
	return svc, nil
}

// Delete returns store.ErrServiceNotFound if the service does not exist.
func (s *PostgresServiceStore) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM services WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return mapDeleteError(err, "service")
	}
	return CheckRowsAffected(result, store.ErrServiceNotFound)
}
