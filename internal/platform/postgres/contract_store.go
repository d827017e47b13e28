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

const contractColumns = `id, tenant_id, contract_code, client_id, service_id, quantity,
	unit_price, start_date, end_date, status, observation`

// PostgresContractStore implements the store.ContractStore interface
// using a PostgreSQL database as the storage backend.
type PostgresContractStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresContractStore creates a new PostgreSQL implementation of the ContractStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresContractStore(db store.DBTX, logger *slog.Logger) *PostgresContractStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresContractStore{
		db:     db,
		logger: logger.With(slog.String("component", "contract_store")),
	}
}

// Ensure PostgresContractStore implements store.ContractStore interface
var _ store.ContractStore = (*PostgresContractStore)(nil)

func scanContract(row rowScanner) (*domain.Contract, error) {
	var (
		c           domain.Contract
		id          uuid.UUID
		code        string
		status      string
		endDate     sql.NullTime
		observation sql.NullString
	)
	err := row.Scan(
		&id,
		&c.TenantID,
		&code,
		&c.ClientID,
		&c.ServiceID,
		&c.Quantity,
		&c.UnitPrice,
		&c.StartDate,
		&endDate,
		&status,
		&observation,
	)
	if err != nil {
		return nil, err
	}
	c.ID = domain.Persisted(id)
	c.ContractCode = domain.ContractCode(code)
	c.Status = domain.ContractStatus(status)
	if endDate.Valid {
		t := endDate.Time
		c.EndDate = &t
	}
	c.Observation = stringPtr(observation)
	return &c, nil
}

func nullTime(c *domain.Contract) sql.NullTime {
	if c.EndDate == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *c.EndDate, Valid: true}
}

func (s *PostgresContractStore) findOne(ctx context.Context, where string, args ...any) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE ` + where
	c, err := scanContract(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, store.ErrContractNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to query contract",
			slog.String("error", err.Error()))
		return nil, mapStoreError("contract", "find", err)
	}
	return c, nil
}

func (s *PostgresContractStore) list(ctx context.Context, where string, args ...any) ([]*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE ` + where + ` ORDER BY start_date, id`
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapStoreError("contract", "list", err)
	}
	defer func() { _ = rows.Close() }()

	contracts := make([]*domain.Contract, 0)
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, mapStoreError("contract", "list", err)
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError("contract", "list", err)
	}
	return contracts, nil
}

// FindByID implements store.ContractStore.FindByID.
// Returns store.ErrContractNotFound if the contract does not exist.
func (s *PostgresContractStore) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Contract, error) {
	return s.findOne(ctx, `tenant_id = $1 AND id = $2`, tenantID, id)
}

// FindByCode implements store.ContractStore.FindByCode.
func (s *PostgresContractStore) FindByCode(
	ctx context.Context,
	tenantID uuid.UUID,
	code domain.ContractCode,
) (*domain.Contract, error) {
	return s.findOne(ctx, `tenant_id = $1 AND contract_code = $2`, tenantID, code.String())
}

// FindByClientID implements store.ContractStore.FindByClientID.
func (s *PostgresContractStore) FindByClientID(
	ctx context.Context,
	tenantID, clientID uuid.UUID,
) ([]*domain.Contract, error) {
	return s.list(ctx, `tenant_id = $1 AND client_id = $2`, tenantID, clientID)
}

// ListAll implements store.ContractStore.ListAll.
func (s *PostgresContractStore) ListAll(ctx context.Context, tenantID uuid.UUID) ([]*domain.Contract, error) {
	return s.list(ctx, `tenant_id = $1`, tenantID)
}

// Save implements store.ContractStore.Save.
// A client or service ID that does not exist yields store.ErrInvalidEntity.
func (s *PostgresContractStore) Save(ctx context.Context, c *domain.Contract) (*domain.Contract, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	if c.IsNew() {
		query := `
			INSERT INTO contracts (
				tenant_id, contract_code, client_id, service_id, quantity,
				unit_price, start_date, end_date, status, observation
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`
		var id uuid.UUID
		err := s.db.QueryRowContext(ctx, query,
			c.TenantID,
			c.ContractCode.String(),
			c.ClientID,
			c.ServiceID,
			c.Quantity,
			c.UnitPrice,
			c.StartDate,
			nullTime(c),
			string(c.Status),
			nullString(c.Observation),
		).Scan(&id)
		if err != nil {
			log.Warn("failed to insert contract",
				slog.String("error", err.Error()),
				slog.String("client_id", c.ClientID.String()))
			return nil, mapStoreError("contract", "save", err)
		}
		c.ID = domain.Persisted(id)
		log.Info("contract created",
			slog.String("contract_id", id.String()),
			slog.String("status", string(c.Status)))
		return c, nil
	}

	query := `
		UPDATE contracts
		SET contract_code = $3, client_id = $4, service_id = $5, quantity = $6,
			unit_price = $7, start_date = $8, end_date = $9, status = $10,
			observation = $11, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`
	result, err := s.db.ExecContext(ctx, query,
		c.TenantID,
		c.ID.UUID,
		c.ContractCode.String(),
		c.ClientID,
		c.ServiceID,
		c.Quantity,
		c.UnitPrice,
		c.StartDate,
		nullTime(c),
		string(c.Status),
		nullString(c.Observation),
	)
	if err != nil {
		log.Warn("failed to update contract",
			slog.String("error", err.Error()),
			slog.String("contract_id", c.ID.UUID.String()))
		return nil, mapStoreError("contract", "save", err)
	}
	if err := CheckRowsAffected(result, store.ErrContractNotFound); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete implements store.ContractStore.Delete.
func (s *PostgresContractStore) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM contracts WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return mapStoreError("contract", "delete", err)
	}
	return CheckRowsAffected(result, store.ErrContractNotFound)
}
