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

const userColumns = `id, tenant_id, email, password_hash, role`

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
// It stores password hashes as given; hashing belongs to the caller.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var id uuid.UUID
	var role string
	if err := row.Scan(&id, &u.TenantID, &u.Email, &u.PasswordHash, &role); err != nil {
		return nil, err
	}
	u.ID = domain.Persisted(id)
	u.Role = domain.Role(role)
	return &u, nil
}

func (s *PostgresUserStore) findOne(ctx context.Context, where string, args ...any) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where
	u, err := scanUser(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, store.ErrUserNotFound
		}
		return nil, mapStoreError("user", "find", err)
	}
	return u, nil
}

// FindByID implements store.UserStore.FindByID.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	u, err := s.findOne(ctx, `tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
	}
	return u, err
}

// FindByEmail implements store.UserStore.FindByEmail.
// Emails are compared case-insensitively.
func (s *PostgresUserStore) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*domain.User, error) {
	return s.findOne(ctx, `tenant_id = $1 AND email = $2`, tenantID, domain.NormalizeEmail(email))
}

// ListAll implements store.UserStore.ListAll, ordered by email.
func (s *PostgresUserStore) ListAll(ctx context.Context, tenantID uuid.UUID) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE tenant_id = $1 ORDER BY email, id`
	rows, err := s.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, mapStoreError("user", "list", err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, mapStoreError("user", "list", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, mapStoreError("user", "list", err)
	}
	return users, nil
}

// Save implements store.UserStore.Save.
// The email is normalized before it is written.
func (s *PostgresUserStore) Save(ctx context.Context, u *domain.User) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	u.Email = domain.NormalizeEmail(u.Email)
	if err := u.Validate(); err != nil {
		return nil, err
	}

	if u.IsNew() {
		var id uuid.UUID
		err := s.db.QueryRowContext(ctx, `
			INSERT INTO users (tenant_id, email, password_hash, role)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, u.TenantID, u.Email, u.PasswordHash, string(u.Role)).Scan(&id)
		if err != nil {
			// never log the row itself: it carries the hash
			log.Warn("failed to insert user", slog.String("error", err.Error()))
			return nil, mapStoreError("user", "save", err)
		}
		u.ID = domain.Persisted(id)
		log.Info("user created", slog.String("user_id", id.String()))
		return u, nil
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET email = $3, password_hash = $4, role = $5, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`, u.TenantID, u.ID.UUID, u.Email, u.PasswordHash, string(u.Role))
	if err != nil {
		log.Warn("failed to update user",
			slog.String("error", err.Error()),
			slog.String("user_id", u.ID.UUID.String()))
		return nil, mapStoreError("user", "save", err)
	}
	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete implements store.UserStore.Delete.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *PostgresUserStore) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return mapStoreError("user", "delete", err)
	}
	return CheckRowsAffected(result, store.ErrUserNotFound)
}
