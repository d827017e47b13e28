package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/contracts-api/internal/domain"
	"github.com/phrazzld/contracts-api/internal/platform/logger"
	"github.com/phrazzld/contracts-api/internal/service/auth"
	"github.com/phrazzld/contracts-api/internal/store"
)

// UserService manages a tenant's users. Every user it returns is sanitized:
// the password hash never leaves this service.
type UserService interface {
	// Register hashes the draft's plaintext password once and stores the user.
	// The email must be unused in the tenant, compared case-insensitively.
	Register(ctx context.Context, tenantID uuid.UUID, draft domain.UserDraft) (*domain.User, error)

	// Update merges the supplied patch fields. A supplied password is re-hashed.
	Update(ctx context.Context, tenantID, id uuid.UUID, patch domain.UserPatch) (*domain.User, error)

	// Delete removes an existing user.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// GetByID returns one user or ErrUserNotFound.
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.User, error)

	// GetAll returns every user of the tenant.
	GetAll(ctx context.Context, tenantID uuid.UUID) ([]*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	logger *slog.Logger
}

var userCreateConflicts = map[string]error{"email": ErrUserEmailExists}
var userUpdateConflicts = map[string]error{"email": ErrUserEmailInUse}

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(users store.UserStore, hasher auth.PasswordHasher, logger *slog.Logger) (UserService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:  users,
		hasher: hasher,
		logger: logger.With(slog.String("component", "user_service")),
	}, nil
}

var _ UserService = (*UserServiceImpl)(nil)

// Register implements UserService.Register.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	tenantID uuid.UUID,
	draft domain.UserDraft,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidatePassword(draft.Password); err != nil {
		return nil, err
	}

	email := domain.NormalizeEmail(draft.Email)
	found, err := s.users.FindByEmail(ctx, tenantID, email)
	if err := checkUnique(found, err, nil, ErrUserEmailExists); err != nil {
		if err == ErrUserEmailExists {
			log.Debug("attempted to register an existing email", slog.String("tenant_id", tenantID.String()))
		}
		return nil, err
	}

	hash, err := s.hasher.Hash(draft.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := domain.NewUser(tenantID, email, hash, draft.Role)
	if err != nil {
		return nil, err
	}

	saved, err := s.users.Save(ctx, u)
	if err != nil {
		log.Warn("failed to save new user", slog.String("error", err.Error()))
		return nil, mapSaveError(err, userCreateConflicts)
	}

	log.Info("user registered",
		slog.String("user_id", saved.ID.UUID.String()),
		slog.String("role", string(saved.Role)))
	return saved.Sanitized(), nil
}

// Update implements UserService.Update.
func (s *UserServiceImpl) Update(
	ctx context.Context,
	tenantID, id uuid.UUID,
	patch domain.UserPatch,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	u, err := s.users.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapFindError(err, ErrUserNotFound)
	}

	if email, ok := patch.Email.Get(); ok {
		email = domain.NormalizeEmail(email)
		if email != u.Email {
			found, err := s.users.FindByEmail(ctx, tenantID, email)
			isSelf := func(other *domain.User) bool { return other.SameAs(u.Entity) }
			if err := checkUnique(found, err, isSelf, ErrUserEmailInUse); err != nil {
				return nil, err
			}
		}
		u.Email = email
	}

	if password, ok := patch.Password.Get(); ok {
		if err := domain.ValidatePassword(password); err != nil {
			return nil, err
		}
		hash, err := s.hasher.Hash(password)
		if err != nil {
			log.Error("failed to hash password", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = hash
	}

	patch.Role.Apply(&u.Role)

	if err := u.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.users.Save(ctx, u); err != nil {
		log.Warn("failed to save user update",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, mapSaveError(err, userUpdateConflicts)
	}

	log.Info("user updated",
		slog.String("user_id", id.String()),
		slog.Bool("password_changed", patch.Password.Set))
	return u.Sanitized(), nil
}

// Delete implements UserService.Delete.
func (s *UserServiceImpl) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.users.FindByID(ctx, tenantID, id); err != nil {
		return mapFindError(err, ErrUserNotFound)
	}
	if err := s.users.Delete(ctx, tenantID, id); err != nil && !store.IsNotFoundError(err) {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// GetByID implements UserService.GetByID.
func (s *UserServiceImpl) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapFindError(err, ErrUserNotFound)
	}
	return u.Sanitized(), nil
}

// GetAll implements UserService.GetAll.
func (s *UserServiceImpl) GetAll(ctx context.Context, tenantID uuid.UUID) ([]*domain.User, error) {
	users, err := s.users.ListAll(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	sanitized := make([]*domain.User, len(users))
	for i, u := range users {
		sanitized[i] = u.Sanitized()
	}
	return sanitized, nil
}
