package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/contracts-api/internal/domain"
	"github.com/phrazzld/contracts-api/internal/platform/logger"
	"github.com/phrazzld/contracts-api/internal/store"
)

// Result is the outcome of a successful login.
type Result struct {
	User      *domain.User // sanitized
	Token     string
	ExpiresAt time.Time
}

// Authenticator logs users in.
type Authenticator interface {
	Authenticate(ctx context.Context, tenantID uuid.UUID, email, password string) (*Result, error)
}

// AuthenticationService verifies a user's password and issues a token.
// It keeps no state between calls.
type AuthenticationService struct {
	users    store.UserStore
	verifier PasswordVerifier
	signer   TokenSigner
	cfg      *SigningConfig
	timeFunc func() time.Time
	logger   *slog.Logger
}

var _ Authenticator = (*AuthenticationService)(nil)

// NewAuthenticationService wires the login flow. cfg must already be built;
// a nil cfg yields ErrSigningNotConfigured.
func NewAuthenticationService(
	users store.UserStore,
	verifier PasswordVerifier,
	signer TokenSigner,
	cfg *SigningConfig,
	logger *slog.Logger,
) (*AuthenticationService, error) {
	if cfg == nil {
		return nil, ErrSigningNotConfigured
	}
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if verifier == nil {
		return nil, domain.NewValidationError("verifier", "cannot be nil", domain.ErrValidation)
	}
	if signer == nil {
		return nil, domain.NewValidationError("signer", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthenticationService{
		users:    users,
		verifier: verifier,
		signer:   signer,
		cfg:      cfg,
		timeFunc: time.Now,
		logger:   logger.With(slog.String("component", "authentication_service")),
	}, nil
}

// Authenticate looks the user up by email within tenantID, checks password and
// signs a token. An unknown email and a wrong password both return
// ErrInvalidCredentials.
func (s *AuthenticationService) Authenticate(
	ctx context.Context,
	tenantID uuid.UUID,
	email, password string,
) (*Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.FindByEmail(ctx, tenantID, domain.NormalizeEmail(email))
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("login rejected: unknown email", slog.String("tenant_id", tenantID.String()))
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to look up user for login", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.verifier.Compare(user.PasswordHash, password); err != nil {
		log.Debug("login rejected: password mismatch", slog.String("user_id", user.ID.UUID.String()))
		return nil, ErrInvalidCredentials
	}

	expiresIn := s.cfg.ExpiresIn()
	issuedAt := s.timeFunc()
	token, err := s.signer.Sign(ctx, Claims{
		UserID:   user.ID.UUID,
		Email:    user.Email,
		Role:     user.Role,
		TenantID: user.TenantID,
	}, s.cfg.Secret(), SignOptions{ExpiresIn: expiresIn})
	if err != nil {
		if errors.Is(err, ErrConfiguration) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	log.Info("user authenticated", slog.String("user_id", user.ID.UUID.String()))
	return &Result{
		User:      user.Sanitized(),
		Token:     token,
		ExpiresAt: issuedAt.Add(expiresIn),
	}, nil
}
