package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/contracts-api/internal/api/shared"
	"github.com/phrazzld/contracts-api/internal/platform/logger"
	"github.com/phrazzld/contracts-api/internal/redact"
	"github.com/phrazzld/contracts-api/internal/service/auth"
)

// AuthMiddleware verifies bearer tokens and puts the caller identity in the
// request context.
type AuthMiddleware struct {
	parser  auth.TokenParser
	signing *auth.SigningConfig
}

// NewAuthMiddleware creates an AuthMiddleware. signing must be the same
// configuration the AuthenticationService signs with.
func NewAuthMiddleware(parser auth.TokenParser, signing *auth.SigningConfig) (*AuthMiddleware, error) {
	if signing == nil {
		return nil, auth.ErrSigningNotConfigured
	}
	return &AuthMiddleware{parser: parser, signing: signing}, nil
}

// Authenticate rejects requests without a valid "Authorization: Bearer" token.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		claims, err := m.parser.Parse(r.Context(), strings.TrimSpace(token), m.signing.Secret())
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid),
				errors.Is(err, auth.ErrMissingToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				logger.FromContext(r.Context()).Error("failed to validate token",
					slog.String("error", redact.Error(err)))
				shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			}
			return
		}

		ctx := shared.WithIdentity(r.Context(), shared.Identity{
			UserID:   claims.UserID,
			TenantID: claims.TenantID,
			Email:    claims.Email,
			Role:     claims.Role,
		})
		log := logger.FromContext(ctx).With(
			slog.String("user_id", claims.UserID.String()),
			slog.String("tenant_id", claims.TenantID.String()))
		next.ServeHTTP(w, r.WithContext(logger.WithLogger(ctx, log)))
	})
}
