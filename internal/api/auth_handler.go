package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/contracts-api/internal/api/shared"
	"github.com/phrazzld/contracts-api/internal/platform/logger"
	"github.com/phrazzld/contracts-api/internal/service/auth"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authenticator auth.Authenticator
	logger        *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authenticator auth.Authenticator, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		authenticator: authenticator,
		logger:        logger.With(slog.String("component", "auth_handler")),
	}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.authenticator.Authenticate(r.Context(), req.TenantID, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Debug("login rejected", slog.String("tenant_id", req.TenantID.String()))
		}
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		User:      res.User,
		Token:     res.Token,
		ExpiresAt: formatTime(res.ExpiresAt),
	})
}
