package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/contracts-api/internal/api"
	"github.com/phrazzld/contracts-api/internal/domain"
	"github.com/phrazzld/contracts-api/internal/mocks"
	"github.com/phrazzld/contracts-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_Login(t *testing.T) {
	tenantID := uuid.New()
	user := &domain.User{
		Entity: domain.Entity{ID: domain.Persisted(uuid.New()), TenantID: tenantID},
		Email:  "ana@example.com",
		Role:   domain.RoleEmployee,
	}
	expires := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	authenticator := &mocks.MockAuthenticator{}
	authenticator.On("Authenticate", mock.Anything, tenantID, "ana@example.com", "s3cret-pass").
		Return(&auth.Result{User: user, Token: "jwt", ExpiresAt: expires}, nil)
	authenticator.On("Authenticate", mock.Anything, tenantID, "ana@example.com", "wrong").
		Return(nil, auth.ErrInvalidCredentials)

	handler := http.HandlerFunc(api.NewAuthHandler(authenticator, nil).Login)

	t.Run("success", func(t *testing.T) {
		w := doRequest(t, handler, http.MethodPost, "/api/auth/login", api.LoginRequest{
			TenantID: tenantID, Email: "ana@example.com", Password: "s3cret-pass",
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "password")

		var resp api.LoginResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "jwt", resp.Token)
		assert.Equal(t, "2025-01-02T03:04:05Z", resp.ExpiresAt)
		assert.Equal(t, user.ID, resp.User.ID)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		w := doRequest(t, handler, http.MethodPost, "/api/auth/login", api.LoginRequest{
			TenantID: tenantID, Email: "ana@example.com", Password: "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials.", decodeError(t, w).Error)
	})

	t.Run("missing tenant", func(t *testing.T) {
		w := doRequest(t, handler, http.MethodPost, "/api/auth/login",
			`{"email":"ana@example.com","password":"x"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(""))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
