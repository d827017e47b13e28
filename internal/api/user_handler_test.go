package api_test

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/contracts-api/internal/api"
	"github.com/phrazzld/contracts-api/internal/domain"
	"github.com/phrazzld/contracts-api/internal/mocks"
	"github.com/phrazzld/contracts-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_RegisterNeverLeaksHash(t *testing.T) {
	svc := &mocks.MockUserService{}
	h := api.NewUserHandler(svc, nil)
	router := mount("/api/users", func(r chi.Router) { h.Routes(r) })

	draft := domain.UserDraft{Email: "bia@example.com", Password: "s3cret-pass", Role: domain.RoleAdmin}
	svc.On("Register", mock.Anything, testIdentity.TenantID, draft).Return(&domain.User{
		Entity:       domain.Entity{ID: domain.Persisted(uuid.New()), TenantID: testIdentity.TenantID},
		Email:        "bia@example.com",
		PasswordHash: "$2a$10$shouldneverbeserialized",
		Role:         domain.RoleAdmin,
	}, nil).Once()
	svc.On("Register", mock.Anything, testIdentity.TenantID, draft).Return(nil, service.ErrUserEmailExists).Once()

	w := doRequest(t, router, http.MethodPost, "/api/users", draft)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "shouldneverbeserialized")
	assert.NotContains(t, w.Body.String(), "password")

	w = doRequest(t, router, http.MethodPost, "/api/users", draft)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "User with this email already exists.", decodeError(t, w).Error)
}

func TestUserHandler_RegisterRejectsBadRole(t *testing.T) {
	svc := &mocks.MockUserService{}
	h := api.NewUserHandler(svc, nil)
	router := mount("/api/users", func(r chi.Router) { h.Routes(r) })

	w := doRequest(t, router, http.MethodPost, "/api/users",
		`{"email":"bia@example.com","password":"s3cret-pass","role":"ROOT"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything)
}
