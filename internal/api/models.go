package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/contracts-api/internal/domain"
)

// LoginRequest is the payload of POST /api/auth/login.
type LoginRequest struct {
	TenantID uuid.UUID `json:"tenant_id" validate:"required"`
	Email    string    `json:"email"     validate:"required,email"`
	Password string    `json:"password"  validate:"required,min=1,max=72"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
}

// ListResponse wraps a collection.
type ListResponse[T any] struct {
	Data  []*T `json:"data"`
	Count int  `json:"count"`
}

func newListResponse[T any](items []*T) ListResponse[T] {
	if items == nil {
		items = []*T{}
	}
	return ListResponse[T]{Data: items, Count: len(items)}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
