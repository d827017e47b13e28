package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/contracts-api/internal/domain"
)

// Repository is the persistence contract shared by every tenant-scoped entity.
type Repository[T any] interface {
	// FindByID returns the entity with id in tenantID.
	// Returns an error wrapping ErrNotFound when it does not exist.
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*T, error)

	// ListAll returns every entity of tenantID. An empty tenant yields an empty slice.
	ListAll(ctx context.Context, tenantID uuid.UUID) ([]*T, error)

	// Save inserts the entity when its ID is not yet valid, assigning one,
	// and updates it otherwise. The returned pointer is the persisted entity.
	// Returns an error wrapping ErrDuplicate when a unique field collides.
	Save(ctx context.Context, entity *T) (*T, error)

	// Delete removes the entity with id in tenantID.
	// Returns an error wrapping ErrNotFound when it does not exist.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// ClientStore persists clients.
type ClientStore interface {
	Repository[domain.Client]

	// FindByCNPJ returns the client with cnpj, or an ErrNotFound wrap.
	FindByCNPJ(ctx context.Context, tenantID uuid.UUID, cnpj string) (*domain.Client, error)

	// FindByCode returns the client with code, or an ErrNotFound wrap.
	FindByCode(ctx context.Context, tenantID uuid.UUID, code int) (*domain.Client, error)
}

// ServiceStore persists catalog services.
type ServiceStore interface {
	Repository[domain.Service]

	// FindByCode returns the service with code, or an ErrNotFound wrap.
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*domain.Service, error)
}

// ContractStore persists contracts.
type ContractStore interface {
	Repository[domain.Contract]

	// FindByCode returns the contract with code, or an ErrNotFound wrap.
	FindByCode(ctx context.Context, tenantID uuid.UUID, code domain.ContractCode) (*domain.Contract, error)

	// FindByClientID returns every contract of clientID, possibly none.
	FindByClientID(ctx context.Context, tenantID, clientID uuid.UUID) ([]*domain.Contract, error)
}

// UserStore persists users.
type UserStore interface {
	Repository[domain.User]

	// FindByEmail returns the user with email, compared case-insensitively,
	// or an ErrNotFound wrap.
	FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*domain.User, error)
}
