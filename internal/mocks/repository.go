package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockRepository is a testify mock of store.Repository[T]. The per-entity
// store mocks embed it and add their unique-key finders.
type MockRepository[T any] struct {
	mock.Mock
}

// FindByID is a mock implementation of store.Repository.FindByID
func (m *MockRepository[T]) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*T, error) {
	args := m.MethodCalled("FindByID", ctx, tenantID, id)
	return entityOrNil[T](args, 0), args.Error(1)
}

// ListAll is a mock implementation of store.Repository.ListAll
func (m *MockRepository[T]) ListAll(ctx context.Context, tenantID uuid.UUID) ([]*T, error) {
	args := m.MethodCalled("ListAll", ctx, tenantID)
	if list, ok := args.Get(0).([]*T); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// Save is a mock implementation of store.Repository.Save.
// When the expectation returns a nil entity and no error, entity is echoed back.
func (m *MockRepository[T]) Save(ctx context.Context, entity *T) (*T, error) {
	args := m.MethodCalled("Save", ctx, entity)
	saved := entityOrNil[T](args, 0)
	if saved == nil && args.Error(1) == nil {
		saved = entity
	}
	return saved, args.Error(1)
}

// Delete is a mock implementation of store.Repository.Delete
func (m *MockRepository[T]) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.MethodCalled("Delete", ctx, tenantID, id)
	return args.Error(0)
}

func entityOrNil[T any](args mock.Arguments, i int) *T {
	if e, ok := args.Get(i).(*T); ok {
		return e
	}
	return nil
}
