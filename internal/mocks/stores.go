package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/contracts-api/internal/domain"
	"github.com/phrazzld/contracts-api/internal/store"
)

// MockClientStore is a mock of store.ClientStore.
type MockClientStore struct {
	MockRepository[domain.Client]
}

var _ store.ClientStore = (*MockClientStore)(nil)

// FindByCNPJ is a mock implementation of store.ClientStore.FindByCNPJ
func (m *MockClientStore) FindByCNPJ(ctx context.Context, tenantID uuid.UUID, cnpj string) (*domain.Client, error) {
	args := m.MethodCalled("FindByCNPJ", ctx, tenantID, cnpj)
	return entityOrNil[domain.Client](args, 0), args.Error(1)
}

// FindByCode is a mock implementation of store.ClientStore.FindByCode
func (m *MockClientStore) FindByCode(ctx context.Context, tenantID uuid.UUID, code int) (*domain.Client, error) {
	args := m.MethodCalled("FindByCode", ctx, tenantID, code)
	return entityOrNil[domain.Client](args, 0), args.Error(1)
}

// MockServiceStore is a mock of store.ServiceStore.
type MockServiceStore struct {
	MockRepository[domain.Service]
}

var _ store.ServiceStore = (*MockServiceStore)(nil)

// FindByCode is a mock implementation of store.ServiceStore.FindByCode
func (m *MockServiceStore) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*domain.Service, error) {
	args := m.MethodCalled("FindByCode", ctx, tenantID, code)
	return entityOrNil[domain.Service](args, 0), args.Error(1)
}

// MockContractStore is a mock of store.ContractStore.
type MockContractStore struct {
	MockRepository[domain.Contract]
}

var _ store.ContractStore = (*MockContractStore)(nil)

// FindByCode is a mock implementation of store.ContractStore.FindByCode
func (m *MockContractStore) FindByCode(
	ctx context.Context,
	tenantID uuid.UUID,
	code domain.ContractCode,
) (*domain.Contract, error) {
	args := m.MethodCalled("FindByCode", ctx, tenantID, code)
	return entityOrNil[domain.Contract](args, 0), args.Error(1)
}

// FindByClientID is a mock implementation of store.ContractStore.FindByClientID
func (m *MockContractStore) FindByClientID(
	ctx context.Context,
	tenantID, clientID uuid.UUID,
) ([]*domain.Contract, error) {
	args := m.MethodCalled("FindByClientID", ctx, tenantID, clientID)
	if list, ok := args.Get(0).([]*domain.Contract); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockUserStore is a mock of store.UserStore.
type MockUserStore struct {
	MockRepository[domain.User]
}

var _ store.UserStore = (*MockUserStore)(nil)

// FindByEmail is a mock implementation of store.UserStore.FindByEmail
func (m *MockUserStore) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*domain.User, error) {
	args := m.MethodCalled("FindByEmail", ctx, tenantID, email)
	return entityOrNil[domain.User](args, 0), args.Error(1)
}
