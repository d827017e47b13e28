package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/contracts-api/internal/domain"
	"github.com/phrazzld/contracts-api/internal/service"
	"github.com/stretchr/testify/mock"
)

func listOrNil[T any](args mock.Arguments) []*T {
	if list, ok := args.Get(0).([]*T); ok {
		return list
	}
	return nil
}

// MockClientService is a mock of service.ClientService.
type MockClientService struct {
	mock.Mock
}

var _ service.ClientService = (*MockClientService)(nil)

// Create is a mock implementation of service.ClientService.Create
func (m *MockClientService) Create(ctx context.Context, tenantID uuid.UUID, draft domain.ClientDraft) (*domain.Client, error) {
	args := m.Called(ctx, tenantID, draft)
	return entityOrNil[domain.Client](args, 0), args.Error(1)
}

// Update is a mock implementation of service.ClientService.Update
func (m *MockClientService) Update(ctx context.Context, tenantID, id uuid.UUID, patch domain.ClientPatch) (*domain.Client, error) {
	args := m.Called(ctx, tenantID, id, patch)
	return entityOrNil[domain.Client](args, 0), args.Error(1)
}

// Delete is a mock implementation of service.ClientService.Delete
func (m *MockClientService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

// GetByID is a mock implementation of service.ClientService.GetByID
func (m *MockClientService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Client, error) {
	args := m.Called(ctx, tenantID, id)
	return entityOrNil[domain.Client](args, 0), args.Error(1)
}

// GetAll is a mock implementation of service.ClientService.GetAll
func (m *MockClientService) GetAll(ctx context.Context, tenantID uuid.UUID) ([]*domain.Client, error) {
	args := m.Called(ctx, tenantID)
	return listOrNil[domain.Client](args), args.Error(1)
}

// MockContractService is a mock of service.ContractService.
type MockContractService struct {
	mock.Mock
}

var _ service.ContractService = (*MockContractService)(nil)

// Create is a mock implementation of service.ContractService.Create
func (m *MockContractService) Create(ctx context.Context, tenantID uuid.UUID, draft domain.ContractDraft) (*domain.Contract, error) {
	args := m.Called(ctx, tenantID, draft)
	return entityOrNil[domain.Contract](args, 0), args.Error(1)
}

// Update is a mock implementation of service.ContractService.Update
func (m *MockContractService) Update(ctx context.Context, tenantID, id uuid.UUID, patch domain.ContractPatch) (*domain.Contract, error) {
	args := m.Called(ctx, tenantID, id, patch)
	return entityOrNil[domain.Contract](args, 0), args.Error(1)
}

// Delete is a mock implementation of service.ContractService.Delete
func (m *MockContractService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

// GetByID is a mock implementation of service.ContractService.GetByID
func (m *MockContractService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Contract, error) {
	args := m.Called(ctx, tenantID, id)
	return entityOrNil[domain.Contract](args, 0), args.Error(1)
}

// GetAll is a mock implementation of service.ContractService.GetAll
func (m *MockContractService) GetAll(ctx context.Context, tenantID uuid.UUID) ([]*domain.Contract, error) {
	args := m.Called(ctx, tenantID)
	return listOrNil[domain.Contract](args), args.Error(1)
}

// ListByClient is a mock implementation of service.ContractService.ListByClient
func (m *MockContractService) ListByClient(ctx context.Context, tenantID, clientID uuid.UUID) ([]*domain.Contract, error) {
	args := m.Called(ctx, tenantID, clientID)
	return listOrNil[domain.Contract](args), args.Error(1)
}

// MockCatalogService is a mock of service.CatalogService.
type MockCatalogService struct {
	mock.Mock
}

var _ service.CatalogService = (*MockCatalogService)(nil)

// Create is a mock implementation of service.CatalogService.Create
func (m *MockCatalogService) Create(ctx context.Context, tenantID uuid.UUID, draft domain.ServiceDraft) (*domain.Service, error) {
	args := m.Called(ctx, tenantID, draft)
	return entityOrNil[domain.Service](args, 0), args.Error(1)
}

// Update is a mock implementation of service.CatalogService.Update
func (m *MockCatalogService) Update(ctx context.Context, tenantID, id uuid.UUID, patch domain.ServicePatch) (*domain.Service, error) {
	args := m.Called(ctx, tenantID, id, patch)
	return entityOrNil[domain.Service](args, 0), args.Error(1)
}

// Delete is a mock implementation of service.CatalogService.Delete
func (m *MockCatalogService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

// GetByID is a mock implementation of service.CatalogService.GetByID
func (m *MockCatalogService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Service, error) {
	args := m.Called(ctx, tenantID, id)
	return entityOrNil[domain.Service](args, 0), args.Error(1)
}

// GetAll is a mock implementation of service.CatalogService.GetAll
func (m *MockCatalogService) GetAll(ctx context.Context, tenantID uuid.UUID) ([]*domain.Service, error) {
	args := m.Called(ctx, tenantID)
	return listOrNil[domain.Service](args), args.Error(1)
}

// MockUserService is a mock of service.UserService.
type MockUserService struct {
	mock.Mock
}

var _ service.UserService = (*MockUserService)(nil)

// Register is a mock implementation of service.UserService.Register
func (m *MockUserService) Register(ctx context.Context, tenantID uuid.UUID, draft domain.UserDraft) (*domain.User, error) {
	args := m.Called(ctx, tenantID, draft)
	return entityOrNil[domain.User](args, 0), args.Error(1)
}

// Update is a mock implementation of service.UserService.Update
func (m *MockUserService) Update(ctx context.Context, tenantID, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
	args := m.Called(ctx, tenantID, id, patch)
	return entityOrNil[domain.User](args, 0), args.Error(1)
}

// Delete is a mock implementation of service.UserService.Delete
func (m *MockUserService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.Called(ctx, tenantID, id).Error(0)
}

// GetByID is a mock implementation of service.UserService.GetByID
func (m *MockUserService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, tenantID, id)
	return entityOrNil[domain.User](args, 0), args.Error(1)
}

// GetAll is a mock implementation of service.UserService.GetAll
func (m *MockUserService) GetAll(ctx context.Context, tenantID uuid.UUID) ([]*domain.User, error) {
	args := m.Called(ctx, tenantID)
	return listOrNil[domain.User](args), args.Error(1)
}
