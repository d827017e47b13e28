// Package mocks provides centralized testify mocks for the store interfaces,
// the auth collaborators and the services consumed by the API layer.
//
// Usage:
//
//	clients := &mocks.MockClientStore{}
//	clients.On("FindByID", mock.Anything, tenantID, id).Return(nil, store.ErrClientNotFound)
//
//	svc, _ := service.NewClientService(clients, nil)
//	_, err := svc.Update(ctx, tenantID, id, patch)
//	clients.AssertExpectations(t)
//
// Save mocks echo the entity they were given when the expectation returns
// (nil, nil), so tests only need a Run hook to assign an ID.
package mocks
