package api_test

import (
	"encoding/json"
	"errors"
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

func newClientRouter(svc *mocks.MockClientService, contracts *mocks.MockContractService) http.Handler {
	h := api.NewClientHandler(svc, nil)
	cc := api.NewClientContractsHandler(svc, contracts, nil)
	return mount("/api/clients", func(r chi.Router) {
		h.Routes(r)
		r.Get("/{id}/contracts", cc.List)
	})
}

func TestClientHandler_Create(t *testing.T) {
	svc := &mocks.MockClientService{}
	router := newClientRouter(svc, &mocks.MockContractService{})

	draft := domain.ClientDraft{Code: 123, Nickname: "Nick", CompanyName: "Company", CNPJ: "123456789"}
	created := &domain.Client{
		Entity: domain.Entity{ID: domain.Persisted(uuid.New()), TenantID: testIdentity.TenantID},
		Code:   123, Nickname: "Nick", CompanyName: "Company", CNPJ: "123456789",
	}
	svc.On("Create", mock.Anything, testIdentity.TenantID, draft).Return(created, nil).Once()
	svc.On("Create", mock.Anything, testIdentity.TenantID, draft).Return(nil, service.ErrClientCNPJExists).Once()

	w := doRequest(t, router, http.MethodPost, "/api/clients", draft)
	require.Equal(t, http.StatusCreated, w.Code)
	var got domain.Client
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, created.ID, got.ID)

	w = doRequest(t, router, http.MethodPost, "/api/clients", draft)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Client with this CNPJ already exists.", decodeError(t, w).Error)
}

func TestClientHandler_CreateValidation(t *testing.T) {
	svc := &mocks.MockClientService{}
	router := newClientRouter(svc, &mocks.MockContractService{})

	w := doRequest(t, router, http.MethodPost, "/api/clients", domain.ClientDraft{Nickname: "only"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w).Error, "Invalid")

	w = doRequest(t, router, http.MethodPost, "/api/clients", `{"nickname":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request format", decodeError(t, w).Error)

	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestClientHandler_UpdatePassesOnlyPresentFields(t *testing.T) {
	svc := &mocks.MockClientService{}
	router := newClientRouter(svc, &mocks.MockContractService{})
	id := uuid.New()

	svc.On("Update", mock.Anything, testIdentity.TenantID, id, mock.MatchedBy(func(p domain.ClientPatch) bool {
		return p.Nickname.Set && p.Nickname.Value == "New" && !p.CNPJ.Set && !p.CompanyName.Set && !p.Code.Set
	})).Return(&domain.Client{Nickname: "New"}, nil)

	w := doRequest(t, router, http.MethodPut, "/api/clients/"+id.String(), `{"nickname":"New"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestClientHandler_NotFoundAndBadID(t *testing.T) {
	svc := &mocks.MockClientService{}
	router := newClientRouter(svc, &mocks.MockContractService{})
	id := uuid.New()

	svc.On("GetByID", mock.Anything, testIdentity.TenantID, id).Return(nil, service.ErrClientNotFound)
	svc.On("Delete", mock.Anything, testIdentity.TenantID, id).Return(service.ErrClientNotFound)

	w := doRequest(t, router, http.MethodGet, "/api/clients/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Client not found.", decodeError(t, w).Error)

	w = doRequest(t, router, http.MethodDelete, "/api/clients/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/clients/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClientHandler_DeleteAndList(t *testing.T) {
	svc := &mocks.MockClientService{}
	router := newClientRouter(svc, &mocks.MockContractService{})
	id := uuid.New()

	svc.On("Delete", mock.Anything, testIdentity.TenantID, id).Return(nil)
	svc.On("GetAll", mock.Anything, testIdentity.TenantID).Return(nil, nil).Once()
	svc.On("GetAll", mock.Anything, testIdentity.TenantID).Return(nil, errors.New("db is down")).Once()

	w := doRequest(t, router, http.MethodDelete, "/api/clients/"+id.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/clients", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"count":0}`, w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/api/clients", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "An unexpected error occurred", decodeError(t, w).Error)
}

func TestClientContractsHandler(t *testing.T) {
	clients := &mocks.MockClientService{}
	contracts := &mocks.MockContractService{}
	router := newClientRouter(clients, contracts)
	known, unknown := uuid.New(), uuid.New()

	clients.On("GetByID", mock.Anything, testIdentity.TenantID, known).Return(&domain.Client{}, nil)
	clients.On("GetByID", mock.Anything, testIdentity.TenantID, unknown).Return(nil, service.ErrClientNotFound)
	contracts.On("ListByClient", mock.Anything, testIdentity.TenantID, known).
		Return([]*domain.Contract{{ContractCode: "10"}}, nil)

	w := doRequest(t, router, http.MethodGet, "/api/clients/"+known.String()+"/contracts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, 1, body.Count)

	w = doRequest(t, router, http.MethodGet, "/api/clients/"+unknown.String()+"/contracts", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	contracts.AssertNotCalled(t, "ListByClient", mock.Anything, mock.Anything, unknown)
}
