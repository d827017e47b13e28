package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/contracts-api/internal/api/shared"
	"github.com/phrazzld/contracts-api/internal/service"
)

// ClientContractsHandler serves GET /clients/{id}/contracts.
type ClientContractsHandler struct {
	clients   service.ClientService
	contracts service.ContractService
	logger    *slog.Logger
}

// NewClientContractsHandler creates a ClientContractsHandler.
func NewClientContractsHandler(
	clients service.ClientService,
	contracts service.ContractService,
	logger *slog.Logger,
) *ClientContractsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ClientContractsHandler{clients: clients, contracts: contracts, logger: logger}
}

// List returns the contracts of one client. An unknown client is a 404 rather
// than an empty list.
func (h *ClientContractsHandler) List(w http.ResponseWriter, r *http.Request) {
	id, clientID, ok := requireIdentityAndPathUUID(w, r, "id")
	if !ok {
		return
	}
	if _, err := h.clients.GetByID(r.Context(), id.TenantID, clientID); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	contracts, err := h.contracts.ListByClient(r.Context(), id.TenantID, clientID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newListResponse(contracts))
}
