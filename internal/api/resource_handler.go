package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/contracts-api/internal/api/shared"
	"github.com/phrazzld/contracts-api/internal/domain"
	"github.com/phrazzld/contracts-api/internal/platform/logger"
	"github.com/phrazzld/contracts-api/internal/service"
)

// crudService is the shape shared by the entity services: T is the entity,
// D its draft and P its patch.
type crudService[T, D, P any] interface {
	Create(ctx context.Context, tenantID uuid.UUID, draft D) (*T, error)
	Update(ctx context.Context, tenantID, id uuid.UUID, patch P) (*T, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*T, error)
	GetAll(ctx context.Context, tenantID uuid.UUID) ([]*T, error)
}

// ResourceHandler serves the CRUD routes of one entity type. The tenant is
// always taken from the authenticated identity, never from the request.
type ResourceHandler[T, D, P any] struct {
	resource string
	svc      crudService[T, D, P]
	logger   *slog.Logger
}

func newResourceHandler[T, D, P any](resource string, svc crudService[T, D, P], logger *slog.Logger) *ResourceHandler[T, D, P] {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResourceHandler[T, D, P]{
		resource: resource,
		svc:      svc,
		logger:   logger.With(slog.String("component", resource+"_handler")),
	}
}

// NewClientHandler creates the handler for /clients.
func NewClientHandler(svc service.ClientService, logger *slog.Logger) *ResourceHandler[domain.Client, domain.ClientDraft, domain.ClientPatch] {
	return newResourceHandler[domain.Client, domain.ClientDraft, domain.ClientPatch]("client", svc, logger)
}

// NewContractHandler creates the handler for /contracts.
func NewContractHandler(svc service.ContractService, logger *slog.Logger) *ResourceHandler[domain.Contract, domain.ContractDraft, domain.ContractPatch] {
	return newResourceHandler[domain.Contract, domain.ContractDraft, domain.ContractPatch]("contract", svc, logger)
}

// NewServiceHandler creates the handler for /services.
func NewServiceHandler(svc service.CatalogService, logger *slog.Logger) *ResourceHandler[domain.Service, domain.ServiceDraft, domain.ServicePatch] {
	return newResourceHandler[domain.Service, domain.ServiceDraft, domain.ServicePatch]("service", svc, logger)
}

// NewUserHandler creates the handler for /users. POST registers a user.
func NewUserHandler(svc service.UserService, logger *slog.Logger) *ResourceHandler[domain.User, domain.UserDraft, domain.UserPatch] {
	return newResourceHandler[domain.User, domain.UserDraft, domain.UserPatch]("user", userRegistry{svc}, logger)
}

// userRegistry exposes UserService.Register as Create.
type userRegistry struct {
	service.UserService
}

func (u userRegistry) Create(ctx context.Context, tenantID uuid.UUID, draft domain.UserDraft) (*domain.User, error) {
	return u.Register(ctx, tenantID, draft)
}

// Routes mounts the handler on r.
func (h *ResourceHandler[T, D, P]) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// Create handles POST /.
func (h *ResourceHandler[T, D, P]) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	var draft D
	if !decodeAndValidate(w, r, &draft) {
		return
	}

	created, err := h.svc.Create(r.Context(), id.TenantID, draft)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Debug(h.resource+" created",
		slog.String("tenant_id", id.TenantID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, created)
}

// List handles GET /.
func (h *ResourceHandler[T, D, P]) List(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	items, err := h.svc.GetAll(r.Context(), id.TenantID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, newListResponse(items))
}

// Get handles GET /{id}.
func (h *ResourceHandler[T, D, P]) Get(w http.ResponseWriter, r *http.Request) {
	id, entityID, ok := requireIdentityAndPathUUID(w, r, "id")
	if !ok {
		return
	}
	item, err := h.svc.GetByID(r.Context(), id.TenantID, entityID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, item)
}

// Update handles PUT and PATCH /{id}. Only the fields present in the body change.
func (h *ResourceHandler[T, D, P]) Update(w http.ResponseWriter, r *http.Request) {
	id, entityID, ok := requireIdentityAndPathUUID(w, r, "id")
	if !ok {
		return
	}
	var patch P
	if !decodeAndValidate(w, r, &patch) {
		return
	}

	updated, err := h.svc.Update(r.Context(), id.TenantID, entityID, patch)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, updated)
}

// Delete handles DELETE /{id}.
func (h *ResourceHandler[T, D, P]) Delete(w http.ResponseWriter, r *http.Request) {
	id, entityID, ok := requireIdentityAndPathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id.TenantID, entityID); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Info(h.resource+" deleted",
		slog.String("id", entityID.String()),
		slog.String("deleted_by", id.UserID.String()))
	w.WriteHeader(http.StatusNoContent)
}
