package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/contracts-api/internal/domain"
	"github.com/phrazzld/contracts-api/internal/platform/logger"
	"github.com/phrazzld/contracts-api/internal/store"
)

// ClientService manages a tenant's clients.
type ClientService interface {
	// Create registers a new client. CNPJ and code must be unused in the tenant.
	Create(ctx context.Context, tenantID uuid.UUID, draft domain.ClientDraft) (*domain.Client, error)

	// Update merges the supplied patch fields into an existing client.
	Update(ctx context.Context, tenantID, id uuid.UUID, patch domain.ClientPatch) (*domain.Client, error)

	// Delete removes an existing client.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// GetByID returns one client or ErrClientNotFound.
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Client, error)

	// GetAll returns every client of the tenant.
	GetAll(ctx context.Context, tenantID uuid.UUID) ([]*domain.Client, error)
}

type clientServiceImpl struct {
	clients store.ClientStore
	logger  *slog.Logger
}

var clientCreateConflicts = map[string]error{"cnpj": ErrClientCNPJExists, "code": ErrClientCodeExists}
var clientUpdateConflicts = map[string]error{"cnpj": ErrClientCNPJInUse, "code": ErrClientCodeInUse}

// NewClientService creates a ClientService.
// It returns an error if the store is nil.
func NewClientService(clients store.ClientStore, logger *slog.Logger) (ClientService, error) {
	if clients == nil {
		return nil, domain.NewValidationError("clients", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &clientServiceImpl{
		clients: clients,
		logger:  logger.With(slog.String("component", "client_service")),
	}, nil
}

func (s *clientServiceImpl) Create(
	ctx context.Context,
	tenantID uuid.UUID,
	draft domain.ClientDraft,
) (*domain.Client, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	c, err := domain.NewClient(tenantID, draft)
	if err != nil {
		return nil, err
	}

	found, err := s.clients.FindByCNPJ(ctx, tenantID, c.CNPJ)
	if err := checkUnique(found, err, nil, ErrClientCNPJExists); err != nil {
		return nil, err
	}
	found, err = s.clients.FindByCode(ctx, tenantID, c.Code)
	if err := checkUnique(found, err, nil, ErrClientCodeExists); err != nil {
		return nil, err
	}

	saved, err := s.clients.Save(ctx, c)
	if err != nil {
		log.Warn("failed to save new client", slog.String("error", err.Error()))
		return nil, mapSaveError(err, clientCreateConflicts)
	}

	log.Info("client created",
		slog.String("client_id", saved.ID.UUID.String()),
		slog.String("tenant_id", tenantID.String()))
	return saved, nil
}

func (s *clientServiceImpl) Update(
	ctx context.Context,
	tenantID, id uuid.UUID,
	patch domain.ClientPatch,
) (*domain.Client, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	c, err := s.clients.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapFindError(err, ErrClientNotFound)
	}
	isSelf := func(other *domain.Client) bool { return other.SameAs(c.Entity) }

	// compare against the trimmed value Apply will store
	probe := *c
	probe.Apply(patch)

	if patch.CNPJ.Set && probe.CNPJ != c.CNPJ {
		found, err := s.clients.FindByCNPJ(ctx, tenantID, probe.CNPJ)
		if err := checkUnique(found, err, isSelf, ErrClientCNPJInUse); err != nil {
			return nil, err
		}
	}
	if patch.Code.Set && probe.Code != c.Code {
		found, err := s.clients.FindByCode(ctx, tenantID, probe.Code)
		if err := checkUnique(found, err, isSelf, ErrClientCodeInUse); err != nil {
			return nil, err
		}
	}

	c.Apply(patch)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.clients.Save(ctx, c); err != nil {
		log.Warn("failed to save client update",
			slog.String("error", err.Error()),
			slog.String("client_id", id.String()))
		return nil, mapSaveError(err, clientUpdateConflicts)
	}
	return c, nil
}

func (s *clientServiceImpl) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.clients.FindByID(ctx, tenantID, id); err != nil {
		return mapFindError(err, ErrClientNotFound)
	}
	if err := s.clients.Delete(ctx, tenantID, id); err != nil {
		switch {
		case store.IsNotFoundError(err):
			return nil
		case errors.Is(err, store.ErrDeleteFailed):
			return ErrClientHasContracts
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("client deleted", slog.String("client_id", id.String()))
	return nil
}

func (s *clientServiceImpl) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Client, error) {
	c, err := s.clients.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapFindError(err, ErrClientNotFound)
	}
	return c, nil
}

func (s *clientServiceImpl) GetAll(ctx context.Context, tenantID uuid.UUID) ([]*domain.Client, error) {
	clients, err := s.clients.ListAll(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}
