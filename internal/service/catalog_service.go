package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/contracts-api/internal/domain"
	"github.com/phrazzld/contracts-api/internal/platform/logger"
	"github.com/phrazzld/contracts-api/internal/store"
)

// CatalogService manages the billable services offered by a tenant.
type CatalogService interface {
	// Create adds a service to the catalog. Its code must be unused in the tenant.
	Create(ctx context.Context, tenantID uuid.UUID, draft domain.ServiceDraft) (*domain.Service, error)

	// Update merges the supplied patch fields into an existing service.
	Update(ctx context.Context, tenantID, id uuid.UUID, patch domain.ServicePatch) (*domain.Service, error)

	// Delete removes an existing service.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// GetByID returns one service or ErrServiceNotFound.
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Service, error)

	// GetAll returns the whole catalog of the tenant.
	GetAll(ctx context.Context, tenantID uuid.UUID) ([]*domain.Service, error)
}

type catalogServiceImpl struct {
	services store.ServiceStore
	logger   *slog.Logger
}

// NewCatalogService creates a CatalogService.
// It returns an error if the store is nil.
func NewCatalogService(services store.ServiceStore, logger *slog.Logger) (CatalogService, error) {
	if services == nil {
		return nil, domain.NewValidationError("services", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &catalogServiceImpl{
		services: services,
		logger:   logger.With(slog.String("component", "catalog_service")),
	}, nil
}

func (s *catalogServiceImpl) Create(
	ctx context.Context,
	tenantID uuid.UUID,
	draft domain.ServiceDraft,
) (*domain.Service, error) {
	svc, err := domain.NewService(tenantID, draft)
	if err != nil {
		return nil, err
	}

	found, err := s.services.FindByCode(ctx, tenantID, svc.Code)
	if err := checkUnique(found, err, nil, ErrServiceCodeExists); err != nil {
		return nil, err
	}

	saved, err := s.services.Save(ctx, svc)
	if err != nil {
		return nil, mapSaveError(err, map[string]error{"code": ErrServiceCodeExists})
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("service created",
		slog.String("service_id", saved.ID.UUID.String()),
		slog.String("code", saved.Code))
	return saved, nil
}

func (s *catalogServiceImpl) Update(
	ctx context.Context,
	tenantID, id uuid.UUID,
	patch domain.ServicePatch,
) (*domain.Service, error) {
	svc, err := s.services.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapFindError(err, ErrServiceNotFound)
	}

	if code, ok := patch.Code.Get(); ok {
		code = strings.TrimSpace(code)
		if code != svc.Code {
			found, err := s.services.FindByCode(ctx, tenantID, code)
			isSelf := func(other *domain.Service) bool { return other.SameAs(svc.Entity) }
			if err := checkUnique(found, err, isSelf, ErrServiceCodeInUse); err != nil {
				return nil, err
			}
		}
	}

	svc.Apply(patch)
	if err := svc.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.services.Save(ctx, svc); err != nil {
		return nil, mapSaveError(err, map[string]error{"code": ErrServiceCodeInUse})
	}
	return svc, nil
}

func (s *catalogServiceImpl) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.services.FindByID(ctx, tenantID, id); err != nil {
		return mapFindError(err, ErrServiceNotFound)
	}
	if err := s.services.Delete(ctx, tenantID, id); err != nil {
		switch {
		case store.IsNotFoundError(err):
			return nil
		case errors.Is(err, store.ErrDeleteFailed):
			return ErrServiceHasContracts
		}
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}

func (s *catalogServiceImpl) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Service, error) {
	svc, err := s.services.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapFindError(err, ErrServiceNotFound)
	}
	return svc, nil
}

func (s *catalogServiceImpl) GetAll(ctx context.Context, tenantID uuid.UUID) ([]*domain.Service, error) {
	services, err := s.services.ListAll(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}
