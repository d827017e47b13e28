package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/contracts-api/internal/domain"
	"github.com/phrazzld/contracts-api/internal/platform/logger"
	"github.com/phrazzld/contracts-api/internal/store"
)

// ContractService manages a tenant's contracts.
type ContractService interface {
	// Create registers a new contract. Its code must be unused in the tenant.
	Create(ctx context.Context, tenantID uuid.UUID, draft domain.ContractDraft) (*domain.Contract, error)

	// Update merges the supplied patch fields into an existing contract.
	Update(ctx context.Context, tenantID, id uuid.UUID, patch domain.ContractPatch) (*domain.Contract, error)

	// Delete removes an existing contract.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// GetByID returns one contract or ErrContractNotFound.
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Contract, error)

	// GetAll returns every contract of the tenant.
	GetAll(ctx context.Context, tenantID uuid.UUID) ([]*domain.Contract, error)

	// ListByClient returns the contracts of one client, possibly none.
	ListByClient(ctx context.Context, tenantID, clientID uuid.UUID) ([]*domain.Contract, error)
}

type contractServiceImpl struct {
	contracts store.ContractStore
	logger    *slog.Logger
}

var contractCreateConflicts = map[string]error{"contract_code": ErrContractCodeExists}
var contractUpdateConflicts = map[string]error{"contract_code": ErrContractCodeInUse}

// NewContractService creates a ContractService.
// It returns an error if the store is nil.
func NewContractService(contracts store.ContractStore, logger *slog.Logger) (ContractService, error) {
	if contracts == nil {
		return nil, domain.NewValidationError("contracts", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &contractServiceImpl{
		contracts: contracts,
		logger:    logger.With(slog.String("component", "contract_service")),
	}, nil
}

func (s *contractServiceImpl) Create(
	ctx context.Context,
	tenantID uuid.UUID,
	draft domain.ContractDraft,
) (*domain.Contract, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	c, err := domain.NewContract(tenantID, draft)
	if err != nil {
		return nil, err
	}

	found, err := s.contracts.FindByCode(ctx, tenantID, c.ContractCode)
	if err := checkUnique(found, err, nil, ErrContractCodeExists); err != nil {
		return nil, err
	}

	saved, err := s.contracts.Save(ctx, c)
	if err != nil {
		log.Warn("failed to save new contract",
			slog.String("error", err.Error()),
			slog.String("contract_code", c.ContractCode.String()))
		return nil, mapSaveError(err, contractCreateConflicts)
	}

	log.Info("contract created",
		slog.String("contract_id", saved.ID.UUID.String()),
		slog.String("client_id", saved.ClientID.String()))
	return saved, nil
}

func (s *contractServiceImpl) Update(
	ctx context.Context,
	tenantID, id uuid.UUID,
	patch domain.ContractPatch,
) (*domain.Contract, error) {
	c, err := s.contracts.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapFindError(err, ErrContractNotFound)
	}

	if code, ok := patch.ContractCode.Get(); ok {
		code = domain.NewContractCode(code.String())
		if code != c.ContractCode {
			found, err := s.contracts.FindByCode(ctx, tenantID, code)
			isSelf := func(other *domain.Contract) bool { return other.SameAs(c.Entity) }
			if err := checkUnique(found, err, isSelf, ErrContractCodeInUse); err != nil {
				return nil, err
			}
		}
	}

	c.Apply(patch)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.contracts.Save(ctx, c); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to save contract update",
			slog.String("error", err.Error()),
			slog.String("contract_id", id.String()))
		return nil, mapSaveError(err, contractUpdateConflicts)
	}
	return c, nil
}

func (s *contractServiceImpl) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.contracts.FindByID(ctx, tenantID, id); err != nil {
		return mapFindError(err, ErrContractNotFound)
	}
	if err := s.contracts.Delete(ctx, tenantID, id); err != nil && !store.IsNotFoundError(err) {
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	return nil
}

func (s *contractServiceImpl) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Contract, error) {
	c, err := s.contracts.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, mapFindError(err, ErrContractNotFound)
	}
	return c, nil
}

func (s *contractServiceImpl) GetAll(ctx context.Context, tenantID uuid.UUID) ([]*domain.Contract, error) {
	contracts, err := s.contracts.ListAll(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}

func (s *contractServiceImpl) ListByClient(
	ctx context.Context,
	tenantID, clientID uuid.UUID,
) ([]*domain.Contract, error) {
	contracts, err := s.contracts.FindByClientID(ctx, tenantID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts for client: %w", err)
	}
	return contracts, nil
}
