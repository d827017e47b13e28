package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Service is a billable item in a tenant's catalog. Code is unique within the tenant.
type Service struct {
	Entity
	Name         string   `json:"name"`
	Code         string   `json:"code"`
	DefaultPrice *float64 `json:"default_price"`
}

// ServiceDraft carries the fields of a catalog service to be created.
// DefaultPrice may be omitted.
type ServiceDraft struct {
	Name         string   `json:"name"          validate:"required,max=255"`
	Code         string   `json:"code"          validate:"required,max=64"`
	DefaultPrice *float64 `json:"default_price" validate:"omitempty,gte=0"`
}

// ServicePatch carries the fields of a partial catalog service update.
type ServicePatch struct {
	Name         Field[string]   `json:"name"`
	Code         Field[string]   `json:"code"`
	DefaultPrice Field[*float64] `json:"default_price"`
}

// NewService builds an unsaved catalog service for tenantID from draft.
func NewService(tenantID uuid.UUID, draft ServiceDraft) (*Service, error) {
	s := &Service{
		Entity:       NewEntity(tenantID),
		Name:         strings.TrimSpace(draft.Name),
		Code:         strings.TrimSpace(draft.Code),
		DefaultPrice: draft.DefaultPrice,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the service's invariants.
func (s *Service) Validate() error {
	if err := s.Entity.validate(); err != nil {
		return err
	}
	if s.Name == "" {
		return NewValidationError("name", "cannot be empty", nil)
	}
	if s.Code == "" {
		return NewValidationError("code", "cannot be empty", nil)
	}
	if s.DefaultPrice != nil && *s.DefaultPrice < 0 {
		return NewValidationError("default_price", "cannot be negative", nil)
	}
	return nil
}

// Apply merges the supplied patch fields into s.
func (s *Service) Apply(p ServicePatch) {
	if p.Name.Set {
		s.Name = strings.TrimSpace(p.Name.Value)
	}
	if p.Code.Set {
		s.Code = strings.TrimSpace(p.Code.Value)
	}
	p.DefaultPrice.Apply(&s.DefaultPrice)
}
