package domain

import (
	"github.com/google/uuid"
)

// Entity holds the identity shared by every persisted business object.
// ID stays invalid until the repository assigns it on the first save; TenantID
// is fixed at construction and scopes every lookup and uniqueness check.
type Entity struct {
	ID       uuid.NullUUID `json:"id"`
	TenantID uuid.UUID     `json:"tenant_id"`
}

// NewEntity returns an unsaved Entity for tenantID.
func NewEntity(tenantID uuid.UUID) Entity {
	return Entity{TenantID: tenantID}
}

// IsNew reports whether the entity has never been saved.
func (e Entity) IsNew() bool {
	return !e.ID.Valid
}

// SameAs reports whether e and other denote the same persisted entity.
// Unsaved entities are never the same as anything.
func (e Entity) SameAs(other Entity) bool {
	return e.ID.Valid && other.ID.Valid &&
		e.ID.UUID == other.ID.UUID &&
		e.TenantID == other.TenantID
}

// Persisted returns a valid NullUUID for id.
func Persisted(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: true}
}

func (e Entity) validate() error {
	if e.TenantID == uuid.Nil {
		return NewValidationError("tenant_id", "cannot be empty", ErrEmptyTenant)
	}
	if e.ID.Valid && e.ID.UUID == uuid.Nil {
		return NewValidationError("id", "cannot be the nil UUID", ErrInvalidID)
	}
	return nil
}
