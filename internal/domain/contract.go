package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContractStatus is the lifecycle state of a contract.
type ContractStatus string

// Valid contract statuses.
const (
	ContractActive    ContractStatus = "ACTIVE"
	ContractInactive  ContractStatus = "INACTIVE"
	ContractSuspended ContractStatus = "SUSPENDED"
	ContractCanceled  ContractStatus = "CANCELED"
)

// Valid reports whether s is a known status.
func (s ContractStatus) Valid() bool {
	switch s {
	case ContractActive, ContractInactive, ContractSuspended, ContractCanceled:
		return true
	}
	return false
}

// ContractCode identifies a contract within a tenant. It is compared as text,
// so the JSON number 10 and the JSON string "10" decode to the same code.
type ContractCode string

// NewContractCode normalizes raw into a ContractCode.
func NewContractCode(raw string) ContractCode {
	return ContractCode(strings.TrimSpace(raw))
}

// String returns the code as text.
func (c ContractCode) String() string {
	return string(c)
}

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (c *ContractCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = NewContractCode(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("contract code must be a string or a number: %w", err)
	}
	code, err := canonicalNumber(n.String())
	if err != nil {
		return err
	}
	*c = ContractCode(code)
	return nil
}

// canonicalNumber renders a JSON number so that 10, 10.0 and 1e1 all give "10".
func canonicalNumber(s string) (string, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return "", fmt.Errorf("contract code %s is not a representable number", s)
	}
	if f == 0 {
		f = 0 // drops the sign of -0
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}

// Contract binds a client to a catalog service for a period.
// ContractCode is unique within the tenant. EndDate stays nil while the contract is open.
type Contract struct {
	Entity
	ContractCode ContractCode   `json:"contract_code"`
	ClientID     uuid.UUID      `json:"client_id"`
	ServiceID    uuid.UUID      `json:"service_id"`
	Quantity     int            `json:"quantity"`
	UnitPrice    float64        `json:"unit_price"`
	StartDate    time.Time      `json:"start_date"`
	EndDate      *time.Time     `json:"end_date"`
	Status       ContractStatus `json:"status"`
	Observation  *string        `json:"observation"`
}

// ContractDraft carries the fields of a contract to be created.
type ContractDraft struct {
	ContractCode ContractCode   `json:"contract_code" validate:"required"`
	ClientID     uuid.UUID      `json:"client_id"     validate:"required"`
	ServiceID    uuid.UUID      `json:"service_id"    validate:"required"`
	Quantity     int            `json:"quantity"      validate:"gt=0"`
	UnitPrice    float64        `json:"unit_price"    validate:"gte=0"`
	StartDate    time.Time      `json:"start_date"    validate:"required"`
	EndDate      *time.Time     `json:"end_date"`
	Status       ContractStatus `json:"status"        validate:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED CANCELED"`
	Observation  *string        `json:"observation"`
}

// ContractPatch carries the fields of a partial contract update.
type ContractPatch struct {
	ContractCode Field[ContractCode]   `json:"contract_code"`
	ClientID     Field[uuid.UUID]      `json:"client_id"`
	ServiceID    Field[uuid.UUID]      `json:"service_id"`
	Quantity     Field[int]            `json:"quantity"`
	UnitPrice    Field[float64]        `json:"unit_price"`
	StartDate    Field[time.Time]      `json:"start_date"`
	EndDate      Field[*time.Time]     `json:"end_date"`
	Status       Field[ContractStatus] `json:"status"`
	Observation  Field[*string]        `json:"observation"`
}

// NewContract builds an unsaved contract for tenantID from draft.
// An empty status defaults to ACTIVE.
func NewContract(tenantID uuid.UUID, draft ContractDraft) (*Contract, error) {
	status := draft.Status
	if status == "" {
		status = ContractActive
	}
	c := &Contract{
		Entity:       NewEntity(tenantID),
		ContractCode: NewContractCode(string(draft.ContractCode)),
		ClientID:     draft.ClientID,
		ServiceID:    draft.ServiceID,
		Quantity:     draft.Quantity,
		UnitPrice:    draft.UnitPrice,
		StartDate:    draft.StartDate,
		EndDate:      draft.EndDate,
		Status:       status,
		Observation:  draft.Observation,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the contract's invariants.
func (c *Contract) Validate() error {
	if err := c.Entity.validate(); err != nil {
		return err
	}
	if c.ContractCode == "" {
		return NewValidationError("contract_code", "cannot be empty", nil)
	}
	if c.ClientID == uuid.Nil {
		return NewValidationError("client_id", "cannot be empty", ErrInvalidID)
	}
	if c.ServiceID == uuid.Nil {
		return NewValidationError("service_id", "cannot be empty", ErrInvalidID)
	}
	if c.Quantity <= 0 {
		return NewValidationError("quantity", "must be positive", nil)
	}
	if c.UnitPrice < 0 {
		return NewValidationError("unit_price", "cannot be negative", nil)
	}
	if c.StartDate.IsZero() {
		return NewValidationError("start_date", "cannot be empty", nil)
	}
	if c.EndDate != nil && c.EndDate.Before(c.StartDate) {
		return NewValidationError("end_date", "cannot be before start_date", nil)
	}
	if !c.Status.Valid() {
		return NewValidationError("status", fmt.Sprintf("%q is not a valid status", c.Status), ErrInvalidStatus)
	}
	return nil
}

// Apply merges the supplied patch fields into c.
func (c *Contract) Apply(p ContractPatch) {
	if p.ContractCode.Set {
		c.ContractCode = NewContractCode(string(p.ContractCode.Value))
	}
	p.ClientID.Apply(&c.ClientID)
	p.ServiceID.Apply(&c.ServiceID)
	p.Quantity.Apply(&c.Quantity)
	p.UnitPrice.Apply(&c.UnitPrice)
	p.StartDate.Apply(&c.StartDate)
	p.EndDate.Apply(&c.EndDate)
	p.Status.Apply(&c.Status)
	p.Observation.Apply(&c.Observation)
}
