package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Client is a customer company of a tenant.
// Code and CNPJ are each unique within the tenant.
type Client struct {
	Entity
	Code        int    `json:"code"`
	Nickname    string `json:"nickname"`
	CompanyName string `json:"company_name"`
	CNPJ        string `json:"cnpj"`
}

// ClientDraft carries the fields of a client to be created.
type ClientDraft struct {
	Code        int    `json:"code"         validate:"gte=0"`
	Nickname    string `json:"nickname"     validate:"required,max=120"`
	CompanyName string `json:"company_name" validate:"required,max=255"`
	CNPJ        string `json:"cnpj"         validate:"required,max=32"`
}

// ClientPatch carries the fields of a partial client update.
type ClientPatch struct {
	Code        Field[int]    `json:"code"`
	Nickname    Field[string] `json:"nickname"`
	CompanyName Field[string] `json:"company_name"`
	CNPJ        Field[string] `json:"cnpj"`
}

// NewClient builds an unsaved client for tenantID from draft.
func NewClient(tenantID uuid.UUID, draft ClientDraft) (*Client, error) {
	c := &Client{
		Entity:      NewEntity(tenantID),
		Code:        draft.Code,
		Nickname:    strings.TrimSpace(draft.Nickname),
		CompanyName: strings.TrimSpace(draft.CompanyName),
		CNPJ:        strings.TrimSpace(draft.CNPJ),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the client's invariants.
func (c *Client) Validate() error {
	if err := c.Entity.validate(); err != nil {
		return err
	}
	if c.Code < 0 {
		return NewValidationError("code", "cannot be negative", nil)
	}
	if c.Nickname == "" {
		return NewValidationError("nickname", "cannot be empty", nil)
	}
	if c.CompanyName == "" {
		return NewValidationError("company_name", "cannot be empty", nil)
	}
	if c.CNPJ == "" {
		return NewValidationError("cnpj", "cannot be empty", nil)
	}
	return nil
}

// Apply merges the supplied patch fields into c. Absent fields are untouched.
func (c *Client) Apply(p ClientPatch) {
	p.Code.Apply(&c.Code)
	if p.Nickname.Set {
		c.Nickname = strings.TrimSpace(p.Nickname.Value)
	}
	if p.CompanyName.Set {
		c.CompanyName = strings.TrimSpace(p.CompanyName.Value)
	}
	if p.CNPJ.Set {
		c.CNPJ = strings.TrimSpace(p.CNPJ.Value)
	}
}
