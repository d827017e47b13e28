package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validClientDraft() ClientDraft {
	return ClientDraft{
		Code:        10,
		Nickname:    " ACME ",
		CompanyName: "ACME Ltda",
		CNPJ:        " 12.345.678/0001-90 ",
	}
}

func TestNewClient(t *testing.T) {
	tenant := uuid.New()

	c, err := NewClient(tenant, validClientDraft())
	require.NoError(t, err)
	assert.True(t, c.IsNew())
	assert.Equal(t, "ACME", c.Nickname)
	assert.Equal(t, "12.345.678/0001-90", c.CNPJ)
	assert.Equal(t, 10, c.Code)

	tests := []struct {
		name   string
		mutate func(*ClientDraft)
		field  string
	}{
		{"negative code", func(d *ClientDraft) { d.Code = -1 }, "code"},
		{"blank nickname", func(d *ClientDraft) { d.Nickname = "  " }, "nickname"},
		{"blank company", func(d *ClientDraft) { d.CompanyName = "" }, "company_name"},
		{"blank cnpj", func(d *ClientDraft) { d.CNPJ = "" }, "cnpj"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validClientDraft()
			tt.mutate(&d)
			_, err := NewClient(tenant, d)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestClientApply(t *testing.T) {
	c, err := NewClient(uuid.New(), validClientDraft())
	require.NoError(t, err)

	c.Apply(ClientPatch{CNPJ: Some(" 99 "), Code: Some(20)})

	assert.Equal(t, "99", c.CNPJ)
	assert.Equal(t, 20, c.Code)
	assert.Equal(t, "ACME", c.Nickname, "absent fields are untouched")
	assert.Equal(t, "ACME Ltda", c.CompanyName)
}

func TestClientApplyTrimsNames(t *testing.T) {
	c, err := NewClient(uuid.New(), validClientDraft())
	require.NoError(t, err)

	c.Apply(ClientPatch{Nickname: Some("  Acme Sul "), CompanyName: Some(" ACME Sul Ltda")})
	assert.Equal(t, "Acme Sul", c.Nickname)
	assert.Equal(t, "ACME Sul Ltda", c.CompanyName)

	c.Apply(ClientPatch{Nickname: Some("   ")})
	var verr *ValidationError
	require.ErrorAs(t, c.Validate(), &verr)
	assert.Equal(t, "nickname", verr.Field)
}
