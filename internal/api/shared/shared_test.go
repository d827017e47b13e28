package shared_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/contracts-api/internal/api/shared"
	"github.com/phrazzld/contracts-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityRoundTrip(t *testing.T) {
	t.Parallel()

	_, ok := shared.IdentityFrom(context.Background())
	assert.False(t, ok)

	id := shared.Identity{UserID: uuid.New(), TenantID: uuid.New(), Role: domain.RoleAdmin}
	got, ok := shared.IdentityFrom(shared.WithIdentity(context.Background(), id))
	require.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = shared.IdentityFrom(shared.WithIdentity(context.Background(), shared.Identity{UserID: uuid.New()}))
	assert.False(t, ok, "identity without tenant is rejected")
}

func TestTraceID(t *testing.T) {
	t.Parallel()

	assert.Empty(t, shared.GetTraceID(context.Background()))
	ctx := shared.SetTraceID(context.Background())
	assert.Len(t, shared.GetTraceID(ctx), 32)
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `json:"name" validate:"required"`
	}

	t.Run("valid", func(t *testing.T) {
		var p payload
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
		require.NoError(t, shared.DecodeJSON(r, &p))
		assert.Equal(t, "x", p.Name)
		assert.NoError(t, shared.ValidateRequest(p))
	})

	t.Run("unknown field", func(t *testing.T) {
		var p payload
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nome":"x"}`))
		assert.Error(t, shared.DecodeJSON(r, &p))
	})

	t.Run("empty body", func(t *testing.T) {
		var p payload
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		assert.ErrorIs(t, shared.DecodeJSON(r, &p), shared.ErrEmptyBody)
	})

	t.Run("validation", func(t *testing.T) {
		assert.Error(t, shared.ValidateRequest(payload{}))
	})
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	r = r.WithContext(shared.WithTraceID(r.Context(), "trace-123"))
	w := httptest.NewRecorder()

	shared.RespondWithError(w, r, http.StatusNotFound, "Client not found.")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var body shared.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Client not found.", body.Error)
	assert.Equal(t, "trace-123", body.TraceID)
}
