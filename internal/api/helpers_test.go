package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/contracts-api/internal/api/shared"
	"github.com/phrazzld/contracts-api/internal/domain"
	"github.com/stretchr/testify/require"
)

var testIdentity = shared.Identity{
	UserID:   uuid.MustParse("11111111-1111-1111-1111-111111111111"),
	TenantID: uuid.MustParse("22222222-2222-2222-2222-222222222222"),
	Email:    "admin@example.com",
	Role:     domain.RoleAdmin,
}

// withIdentity stands in for the auth middleware.
func withIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(shared.WithIdentity(r.Context(), testIdentity)))
	})
}

func mount(path string, routes func(chi.Router)) http.Handler {
	r := chi.NewRouter()
	r.With(withIdentity).Route(path, routes)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, target, &buf).WithContext(context.Background())
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var body shared.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}
