package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/contracts-api/internal/domain"
)

type contextKey string

const (
	traceIDKey  contextKey = "traceID"
	identityKey contextKey = "identity"
)

// Identity is the authenticated caller, taken from a verified token.
type Identity struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Email    string
	Role     domain.Role
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the caller identity stored in ctx. The second result is
// false when the request was not authenticated.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok || id.TenantID == uuid.Nil {
		return Identity{}, false
	}
	return id, true
}

// SetTraceID adds a fresh trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, NewTraceID())
}

// WithTraceID adds traceID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context, or "".
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey).(string)
	return traceID
}

// NewTraceID returns a random 32-character hex trace ID.
func NewTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
