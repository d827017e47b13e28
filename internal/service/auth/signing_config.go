package auth

import (
	"strings"
	"time"
)

// DefaultTokenLifetime is used when no expiry is configured.
const DefaultTokenLifetime = 24 * time.Hour

// SigningConfig holds the token signing secret. It is built once at start-up
// and passed to the services that sign or verify tokens; it is read-only after
// construction and safe for concurrent use.
type SigningConfig struct {
	secret    []byte
	expiresIn time.Duration
}

// NewSigningConfig validates secret and returns the configuration.
// A non-positive expiresIn selects DefaultTokenLifetime.
func NewSigningConfig(secret string, expiresIn time.Duration) (*SigningConfig, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSigningSecretMissing
	}
	if expiresIn <= 0 {
		expiresIn = DefaultTokenLifetime
	}
	return &SigningConfig{
		secret:    []byte(secret),
		expiresIn: expiresIn,
	}, nil
}

// Secret returns a copy of the signing secret.
func (c *SigningConfig) Secret() []byte {
	out := make([]byte, len(c.secret))
	copy(out, c.secret)
	return out
}

// ExpiresIn returns the lifetime of issued tokens.
func (c *SigningConfig) ExpiresIn() time.Duration {
	return c.expiresIn
}
