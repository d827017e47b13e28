package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/contracts-api/internal/domain"
	"github.com/phrazzld/contracts-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("thisisaverylongsecretkeythatisatleast32characters")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestJWTTokens_SignAndParse(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tokens := auth.NewJWTTokens().WithClock(fixedClock(now))
	claims := auth.Claims{
		UserID:   uuid.New(),
		Email:    "ana@example.com",
		Role:     domain.RoleAdmin,
		TenantID: uuid.New(),
	}

	token, err := tokens.Sign(context.Background(), claims, testSecret, auth.SignOptions{ExpiresIn: time.Hour})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := tokens.Parse(context.Background(), token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, parsed.UserID)
	assert.Equal(t, claims.Email, parsed.Email)
	assert.Equal(t, claims.Role, parsed.Role)
	assert.Equal(t, claims.TenantID, parsed.TenantID)
	assert.Equal(t, claims.UserID.String(), parsed.Subject)
	assert.Equal(t, now.Add(time.Hour).Unix(), parsed.ExpiresAt.Unix())
	assert.NotEmpty(t, parsed.ID)
}

func TestJWTTokens_DefaultExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tokens := auth.NewJWTTokens().WithClock(fixedClock(now))
	token, err := tokens.Sign(context.Background(),
		auth.Claims{UserID: uuid.New(), TenantID: uuid.New()}, testSecret, auth.SignOptions{})
	require.NoError(t, err)

	parsed, err := tokens.Parse(context.Background(), token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, now.Add(24*time.Hour).Unix(), parsed.ExpiresAt.Unix())
}

func TestJWTTokens_ParseFailures(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	signer := auth.NewJWTTokens().WithClock(fixedClock(now))
	claims := auth.Claims{UserID: uuid.New(), TenantID: uuid.New()}
	token, err := signer.Sign(context.Background(), claims, testSecret, auth.SignOptions{ExpiresIn: time.Hour})
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := signer.WithClock(fixedClock(now.Add(2 * time.Hour)))
		_, err := later.Parse(context.Background(), token, testSecret)
		assert.ErrorIs(t, err, auth.ErrExpiredToken)
	})

	t.Run("within clock skew", func(t *testing.T) {
		later := signer.WithClock(fixedClock(now.Add(time.Hour + time.Minute)))
		_, err := later.Parse(context.Background(), token, testSecret)
		assert.NoError(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := signer.Parse(context.Background(), token, []byte("another-secret-another-secret-xx"))
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := signer.Parse(context.Background(), "not.a.token", testSecret)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := signer.Parse(context.Background(), "", testSecret)
		assert.ErrorIs(t, err, auth.ErrMissingToken)
	})

	t.Run("other algorithm", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
			"id":        claims.UserID.String(),
			"tenant_id": claims.TenantID.String(),
			"exp":       now.Add(time.Hour).Unix(),
		})
		s, err := raw.SignedString(testSecret)
		require.NoError(t, err)
		_, err = signer.Parse(context.Background(), s, testSecret)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestJWTTokens_SignWithoutSecret(t *testing.T) {
	t.Parallel()

	_, err := auth.NewJWTTokens().Sign(context.Background(), auth.Claims{}, nil, auth.SignOptions{})
	assert.ErrorIs(t, err, auth.ErrConfiguration)
}
