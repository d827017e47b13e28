package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/contracts-api/internal/domain"
	"github.com/phrazzld/contracts-api/internal/platform/logger"
)

// Claims is the identity carried by a signed token.
type Claims struct {
	UserID   uuid.UUID
	Email    string
	Role     domain.Role
	TenantID uuid.UUID

	// Registered claims, filled in by the signer.
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

// SignOptions tunes a single Sign call.
type SignOptions struct {
	ExpiresIn time.Duration
}

// TokenSigner issues signed tokens.
type TokenSigner interface {
	Sign(ctx context.Context, claims Claims, secret []byte, opts SignOptions) (string, error)
}

// TokenParser validates a signed token and returns its claims.
type TokenParser interface {
	Parse(ctx context.Context, token string, secret []byte) (*Claims, error)
}

// jwtClaims is the wire shape of Claims.
type jwtClaims struct {
	UserID   uuid.UUID   `json:"id"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
	TenantID uuid.UUID   `json:"tenant_id"`
	jwt.RegisteredClaims
}

// JWTTokens signs and parses HS256 JSON Web Tokens.
type JWTTokens struct {
	timeFunc  func() time.Time // injectable for testing
	clockSkew time.Duration
}

var (
	_ TokenSigner = (*JWTTokens)(nil)
	_ TokenParser = (*JWTTokens)(nil)
)

// NewJWTTokens creates a JWTTokens that tolerates two minutes of clock drift.
func NewJWTTokens() *JWTTokens {
	return &JWTTokens{
		timeFunc:  time.Now,
		clockSkew: 2 * time.Minute,
	}
}

// WithClock returns a copy of t that reads the time from now.
func (t *JWTTokens) WithClock(now func() time.Time) *JWTTokens {
	cp := *t
	cp.timeFunc = now
	return &cp
}

// Sign implements TokenSigner. A non-positive ExpiresIn uses DefaultTokenLifetime.
func (t *JWTTokens) Sign(ctx context.Context, claims Claims, secret []byte, opts SignOptions) (string, error) {
	if len(secret) == 0 {
		return "", ErrSigningSecretMissing
	}
	expiresIn := opts.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = DefaultTokenLifetime
	}
	now := t.timeFunc()

	wire := jwtClaims{
		UserID:   claims.UserID,
		Email:    claims.Email,
		Role:     claims.Role,
		TenantID: claims.TenantID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, wire)
	signed, err := token.SignedString(secret)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign token",
			"error", err,
			"user_id", claims.UserID,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", fmt.Errorf("failed to sign token with HMAC-SHA256: %w", err)
	}
	return signed, nil
}

// Parse implements TokenParser.
func (t *JWTTokens) Parse(ctx context.Context, tokenString string, secret []byte) (*Claims, error) {
	log := logger.FromContext(ctx)
	if tokenString == "" {
		return nil, ErrMissingToken
	}
	now := t.timeFunc()

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(t.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: expired", "error", err)
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("token validation failed: not yet valid", "error", err)
			return nil, ErrTokenNotYetValid
		default:
			log.Debug("token validation failed",
				"error", err,
				"error_type", fmt.Sprintf("%T", err))
			return nil, ErrInvalidToken
		}
	}

	wire, ok := token.Claims.(*jwtClaims)
	if !ok || !token.Valid || wire.UserID == uuid.Nil || wire.TenantID == uuid.Nil {
		log.Debug("token validation failed: invalid claims")
		return nil, ErrInvalidToken
	}

	return &Claims{
		UserID:    wire.UserID,
		Email:     wire.Email,
		Role:      wire.Role,
		TenantID:  wire.TenantID,
		Subject:   wire.Subject,
		IssuedAt:  wire.IssuedAt.Time,
		ExpiresAt: wire.ExpiresAt.Time,
		ID:        wire.ID,
	}, nil
}
