package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/contracts-api/internal/service/auth"
	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher is a mock of auth.PasswordHasher and auth.PasswordVerifier.
type MockPasswordHasher struct {
	mock.Mock
}

var (
	_ auth.PasswordHasher   = (*MockPasswordHasher)(nil)
	_ auth.PasswordVerifier = (*MockPasswordHasher)(nil)
)

// Hash is a mock implementation of auth.PasswordHasher.Hash
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

// Compare is a mock implementation of auth.PasswordVerifier.Compare
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	args := m.Called(hashedPassword, password)
	return args.Error(0)
}

// MockTokenSigner is a mock of auth.TokenSigner.
type MockTokenSigner struct {
	mock.Mock
}

var _ auth.TokenSigner = (*MockTokenSigner)(nil)

// Sign is a mock implementation of auth.TokenSigner.Sign
func (m *MockTokenSigner) Sign(
	ctx context.Context,
	claims auth.Claims,
	secret []byte,
	opts auth.SignOptions,
) (string, error) {
	args := m.Called(ctx, claims, secret, opts)
	return args.String(0), args.Error(1)
}

// MockTokenParser is a mock of auth.TokenParser.
type MockTokenParser struct {
	mock.Mock
}

var _ auth.TokenParser = (*MockTokenParser)(nil)

// Parse is a mock implementation of auth.TokenParser.Parse
func (m *MockTokenParser) Parse(ctx context.Context, token string, secret []byte) (*auth.Claims, error) {
	args := m.Called(ctx, token, secret)
	if c, ok := args.Get(0).(*auth.Claims); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockAuthenticator is a mock of auth.Authenticator.
type MockAuthenticator struct {
	mock.Mock
}

var _ auth.Authenticator = (*MockAuthenticator)(nil)

// Authenticate is a mock implementation of auth.Authenticator.Authenticate
func (m *MockAuthenticator) Authenticate(
	ctx context.Context,
	tenantID uuid.UUID,
	email, password string,
) (*auth.Result, error) {
	args := m.Called(ctx, tenantID, email, password)
	if r, ok := args.Get(0).(*auth.Result); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
