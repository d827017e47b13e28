package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike, so callers cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("Invalid credentials.") //nolint:staticcheck // user-facing message

	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")
)

// Configuration failures. They are fatal at start-up and never retried.
var (
	// ErrConfiguration is the kind shared by every configuration failure.
	ErrConfiguration = errors.New("authentication configuration failure")

	// ErrSigningSecretMissing is returned when the signing secret is empty.
	ErrSigningSecretMissing = &configError{msg: "signing secret is missing"}

	// ErrSigningNotConfigured is returned when a service is built without
	// signing configuration.
	ErrSigningNotConfigured = &configError{msg: "signing configuration has not been initialized"}
)

type configError struct {
	msg string
}

func (e *configError) Error() string { return e.msg }
func (e *configError) Unwrap() error { return ErrConfiguration }
