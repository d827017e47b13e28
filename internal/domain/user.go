package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Password policy errors.
var (
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// Password length bounds. 72 bytes is the most bcrypt will hash.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// Role is a user's authorization level within a tenant.
type Role string

// Valid roles.
const (
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleEmployee || r == RoleAdmin
}

// User is an operator account of a tenant. Email is unique within the tenant,
// compared case-insensitively.
type User struct {
	Entity
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // never serialized
	Role         Role   `json:"role"`
}

// UserDraft carries the fields of a user to be registered. Password is plaintext
// and is hashed before the user is built.
type UserDraft struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     Role   `json:"role"     validate:"omitempty,oneof=EMPLOYEE ADMIN"`
}

// UserPatch carries the fields of a partial user update. A supplied Password is
// plaintext and replaces the stored hash.
type UserPatch struct {
	Email    Field[string] `json:"email"`
	Password Field[string] `json:"password"`
	Role     Field[Role]   `json:"role"`
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewUser builds an unsaved user for tenantID. passwordHash must already be hashed.
// An empty role defaults to EMPLOYEE.
func NewUser(tenantID uuid.UUID, email, passwordHash string, role Role) (*User, error) {
	if role == "" {
		role = RoleEmployee
	}
	u := &User{
		Entity:       NewEntity(tenantID),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         role,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks the user's invariants.
func (u *User) Validate() error {
	if err := u.Entity.validate(); err != nil {
		return err
	}
	if u.Email == "" {
		return NewValidationError("email", "cannot be empty", ErrInvalidEmail)
	}
	if !validateEmailFormat(u.Email) {
		return NewValidationError("email", "is not a valid address", ErrInvalidEmail)
	}
	if u.PasswordHash == "" {
		return NewValidationError("password_hash", "cannot be empty", ErrEmptyHashedPassword)
	}
	if !u.Role.Valid() {
		return NewValidationError("role", fmt.Sprintf("%q is not a valid role", u.Role), ErrInvalidRole)
	}
	return nil
}

// Sanitized returns a copy of u without the password hash.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.PasswordHash = ""
	return &cp
}

// ValidatePassword checks a plaintext password against the length policy.
func ValidatePassword(password string) error {
	switch n := len(password); {
	case n == 0:
		return NewValidationError("password", "cannot be empty", ErrEmptyPassword)
	case n < MinPasswordLength:
		return NewValidationError("password", "is too short", ErrPasswordTooShort)
	case n > MaxPasswordLength:
		return NewValidationError("password", "is too long", ErrPasswordTooLong)
	}
	return nil
}

// validateEmailFormat requires a non-empty local part and a dotted domain.
func validateEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 || strings.Count(email, "@") != 1 {
		return false
	}
	domainPart := email[at+1:]
	dot := strings.IndexByte(domainPart, '.')
	return dot > 0 && dot < len(domainPart)-1
}
