package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/contracts-api/internal/store"
)

// Error kinds. Every not-found error returned by a service satisfies
// errors.Is(err, ErrNotFound); every uniqueness error satisfies
// errors.Is(err, ErrConflict).
//
// The API layer should map ErrNotFound to HTTP 404 and ErrConflict to HTTP 409.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// kindError is a user-facing message tagged with an error kind.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func notFound(msg string) error { return &kindError{kind: ErrNotFound, msg: msg} }
func conflict(msg string) error { return &kindError{kind: ErrConflict, msg: msg} }

// Not-found errors.
var (
	ErrClientNotFound   = notFound("Client not found.")
	ErrContractNotFound = notFound("Contract not found.")
	ErrServiceNotFound  = notFound("Service not found.")
	ErrUserNotFound     = notFound("User not found.")
)

// Conflicts raised on create.
var (
	ErrClientCNPJExists   = conflict("Client with this CNPJ already exists.")
	ErrClientCodeExists   = conflict("Client with this code already exists.")
	ErrContractCodeExists = conflict("Contract with this code already exists.")
	ErrServiceCodeExists  = conflict("Service with this code already exists.")
	ErrUserEmailExists    = conflict("User with this email already exists.")
)

// Conflicts raised on update.
var (
	ErrClientCNPJInUse   = conflict("Client CNPJ already in use.")
	ErrClientCodeInUse   = conflict("Client code already in use.")
	ErrContractCodeInUse = conflict("Contract code already in use.")
	ErrServiceCodeInUse  = conflict("Service code already in use.")
	ErrUserEmailInUse    = conflict("User email already in use.")
)

// Conflicts raised on delete while contracts still reference the entity.
var (
	ErrClientHasContracts  = conflict("Client has contracts and cannot be deleted.")
	ErrServiceHasContracts = conflict("Service has contracts and cannot be deleted.")
)

// checkUnique interprets the result of a unique-key lookup. A found entity that
// is not self yields conflictErr; absence yields nil. isSelf may be nil on create.
func checkUnique[T any](found *T, err error, isSelf func(*T) bool, conflictErr error) error {
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil
		}
		return fmt.Errorf("failed to check uniqueness: %w", err)
	}
	if found == nil {
		return nil
	}
	if isSelf != nil && isSelf(found) {
		return nil
	}
	return conflictErr
}

// mapSaveError translates a storage duplicate into the named conflict for its
// field. Other errors are wrapped.
func mapSaveError(err error, conflicts map[string]error) error {
	if field, ok := store.DuplicateField(err); ok {
		if c, ok := conflicts[field]; ok {
			return c
		}
	}
	if store.IsDuplicateError(err) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return fmt.Errorf("failed to save: %w", err)
}

// mapFindError turns a store not-found into notFoundErr.
func mapFindError(err error, notFoundErr error) error {
	if store.IsNotFoundError(err) {
		return notFoundErr
	}
	return fmt.Errorf("failed to load: %w", err)
}
