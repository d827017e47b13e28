package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/contracts-api/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is the PostgreSQL error code for foreign key violations
	foreignKeyViolationCode = "23503"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"
)

// Unique constraint names declared by the migrations.
const (
	ClientCNPJConstraint   = "clients_tenant_cnpj_key"
	ClientCodeConstraint   = "clients_tenant_code_key"
	ServiceCodeConstraint  = "services_tenant_code_key"
	ContractCodeConstraint = "contracts_tenant_code_key"
	UserEmailConstraint    = "users_tenant_email_key"
)

// constraintFields maps unique constraints to the domain field they guard.
var constraintFields = map[string]string{
	ClientCNPJConstraint:   "cnpj",
	ClientCodeConstraint:   "code",
	ServiceCodeConstraint:  "code",
	ContractCodeConstraint: "contract_code",
	UserEmailConstraint:    "email",
}

// mapStoreError maps a database error to an appropriate store error.
// It wraps the original error to preserve context and provide better debugging information.
// An error that matches no rule becomes a store.StoreError naming the entity and the failed operation.
func mapStoreError(entity, operation string, err error) error {
	if mapped, ok := mapKnownError(err); ok {
		return mapped
	}
	return store.NewStoreError(entity, operation, "unexpected database error", err)
}

func mapKnownError(err error) (error, bool) {
	if err == nil {
		return nil, true
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err), true
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil, false
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		dup := &store.DuplicateError{
			Field:      constraintFields[pgErr.ConstraintName],
			Constraint: pgErr.ConstraintName,
		}
		return fmt.Errorf("%w: %v", dup, err), true
	case foreignKeyViolationCode:
		return fmt.Errorf(
			"%w: foreign key violation (%s): %v",
			store.ErrInvalidEntity,
			pgErr.ConstraintName,
			err,
		), true
	case checkViolationCode:
		return fmt.Errorf(
			"%w: check constraint violation (%s): %v",
			store.ErrInvalidEntity,
			pgErr.ConstraintName,
			err,
		), true
	case notNullViolationCode:
		return fmt.Errorf(
			"%w: not null violation (%s): %v",
			store.ErrInvalidEntity,
			pgErr.ColumnName,
			err,
		), true
	}
	return nil, false
}

// isForeignKeyViolation reports whether err is a PostgreSQL foreign key violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// CheckRowsAffected examines the number of rows affected by a database operation.
// If no rows were affected, it returns notFound (store.ErrNotFound when nil).
// UPDATE and DELETE use it to detect a missing target row.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if notFound == nil {
			return store.ErrNotFound
		}
		return notFound
	}

	return nil
}

// mapDeleteError turns a foreign key violation raised by DELETE into store.ErrDeleteFailed.
func mapDeleteError(err error, entity string) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: %s is still referenced: %v", store.ErrDeleteFailed, entity, err)
	}
	return mapStoreError(entity, "delete", err)
}
