package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/contracts-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) {
	return 0, nil
}

func (m mockResult) RowsAffected() (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.rowsAffected, nil
}

func TestMapStoreErrorCodes(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		expectedError error
	}{
		{name: "nil_error", err: nil, expectedError: nil},
		{name: "sql_no_rows", err: sql.ErrNoRows, expectedError: store.ErrNotFound},
		{name: "unique_violation", err: uniqueViolation(ClientCNPJConstraint), expectedError: store.ErrDuplicate},
		{name: "foreign_key_violation", err: fkViolation("contracts_client_fkey"), expectedError: store.ErrInvalidEntity},
		{
			name:          "check_violation",
			err:           &pgconn.PgError{Code: checkViolationCode, ConstraintName: "contracts_quantity_check"},
			expectedError: store.ErrInvalidEntity,
		},
		{
			name:          "not_null_violation",
			err:           &pgconn.PgError{Code: notNullViolationCode, ColumnName: "nickname"},
			expectedError: store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapStoreError("client", "save", tt.err)
			if tt.expectedError == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.expectedError)
		})
	}

}

func TestMapStoreErrorCarriesDuplicateField(t *testing.T) {
	tests := []struct {
		constraint string
		field      string
	}{
		{ClientCNPJConstraint, "cnpj"},
		{ClientCodeConstraint, "code"},
		{ServiceCodeConstraint, "code"},
		{ContractCodeConstraint, "contract_code"},
		{UserEmailConstraint, "email"},
	}
	for _, tt := range tests {
		err := mapStoreError("client", "save", fmt.Errorf("insert: %w", uniqueViolation(tt.constraint)))
		field, ok := store.DuplicateField(err)
		require.True(t, ok, tt.constraint)
		assert.Equal(t, tt.field, field)
	}

	_, ok := store.DuplicateField(mapStoreError("client", "save", uniqueViolation("some_other_key")))
	assert.False(t, ok)
}

func TestCheckRowsAffected(t *testing.T) {
	assert.NoError(t, CheckRowsAffected(mockResult{rowsAffected: 1}, nil))
	assert.ErrorIs(t, CheckRowsAffected(mockResult{rowsAffected: 0}, nil), store.ErrNotFound)
	assert.ErrorIs(t, CheckRowsAffected(mockResult{rowsAffected: 0}, store.ErrUserNotFound), store.ErrUserNotFound)
	assert.Error(t, CheckRowsAffected(mockResult{err: errors.New("boom")}, nil))
	assert.Error(t, CheckRowsAffected(nil, nil))
}

func TestForeignKeyViolationPredicate(t *testing.T) {
	assert.True(t, isForeignKeyViolation(fmt.Errorf("wrapped: %w", fkViolation("x"))))
	assert.False(t, isForeignKeyViolation(uniqueViolation("x")))
	assert.False(t, isForeignKeyViolation(errors.New("plain")))
}

func TestMapStoreError(t *testing.T) {
	assert.NoError(t, mapStoreError("client", "find", nil))

	dup := mapStoreError("client", "save", uniqueViolation(ClientCNPJConstraint))
	assert.ErrorIs(t, dup, store.ErrDuplicate)
	var storeErr *store.StoreError
	assert.False(t, errors.As(dup, &storeErr))

	orig := errors.New("connection reset")
	err := mapStoreError("contract", "list", orig)
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "contract", storeErr.Entity)
	assert.Equal(t, "list", storeErr.Operation)
	assert.ErrorIs(t, err, orig)
}

func TestMapDeleteError(t *testing.T) {
	assert.ErrorIs(t, mapDeleteError(fkViolation("contracts_client_fkey"), "client"), store.ErrDeleteFailed)
	assert.ErrorIs(t, mapDeleteError(sql.ErrNoRows, "client"), store.ErrNotFound)

	var storeErr *store.StoreError
	require.ErrorAs(t, mapDeleteError(errors.New("timeout"), "service"), &storeErr)
	assert.Equal(t, "service", storeErr.Entity)
	assert.Equal(t, "delete", storeErr.Operation)
}
