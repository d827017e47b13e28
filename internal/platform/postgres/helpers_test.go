package postgres

import (
	"database/sql"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/contracts-api/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

var (
	testTenant = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	testID     = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

// newMock returns a sqlmock-backed DB whose expectations are checked at cleanup.
func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func quietLogger() *slog.Logger {
	_, l := logger.NewTestLogger()
	return l
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: constraint}
}

func fkViolation(constraint string) error {
	return &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: constraint}
}
