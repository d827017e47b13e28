package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/contracts-api/internal/domain"
	"github.com/phrazzld/contracts-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clientRowColumns = []string{"id", "tenant_id", "code", "nickname", "company_name", "cnpj"}

func newTestClient(t *testing.T) *domain.Client {
	t.Helper()
	c, err := domain.NewClient(testTenant, domain.ClientDraft{
		Code:        10,
		Nickname:    "ACME",
		CompanyName: "ACME Ltda",
		CNPJ:        "12345678000190",
	})
	require.NoError(t, err)
	return c
}

func TestNewPostgresClientStore(t *testing.T) {
	db, _ := newMock(t)
	s := NewPostgresClientStore(db, nil)
	assert.NotNil(t, s.logger)

	assert.Panics(t, func() { NewPostgresClientStore(nil, nil) })
}

func TestPostgresClientStore_SaveInsertsNewClient(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresClientStore(db, quietLogger())
	c := newTestClient(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO clients")).
		WithArgs(testTenant, 10, "ACME", "ACME Ltda", "12345678000190").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(testID.String()))

	saved, err := s.Save(context.Background(), c)

	require.NoError(t, err)
	assert.Same(t, c, saved)
	assert.True(t, saved.ID.Valid)
	assert.Equal(t, testID, saved.ID.UUID)
}

func TestPostgresClientStore_SaveUpdatesExistingClient(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresClientStore(db, quietLogger())
	c := newTestClient(t)
	c.ID = domain.Persisted(testID)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE clients")).
		WithArgs(testTenant, testID, 10, "ACME", "ACME Ltda", "12345678000190").
		WillReturnResult(sqlmock.NewResult(0, 1))

	saved, err := s.Save(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, testID, saved.ID.UUID)
}

func TestPostgresClientStore_SaveUpdateMissingRow(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresClientStore(db, quietLogger())
	c := newTestClient(t)
	c.ID = domain.Persisted(testID)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE clients")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := s.Save(context.Background(), c)
	assert.ErrorIs(t, err, store.ErrClientNotFound)
}

func TestPostgresClientStore_SaveMapsUniqueViolation(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresClientStore(db, quietLogger())

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO clients")).
		WillReturnError(uniqueViolation(ClientCNPJConstraint))

	_, err := s.Save(context.Background(), newTestClient(t))

	require.Error(t, err)
	assert.True(t, store.IsDuplicateError(err))
	field, ok := store.DuplicateField(err)
	assert.True(t, ok)
	assert.Equal(t, "cnpj", field)
}

func TestPostgresClientStore_SaveRejectsInvalidClient(t *testing.T) {
	db, _ := newMock(t)
	s := NewPostgresClientStore(db, quietLogger())
	c := newTestClient(t)
	c.Nickname = ""

	_, err := s.Save(context.Background(), c)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPostgresClientStore_FindByID(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresClientStore(db, quietLogger())

	mock.ExpectQuery(regexp.QuoteMeta("FROM clients WHERE tenant_id = $1 AND id = $2")).
		WithArgs(testTenant, testID).
		WillReturnRows(sqlmock.NewRows(clientRowColumns).
			AddRow(testID.String(), testTenant.String(), 10, "ACME", "ACME Ltda", "123"))

	c, err := s.FindByID(context.Background(), testTenant, testID)

	require.NoError(t, err)
	assert.Equal(t, domain.Persisted(testID), c.ID)
	assert.Equal(t, testTenant, c.TenantID)
	assert.Equal(t, 10, c.Code)
	assert.Equal(t, "123", c.CNPJ)
}

func TestPostgresClientStore_FindByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresClientStore(db, quietLogger())

	mock.ExpectQuery(regexp.QuoteMeta("FROM clients")).
		WillReturnRows(sqlmock.NewRows(clientRowColumns))

	c, err := s.FindByID(context.Background(), testTenant, testID)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, store.ErrClientNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestPostgresClientStore_FindByCNPJAndCode(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresClientStore(db, quietLogger())

	mock.ExpectQuery(regexp.QuoteMeta("cnpj = $2")).
		WithArgs(testTenant, "123").
		WillReturnRows(sqlmock.NewRows(clientRowColumns).
			AddRow(testID.String(), testTenant.String(), 10, "ACME", "ACME Ltda", "123"))
	mock.ExpectQuery(regexp.QuoteMeta("code = $2")).
		WithArgs(testTenant, 99).
		WillReturnRows(sqlmock.NewRows(clientRowColumns))

	c, err := s.FindByCNPJ(context.Background(), testTenant, "123")
	require.NoError(t, err)
	assert.Equal(t, "ACME", c.Nickname)

	_, err = s.FindByCode(context.Background(), testTenant, 99)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestPostgresClientStore_ListAll(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresClientStore(db, quietLogger())
	otherID := "33333333-3333-3333-3333-333333333333"

	mock.ExpectQuery(regexp.QuoteMeta("FROM clients WHERE tenant_id = $1 ORDER BY code")).
		WithArgs(testTenant).
		WillReturnRows(sqlmock.NewRows(clientRowColumns).
			AddRow(testID.String(), testTenant.String(), 1, "A", "A Ltda", "1").
			AddRow(otherID, testTenant.String(), 2, "B", "B Ltda", "2"))

	clients, err := s.ListAll(context.Background(), testTenant)
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, "B", clients[1].Nickname)
}

func TestPostgresClientStore_ListAllEmpty(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresClientStore(db, quietLogger())

	mock.ExpectQuery(regexp.QuoteMeta("FROM clients")).
		WillReturnRows(sqlmock.NewRows(clientRowColumns))

	clients, err := s.ListAll(context.Background(), testTenant)
	require.NoError(t, err)
	assert.NotNil(t, clients)
	assert.Empty(t, clients)
}

func TestPostgresClientStore_Delete(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresClientStore(db, quietLogger())

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM clients")).
		WithArgs(testTenant, testID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM clients")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM clients")).
		WillReturnError(fkViolation("contracts_client_fkey"))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM clients")).
		WillReturnError(errors.New("connection reset"))

	ctx := context.Background()
	assert.NoError(t, s.Delete(ctx, testTenant, testID))
	assert.ErrorIs(t, s.Delete(ctx, testTenant, testID), store.ErrClientNotFound)
	assert.ErrorIs(t, s.Delete(ctx, testTenant, testID), store.ErrDeleteFailed)

	err := s.Delete(ctx, testTenant, testID)
	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "client", storeErr.Entity)
	assert.Equal(t, "delete", storeErr.Operation)
	assert.EqualError(t, errors.Unwrap(err), "connection reset")
}

func TestPostgresClientStore_ListAllUnexpectedError(t *testing.T) {
	db, mock := newMock(t)
	s := NewPostgresClientStore(db, quietLogger())

	connErr := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("FROM clients WHERE tenant_id = $1")).
		WithArgs(testTenant).
		WillReturnError(connErr)

	_, err := s.ListAll(context.Background(), testTenant)

	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "client", storeErr.Entity)
	assert.Equal(t, "list", storeErr.Operation)
	assert.ErrorIs(t, err, connErr)
}
