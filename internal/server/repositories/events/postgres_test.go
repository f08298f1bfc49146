package events

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolcloud/identity/internal/common"
	"github.com/schoolcloud/identity/internal/server/models"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgresRepository_Append(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectExec("INSERT INTO events").
		WithArgs("a@b.com", "1700000000123#deadbeef", "auth.login", "OK", "Login success",
			[]byte(`{"ip":"10.0.0.1"}`), int64(1700000000123)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(context.Background(), &models.Event{
		Subject: "a@b.com",
		SortKey: "1700000000123#deadbeef",
		Type:    "auth.login",
		Status:  "OK",
		Message: "Login success",
		Data:    map[string]any{"ip": "10.0.0.1"},
		TS:      1700000000123,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Append_NilDataStoredAsEmptyObject(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectExec("INSERT INTO events").
		WithArgs("a@b.com", "1000#aa", "auth.signup", "OK", "Account created",
			[]byte(`{}`), int64(1000)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(context.Background(), &models.Event{
		Subject: "a@b.com",
		SortKey: "1000#aa",
		Type:    "auth.signup",
		Status:  "OK",
		Message: "Account created",
		TS:      1000,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Append_StorageError(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectExec("INSERT INTO events").
		WillReturnError(errors.New("connection reset"))

	err := repo.Append(context.Background(), &models.Event{Subject: "a@b.com"})
	assert.ErrorIs(t, err, common.ErrorStorage)
}

func TestPostgresRepository_ListBySubject(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	rows := sqlmock.NewRows([]string{"subject", "sk", "type", "status", "message", "data", "ts"}).
		AddRow("a@b.com", "2000#bb", "auth.login", "OK", "Login success", []byte(`{}`), int64(2000)).
		AddRow("a@b.com", "1000#aa", "auth.signup", "OK", "Account created", []byte(`{"role":"student"}`), int64(1000))
	mock.ExpectQuery("SELECT subject, sk, type, status, message, data, ts FROM events").
		WithArgs("a@b.com", int64(0)).
		WillReturnRows(rows)

	got, err := repo.ListBySubject(context.Background(), "a@b.com", 0, 0)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "2000#bb", got[0].SortKey)
	assert.Equal(t, "auth.signup", got[1].Type)
	assert.Equal(t, map[string]any{"role": "student"}, got[1].Data)
}

func TestPostgresRepository_ListBySubject_Limit(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	rows := sqlmock.NewRows([]string{"subject", "sk", "type", "status", "message", "data", "ts"}).
		AddRow("a@b.com", "2000#bb", "auth.login", "OK", "Login success", []byte(`{}`), int64(2000))
	mock.ExpectQuery("(?s)SELECT subject, sk, .+ FROM events.+LIMIT").
		WithArgs("a@b.com", int64(1500), 1).
		WillReturnRows(rows)

	got, err := repo.ListBySubject(context.Background(), "a@b.com", 1500, 1)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "2000#bb", got[0].SortKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListBySubject_StorageError(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT subject").
		WillReturnError(errors.New("timeout"))

	_, err := repo.ListBySubject(context.Background(), "a@b.com", 0, 0)
	assert.ErrorIs(t, err, common.ErrorStorage)
}
