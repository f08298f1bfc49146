package users

import (
	"context"
	"database/sql"
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

func TestPostgresRepository_Create(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectExec("INSERT INTO users").
		WithArgs("a@b.com", "student", "sch-1", "2008-01-01", "", "c2FsdA==", "aGFzaA==", int64(1700000000)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &models.User{
		Email:        "a@b.com",
		Role:         models.RoleStudent,
		SchoolID:     "sch-1",
		DOB:          "2008-01-01",
		Salt:         "c2FsdA==",
		PasswordHash: "aGFzaA==",
		CreatedAt:    1700000000,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Create_ExistingEmailRejected(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	// ON CONFLICT DO NOTHING reports zero affected rows for a duplicate
	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Create(context.Background(), &models.User{Email: "a@b.com"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestPostgresRepository_Create_StorageError(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("connection reset"))

	err := repo.Create(context.Background(), &models.User{Email: "a@b.com"})
	assert.ErrorIs(t, err, common.ErrorStorage)
}

func TestPostgresRepository_Get(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	rows := sqlmock.NewRows([]string{"email", "role", "school_id", "dob", "enc", "salt", "pwh", "created_at"}).
		AddRow("a@b.com", "teacher", "sch-1", "1990-05-05", "SSE-S3", "c2FsdA==", "aGFzaA==", int64(1700000000))
	mock.ExpectQuery("SELECT email, role, school_id, dob, enc, salt, pwh, created_at FROM users").
		WithArgs("a@b.com").
		WillReturnRows(rows)

	user, err := repo.Get(context.Background(), "a@b.com")
	require.NoError(t, err)

	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, models.RoleTeacher, user.Role)
	assert.Equal(t, "SSE-S3", user.Encryption)
	assert.Equal(t, "aGFzaA==", user.PasswordHash)
	assert.Equal(t, int64(1700000000), user.CreatedAt)
}

func TestPostgresRepository_Get_NotFound(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery("SELECT email, role").
		WithArgs("ghost@b.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "ghost@b.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresRepository_UpdateRole(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectExec("UPDATE users SET role").
		WithArgs("a@b.com", "admin").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateRole(context.Background(), "a@b.com", models.RoleAdmin)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_UpdateEncryption(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectExec("UPDATE users SET enc").
		WithArgs("a@b.com", "SSE-KMS").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateEncryption(context.Background(), "a@b.com", "SSE-KMS")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Update_MissingUser(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectExec("UPDATE users SET role").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateRole(context.Background(), "ghost@b.com", models.RoleStudent)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
