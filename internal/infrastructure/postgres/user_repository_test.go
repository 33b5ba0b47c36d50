package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "authgate/backend/internal/domain/auth"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (pgxmock.PgxPoolIface, *UserRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewUserRepository(mock)
}

func testUser() *domain.User {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return &domain.User{
		ID:           "3f1e9a34-0000-0000-0000-000000000001",
		Username:     "alice",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepository_Create(t *testing.T) {
	mock, repo := newMockRepo(t)
	user := testUser()

	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), user))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateUniqueViolation(t *testing.T) {
	mock, repo := newMockRepo(t)
	user := testUser()

	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	err := repo.Create(context.Background(), user)
	assert.ErrorIs(t, err, domain.ErrUserExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateOtherError(t *testing.T) {
	mock, repo := newMockRepo(t)
	user := testUser()

	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt).
		WillReturnError(errors.New("connection refused"))

	err := repo.Create(context.Background(), user)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUserExists)
}

func TestUserRepository_GetByUsername(t *testing.T) {
	mock, repo := newMockRepo(t)
	user := testUser()

	rows := pgxmock.NewRows([]string{"id", "username", "password_hash", "created_at", "updated_at"}).
		AddRow(user.ID, user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	mock.ExpectQuery("SELECT id, username, password_hash, created_at, updated_at").
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, user, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUsernameNotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery("SELECT id, username, password_hash, created_at, updated_at").
		WithArgs("nobody").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_GetByID(t *testing.T) {
	mock, repo := newMockRepo(t)
	user := testUser()

	rows := pgxmock.NewRows([]string{"id", "username", "password_hash", "created_at", "updated_at"}).
		AddRow(user.ID, user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	mock.ExpectQuery("SELECT id, username, password_hash, created_at, updated_at").
		WithArgs(user.ID).
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestUserRepository_GetByIDNotFound(t *testing.T) {
	mock, repo := newMockRepo(t)

	mock.ExpectQuery("SELECT id, username, password_hash, created_at, updated_at").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
