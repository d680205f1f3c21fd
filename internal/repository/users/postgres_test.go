package users

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonylazarte/ecommerce-page/internal/common"
	"github.com/jonylazarte/ecommerce-page/internal/model"
)

func TestCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("u1", "Ana", "ana@example.com", "hash", model.RoleUser).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	repo := NewPostgresRepository(db)
	user, err := repo.Create(context.Background(), &model.User{
		ID:           "u1",
		Name:         "Ana",
		Email:        "ana@example.com",
		PasswordHash: "hash",
		Role:         model.RoleUser,
	})
	require.NoError(t, err)
	assert.Equal(t, now, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM users`).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at", "updated_at"}))

	repo := NewPostgresRepository(db)
	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM users`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresRepository(db)
	err = repo.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`UPDATE users SET role`).
		WithArgs("u1", model.RoleAdmin).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "email", "password_hash", "role", "created_at", "updated_at"}).
			AddRow("u1", "Ana", "ana@example.com", "hash", "ADMIN", now, now))

	repo := NewPostgresRepository(db)
	user, err := repo.UpdateRole(context.Background(), "u1", model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}
