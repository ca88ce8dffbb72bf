package db

import (
	"context"
	"regexp"
	"testing"

	"pizza-orders/internal/models"
	"pizza-orders/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryFindByEmail(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	repo := NewUserRepository(conn, zerolog.Nop())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT email, password, role FROM users WHERE email = ?")).
		WithArgs("sam@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"email", "password", "role"}).AddRow("sam@example.com", "pw1234", "s"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT email, password, role FROM users WHERE email = ?")).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"email", "password", "role"}))

	users, err := repo.FindByEmail(context.Background(), "sam@example.com")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleStaff, users[0].Role)

	_, err = repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateDuplicate(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()
	repo := NewUserRepository(conn, zerolog.Nop())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("sam@example.com", "pw1234", "customer").
		WillReturnError(&mysql.MySQLError{Number: errDuplicateEntry, Message: "Duplicate entry"})

	err = repo.Create(context.Background(), models.User{Email: "sam@example.com", Password: "pw1234", Role: models.RoleCustomer})

	assert.ErrorIs(t, err, repository.ErrUserExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
