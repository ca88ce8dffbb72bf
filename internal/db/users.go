package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pizza-orders/internal/models"
	"pizza-orders/internal/repository"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog"
)

const errDuplicateEntry = 1062

type UserRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewUserRepository(db *sql.DB, logger zerolog.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// FindByEmail returns at most one user since email is the primary key.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) ([]models.User, error) {
	var user models.User
	var role string
	err := r.db.QueryRowContext(ctx,
		"SELECT email, password, role FROM users WHERE email = ?", email,
	).Scan(&user.Email, &user.Password, &role)

	if err == sql.ErrNoRows {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		r.logger.Error().Err(err).Msg("Error querying user")
		return nil, fmt.Errorf("database error: %w", err)
	}

	user.Role = models.UserRole(role)
	if parsed, ok := models.ParseRole(role); ok {
		user.Role = parsed
	}
	return []models.User{user}, nil
}

func (r *UserRepository) Create(ctx context.Context, user models.User) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (email, password, role) VALUES (?, ?, ?)",
		user.Email, user.Password, string(user.Role),
	)

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == errDuplicateEntry {
		return repository.ErrUserExists
	}
	if err != nil {
		r.logger.Error().Err(err).Msg("Error creating user")
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}
