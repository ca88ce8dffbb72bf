package services

import (
	"context"
	"errors"
	"fmt"

	"pizza-orders/internal/models"
	"pizza-orders/internal/repository"

	"github.com/rs/zerolog"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type UserService struct {
	users  repository.UserRepository
	logger zerolog.Logger
}

func NewUserService(users repository.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

func (s *UserService) Register(ctx context.Context, user models.User) error {
	if user.Email == "" || user.Password == "" {
		return errors.New("email and password are required")
	}
	if _, ok := models.ParseRole(string(user.Role)); !ok {
		user.Role = models.RoleCustomer
	}

	err := s.users.Create(ctx, user)
	if errors.Is(err, repository.ErrUserExists) {
		s.logger.Warn().Str("email", user.Email).Msg("Registration with existing email")
		return err
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Error creating user")
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("User registered successfully")
	return nil
}

// Authenticate compares the stored cleartext password with the submitted one.
// Every user stored under email is tried in order.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	users, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Warn().Str("email", email).Msg("Failed authentication attempt")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("Error querying user")
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	for _, user := range users {
		if user.Password == password {
			s.logger.Info().Str("email", user.Email).Msg("User authenticated successfully")
			return &user, nil
		}
	}

	s.logger.Warn().Str("email", email).Msg("Failed authentication attempt")
	return nil, ErrInvalidCredentials
}
