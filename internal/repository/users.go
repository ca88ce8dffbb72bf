package repository

import (
	"context"
	"fmt"
	"sync"

	"pizza-orders/internal/models"
	"pizza-orders/internal/store"
)

type JSONUserRepository struct {
	mu    sync.Mutex
	store store.Accessor
}

func NewJSONUserRepository(s store.Accessor) *JSONUserRepository {
	return &JSONUserRepository{store: s}
}

func (r *JSONUserRepository) load() ([]models.User, error) {
	var users []models.User
	if err := r.store.Load(store.Users, &users); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return users, nil
}

func (r *JSONUserRepository) FindByEmail(ctx context.Context, email string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return nil, err
	}

	var matches []models.User
	for _, u := range users {
		if u.Email == email {
			matches = append(matches, u)
		}
	}
	if len(matches) == 0 {
		return nil, ErrUserNotFound
	}
	return matches, nil
}

func (r *JSONUserRepository) Create(ctx context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return err
	}

	for _, u := range users {
		if u.Email == user.Email {
			return ErrUserExists
		}
	}

	users = append(users, user)
	if err := r.store.Write(store.Users, users); err != nil {
		return fmt.Errorf("failed to write users: %w", err)
	}
	return nil
}

// JSONCatalogRepository reads init.json on every call; the catalog is never
// written by the application.
type JSONCatalogRepository struct {
	store store.Accessor
}

func NewJSONCatalogRepository(s store.Accessor) *JSONCatalogRepository {
	return &JSONCatalogRepository{store: s}
}

func (r *JSONCatalogRepository) Catalog(ctx context.Context) (models.Catalog, error) {
	var catalog models.Catalog
	if err := r.store.Load(store.Catalog, &catalog); err != nil {
		return models.Catalog{}, fmt.Errorf("failed to load catalog: %w", err)
	}
	return catalog, nil
}
