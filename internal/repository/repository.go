// Package repository defines the persistence contracts used by the services
// and implements them on top of the JSON document store.
package repository

import (
	"context"
	"errors"

	"pizza-orders/internal/models"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrUserExists    = errors.New("user with this email already exists")
)

type OrderRepository interface {
	List(ctx context.Context) ([]models.PizzaOrder, error)
	Get(ctx context.Context, id int) (*models.PizzaOrder, error)
	Create(ctx context.Context, order models.PizzaOrder) (*models.PizzaOrder, error)
	Update(ctx context.Context, order models.PizzaOrder) error
	Delete(ctx context.Context, id int) error
	ReplaceAll(ctx context.Context, orders []models.PizzaOrder) error
}

type UserRepository interface {
	// FindByEmail returns every user stored under email, oldest first.
	// Older users.json files may hold more than one.
	FindByEmail(ctx context.Context, email string) ([]models.User, error)
	Create(ctx context.Context, user models.User) error
}

type CatalogRepository interface {
	Catalog(ctx context.Context) (models.Catalog, error)
}
