package repository

import (
	"context"
	"fmt"
	"sync"

	"pizza-orders/internal/models"
	"pizza-orders/internal/store"
)

// Append assigns the next id as len(orders)+1 and appends the order. Ids are
// not checked for uniqueness, so after a deletion the new id can repeat one
// that is still present.
func Append(orders []models.PizzaOrder, order models.PizzaOrder) []models.PizzaOrder {
	order.ID = len(orders) + 1
	return append(orders, order)
}

// FindByID returns the first order with the given id.
func FindByID(orders []models.PizzaOrder, id int) (models.PizzaOrder, bool) {
	for _, o := range orders {
		if o.ID == id {
			return o, true
		}
	}
	return models.PizzaOrder{}, false
}

// RemoveByID returns a new slice without any order carrying id.
func RemoveByID(orders []models.PizzaOrder, id int) []models.PizzaOrder {
	kept := make([]models.PizzaOrder, 0, len(orders))
	for _, o := range orders {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	return kept
}

// JSONOrderRepository keeps pizzaorders.json as the single source of truth.
// Every operation reloads the file and mutations write it back while holding
// mu, so two requests in the same process cannot overwrite each other.
type JSONOrderRepository struct {
	mu    sync.Mutex
	store store.Accessor
}

func NewJSONOrderRepository(s store.Accessor) *JSONOrderRepository {
	return &JSONOrderRepository{store: s}
}

func (r *JSONOrderRepository) load() ([]models.PizzaOrder, error) {
	var orders []models.PizzaOrder
	if err := r.store.Load(store.Orders, &orders); err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	return orders, nil
}

func (r *JSONOrderRepository) write(orders []models.PizzaOrder) error {
	if orders == nil {
		orders = []models.PizzaOrder{}
	}
	if err := r.store.Write(store.Orders, orders); err != nil {
		return fmt.Errorf("failed to write orders: %w", err)
	}
	return nil
}

func (r *JSONOrderRepository) List(ctx context.Context) ([]models.PizzaOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *JSONOrderRepository) Get(ctx context.Context, id int) (*models.PizzaOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load()
	if err != nil {
		return nil, err
	}

	order, ok := FindByID(orders, id)
	if !ok {
		return nil, ErrOrderNotFound
	}
	return &order, nil
}

func (r *JSONOrderRepository) Create(ctx context.Context, order models.PizzaOrder) (*models.PizzaOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load()
	if err != nil {
		return nil, err
	}

	orders = Append(orders, order)
	if err := r.write(orders); err != nil {
		return nil, err
	}

	created := orders[len(orders)-1]
	return &created, nil
}

// Update overwrites the fields of every order that carries order.ID.
func (r *JSONOrderRepository) Update(ctx context.Context, order models.PizzaOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load()
	if err != nil {
		return err
	}

	found := false
	for i := range orders {
		if orders[i].ID == order.ID {
			orders[i] = order
			found = true
		}
	}
	if !found {
		return ErrOrderNotFound
	}

	return r.write(orders)
}

// Delete removes every order with the id. An absent id is not an error.
func (r *JSONOrderRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load()
	if err != nil {
		return err
	}

	return r.write(RemoveByID(orders, id))
}

// ReplaceAll persists exactly the given collection.
func (r *JSONOrderRepository) ReplaceAll(ctx context.Context, orders []models.PizzaOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(orders)
}
