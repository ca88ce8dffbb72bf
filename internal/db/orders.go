package db

import (
	"context"
	"database/sql"
	"fmt"

	"pizza-orders/internal/models"
	"pizza-orders/internal/repository"

	"github.com/rs/zerolog"
)

const orderColumns = "id, type, crust, size, quantity, price_per, order_date"

// OrderRepository is the MySQL implementation of repository.OrderRepository.
// Ids follow the same count+1 rule as the JSON store.
type OrderRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewOrderRepository(db *sql.DB, logger zerolog.Logger) *OrderRepository {
	return &OrderRepository{
		db:     db,
		logger: logger,
	}
}

func scanOrder(row interface{ Scan(...any) error }) (models.PizzaOrder, error) {
	var o models.PizzaOrder
	err := row.Scan(&o.ID, &o.Type, &o.Crust, &o.Size, &o.Quantity, &o.PricePer, &o.OrderDate)
	return o, err
}

func (r *OrderRepository) List(ctx context.Context) ([]models.PizzaOrder, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+orderColumns+" FROM pizza_orders ORDER BY row_id")
	if err != nil {
		r.logger.Error().Err(err).Msg("Error listing orders")
		return nil, fmt.Errorf("database error: %w", err)
	}
	defer rows.Close()

	orders := []models.PizzaOrder{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) Get(ctx context.Context, id int) (*models.PizzaOrder, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+orderColumns+" FROM pizza_orders WHERE id = ? ORDER BY row_id LIMIT 1", id)

	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrOrderNotFound
	}
	if err != nil {
		r.logger.Error().Err(err).Int("order_id", id).Msg("Error fetching order")
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &o, nil
}

func (r *OrderRepository) Create(ctx context.Context, order models.PizzaOrder) (*models.PizzaOrder, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM pizza_orders FOR UPDATE").Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	order.ID = count + 1

	if err := insertOrder(ctx, tx, order); err != nil {
		return nil, err
	}

	if err := audit(ctx, tx, order.ID, models.OrderActionCreated, order.Type); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error().Err(err).Msg("Error committing order")
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &order, nil
}

func (r *OrderRepository) Update(ctx context.Context, order models.PizzaOrder) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var matches int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM pizza_orders WHERE id = ? FOR UPDATE", order.ID).Scan(&matches); err != nil {
		return fmt.Errorf("failed to look up order: %w", err)
	}
	if matches == 0 {
		return repository.ErrOrderNotFound
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE pizza_orders SET type = ?, crust = ?, size = ?, quantity = ?, price_per = ?, order_date = ? WHERE id = ?",
		order.Type, order.Crust, order.Size, order.Quantity, order.PricePer, order.OrderDate, order.ID,
	)
	if err != nil {
		r.logger.Error().Err(err).Int("order_id", order.ID).Msg("Error updating order")
		return fmt.Errorf("failed to update order: %w", err)
	}

	if err := audit(ctx, tx, order.ID, models.OrderActionUpdated, order.Type); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *OrderRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, "DELETE FROM pizza_orders WHERE id = ?", id)
	if err != nil {
		r.logger.Error().Err(err).Int("order_id", id).Msg("Error deleting order")
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if n, _ := result.RowsAffected(); n > 0 {
		if err := audit(ctx, tx, id, models.OrderActionDeleted, ""); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepository) ReplaceAll(ctx context.Context, orders []models.PizzaOrder) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM pizza_orders"); err != nil {
		return fmt.Errorf("failed to clear orders: %w", err)
	}
	for _, o := range orders {
		if err := insertOrder(ctx, tx, o); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertOrder(ctx context.Context, tx *sql.Tx, o models.PizzaOrder) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO pizza_orders ("+orderColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		o.ID, o.Type, o.Crust, o.Size, o.Quantity, o.PricePer, o.OrderDate,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func audit(ctx context.Context, tx *sql.Tx, orderID int, action models.OrderAction, details string) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO audit_logs (entity_type, entity_id, action, details) VALUES (?, ?, ?, ?)",
		"pizza_order", orderID, string(action), details,
	)
	if err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
