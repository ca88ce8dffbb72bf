package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"pizza-orders/internal/models"
	"pizza-orders/internal/repository"

	"github.com/rs/zerolog"
)

type OrderEvents interface {
	OrderEvent(action models.OrderAction)
}

type OrderService struct {
	orders  repository.OrderRepository
	catalog repository.CatalogRepository
	events  OrderEvents
	logger  zerolog.Logger
}

func NewOrderService(orders repository.OrderRepository, catalog repository.CatalogRepository, events OrderEvents, logger zerolog.Logger) *OrderService {
	return &OrderService{
		orders:  orders,
		catalog: catalog,
		events:  events,
		logger:  logger,
	}
}

func (s *OrderService) record(action models.OrderAction) {
	if s.events != nil {
		s.events.OrderEvent(action)
	}
}

func (s *OrderService) Catalog(ctx context.Context) (models.Catalog, error) {
	c, err := s.catalog.Catalog(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error loading catalog")
		return models.Catalog{}, err
	}
	return c, nil
}

func (s *OrderService) List(ctx context.Context) ([]models.PizzaOrder, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error listing orders")
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id int) (*models.PizzaOrder, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrOrderNotFound) {
		s.logger.Error().Err(err).Int("order_id", id).Msg("Error fetching order")
	}
	return order, err
}

func (s *OrderService) Create(ctx context.Context, order models.PizzaOrder) (*models.PizzaOrder, error) {
	if order.Quantity <= 0 {
		return nil, errors.New("quantity must be greater than zero")
	}
	if order.PricePer < 0 || math.IsInf(order.PricePer, 0) || math.IsNaN(order.PricePer) {
		return nil, errors.New("price must be a non-negative number")
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error creating order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.record(models.OrderActionCreated)
	s.logger.Info().
		Int("order_id", created.ID).
		Str("type", created.Type).
		Int("quantity", created.Quantity).
		Msg("Order created")
	return created, nil
}

func (s *OrderService) Update(ctx context.Context, order models.PizzaOrder) error {
	err := s.orders.Update(ctx, order)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return err
	}
	if err != nil {
		s.logger.Error().Err(err).Int("order_id", order.ID).Msg("Error updating order")
		return fmt.Errorf("failed to update order: %w", err)
	}

	s.record(models.OrderActionUpdated)
	s.logger.Info().Int("order_id", order.ID).Msg("Order updated")
	return nil
}

func (s *OrderService) Delete(ctx context.Context, id int) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Int("order_id", id).Msg("Error deleting order")
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.record(models.OrderActionDeleted)
	s.logger.Info().Int("order_id", id).Msg("Order deleted")
	return nil
}
