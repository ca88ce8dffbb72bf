package repository

import (
	"context"
	"sync"
	"testing"

	"pizza-orders/internal/models"
	"pizza-orders/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderRepo(t *testing.T) *JSONOrderRepository {
	t.Helper()
	s := store.NewFileStore(t.TempDir())
	_, err := s.Seed(false)
	require.NoError(t, err)
	return NewJSONOrderRepository(s)
}

func sampleOrder(kind string) models.PizzaOrder {
	return models.PizzaOrder{
		Type:      kind,
		Crust:     "Thin",
		Size:      "Large",
		Quantity:  2,
		PricePer:  12.5,
		OrderDate: "2024-03-01",
	}
}

func TestAppendAssignsSequentialIDs(t *testing.T) {
	var orders []models.PizzaOrder
	for i := 0; i < 5; i++ {
		orders = Append(orders, sampleOrder("Margherita"))
	}

	seen := map[int]bool{}
	for i, o := range orders {
		assert.Equal(t, i+1, o.ID)
		assert.False(t, seen[o.ID])
		seen[o.ID] = true
	}
}

func TestAppendAfterRemoveCanCollide(t *testing.T) {
	var orders []models.PizzaOrder
	for i := 0; i < 3; i++ {
		orders = Append(orders, sampleOrder("Pepperoni"))
	}

	orders = RemoveByID(orders, 1)
	orders = Append(orders, sampleOrder("Hawaiian"))

	ids := []int{}
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []int{2, 3, 3}, ids)
}

func TestFindByID(t *testing.T) {
	var orders []models.PizzaOrder
	orders = Append(orders, sampleOrder("Margherita"))
	orders = Append(orders, sampleOrder("Pepperoni"))

	got, ok := FindByID(orders, 2)
	require.True(t, ok)
	assert.Equal(t, "Pepperoni", got.Type)

	_, ok = FindByID(orders, 7)
	assert.False(t, ok)
}

func TestRemoveByIDAbsentIsNoop(t *testing.T) {
	var orders []models.PizzaOrder
	orders = Append(orders, sampleOrder("Margherita"))
	orders = Append(orders, sampleOrder("Pepperoni"))

	assert.Equal(t, orders, RemoveByID(orders, 42))
}

func TestJSONOrderRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newOrderRepo(t)

	created, err := repo.Create(ctx, sampleOrder("Vegetarian"))
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	edited := *got
	edited.Quantity = 4
	edited.OrderDate = "2024-03-02"
	require.NoError(t, repo.Update(ctx, edited))

	got, err = repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, edited, *got)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	require.NoError(t, repo.Delete(ctx, created.ID))

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestJSONOrderRepositoryUpdateMissing(t *testing.T) {
	repo := newOrderRepo(t)

	err := repo.Update(context.Background(), models.PizzaOrder{ID: 9})

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestJSONOrderRepositoryReplaceAll(t *testing.T) {
	ctx := context.Background()
	repo := newOrderRepo(t)
	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, sampleOrder("BBQ Chicken"))
		require.NoError(t, err)
	}

	keep := []models.PizzaOrder{{ID: 2, Type: "Hawaiian", OrderDate: "2024/01/05"}}
	require.NoError(t, repo.ReplaceAll(ctx, keep))

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, keep, orders)
}

func TestJSONOrderRepositoryConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	repo := newOrderRepo(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, sampleOrder("Margherita"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 20)
	for i, o := range orders {
		assert.Equal(t, i+1, o.ID)
	}
}

func TestJSONOrderRepositoryMissingFile(t *testing.T) {
	repo := NewJSONOrderRepository(store.NewFileStore(t.TempDir()))

	_, err := repo.List(context.Background())

	assert.Error(t, err)
}
