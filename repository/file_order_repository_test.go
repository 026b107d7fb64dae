package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"chickenmaster-api/models"
	"chickenmaster-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newOrderRepo(t *testing.T, dir string) *repository.FileOrderRepository {
	t.Helper()
	repo, err := repository.NewFileOrderRepository(dir, zap.NewNop())
	require.NoError(t, err)
	return repo
}

func sampleOrder(id string, createdAt time.Time) *models.Order {
	return &models.Order{
		ID:           id,
		OrderNumber:  "CM-" + id,
		CustomerName: "Awa",
		Items: models.OrderItems{
			{ProductName: "Menu", Quantity: 1, Price: 4500},
		},
		Total:     4500,
		OrderType: models.OrderTypeTakeaway,
		Status:    models.OrderStatusPending,
		CreatedAt: createdAt,
	}
}

func TestFileOrderRepository_CreateAndFind(t *testing.T) {
	repo := newOrderRepo(t, t.TempDir())
	ctx := context.Background()

	order := sampleOrder("order-1", time.Now())
	require.NoError(t, repo.Create(ctx, order))

	got, err := repo.FindByID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, "Awa", got.CustomerName)
	assert.Equal(t, models.OrderStatusPending, got.Status)

	_, err = repo.FindByID(ctx, "order-missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFileOrderRepository_UpdateNoUpsert(t *testing.T) {
	repo := newOrderRepo(t, t.TempDir())
	ctx := context.Background()

	err := repo.Update(ctx, sampleOrder("order-ghost", time.Now()))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFileOrderRepository_UpdateLastWriteWins(t *testing.T) {
	repo := newOrderRepo(t, t.TempDir())
	ctx := context.Background()

	order := sampleOrder("order-1", time.Now())
	require.NoError(t, repo.Create(ctx, order))

	order.Status = models.OrderStatusConfirmed
	require.NoError(t, repo.Update(ctx, order))

	got, err := repo.FindByID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, got.Status)
}

func TestFileOrderRepository_FindAllNewestFirst(t *testing.T) {
	repo := newOrderRepo(t, t.TempDir())
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 3; i++ {
		o := sampleOrder(fmt.Sprintf("order-%d", i), base.Add(time.Duration(i)*time.Second))
		require.NoError(t, repo.Create(ctx, o))
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "order-2", all[0].ID)
	assert.Equal(t, "order-0", all[2].ID)
}

func TestFileOrderRepository_ReloadKeepsEverything(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo := newOrderRepo(t, dir)
	want := map[string]models.OrderStatus{}
	for i := 0; i < 5; i++ {
		o := sampleOrder(fmt.Sprintf("order-%d", i), time.Now().Add(time.Duration(i)*time.Millisecond))
		require.NoError(t, repo.Create(ctx, o))
		want[o.ID] = o.Status
	}
	// mutate one record so the reload reflects updates too
	o, err := repo.FindByID(ctx, "order-3")
	require.NoError(t, err)
	o.Status = models.OrderStatusConfirmed
	require.NoError(t, repo.Update(ctx, o))
	want[o.ID] = models.OrderStatusConfirmed

	// a fresh repository over the same directory simulates a restart
	reloaded := newOrderRepo(t, dir)
	all, err := reloaded.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(want))
	for _, got := range all {
		assert.Equal(t, want[got.ID], got.Status, got.ID)
	}
}

func TestFileOrderRepository_CorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeFile(dir, "orders.json", "{not json"))

	repo := newOrderRepo(t, dir)
	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
