package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"chickenmaster-api/models"
	"chickenmaster-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFile(dir, name, content string) error {
	return os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
}

func newPaymentRepo(t *testing.T, dir string) *repository.FilePaymentRepository {
	t.Helper()
	repo, err := repository.NewFilePaymentRepository(dir, zap.NewNop())
	require.NoError(t, err)
	return repo
}

func samplePayment(id, orderID string) *models.Payment {
	return &models.Payment{
		ID:            id,
		OrderID:       orderID,
		Amount:        4500,
		PaymentMethod: models.PaymentMethodWave,
		Status:        models.PaymentStatusPending,
		CreatedAt:     time.Now(),
	}
}

func TestFilePaymentRepository_FindByOrderID(t *testing.T) {
	repo := newPaymentRepo(t, t.TempDir())
	ctx := context.Background()

	p := samplePayment("payment-1", "order-1")
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.FindByOrderID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, "payment-1", got.ID)
	assert.Equal(t, "order-1", got.OrderID)

	_, err = repo.FindByOrderID(ctx, "order-2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFilePaymentRepository_IndexFollowsUpdates(t *testing.T) {
	repo := newPaymentRepo(t, t.TempDir())
	ctx := context.Background()

	p := samplePayment("payment-1", "order-1")
	require.NoError(t, repo.Create(ctx, p))

	p.Status = models.PaymentStatusProcessing
	p.PaydunyaToken = "token_123"
	require.NoError(t, repo.Update(ctx, p))

	// both lookup paths must see the same record
	byID, err := repo.FindByID(ctx, "payment-1")
	require.NoError(t, err)
	byOrder, err := repo.FindByOrderID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, byID, byOrder)
	assert.Equal(t, models.PaymentStatusProcessing, byOrder.Status)
}

func TestFilePaymentRepository_FindByToken(t *testing.T) {
	repo := newPaymentRepo(t, t.TempDir())
	ctx := context.Background()

	p := samplePayment("payment-1", "order-1")
	p.PaydunyaToken = "token_abc"
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.Create(ctx, samplePayment("payment-2", "order-2")))

	got, err := repo.FindByToken(ctx, "token_abc")
	require.NoError(t, err)
	assert.Equal(t, "payment-1", got.ID)

	_, err = repo.FindByToken(ctx, "token_zzz")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// an empty token must never match payments without one
	_, err = repo.FindByToken(ctx, "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFilePaymentRepository_SecondPaymentTakesOverOrderIndex(t *testing.T) {
	repo := newPaymentRepo(t, t.TempDir())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, samplePayment("payment-1", "order-1")))
	require.NoError(t, repo.Create(ctx, samplePayment("payment-2", "order-1")))

	got, err := repo.FindByOrderID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, "payment-2", got.ID)

	// the first payment stays reachable by id
	first, err := repo.FindByID(ctx, "payment-1")
	require.NoError(t, err)
	assert.Equal(t, "payment-1", first.ID)
}

func TestFilePaymentRepository_ReloadRebuildsIndex(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo := newPaymentRepo(t, dir)
	p := samplePayment("payment-1", "order-1")
	p.PaydunyaToken = "token_abc"
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.Create(ctx, samplePayment("payment-2", "order-2")))

	reloaded := newPaymentRepo(t, dir)
	all, err := reloaded.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byOrder, err := reloaded.FindByOrderID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, "payment-1", byOrder.ID)

	byToken, err := reloaded.FindByToken(ctx, "token_abc")
	require.NoError(t, err)
	assert.Equal(t, "payment-1", byToken.ID)
}

func TestFilePaymentRepository_MissingFileStartsEmpty(t *testing.T) {
	repo := newPaymentRepo(t, t.TempDir())
	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
