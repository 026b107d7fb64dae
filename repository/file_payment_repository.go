package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"chickenmaster-api/models"

	"go.uber.org/zap"
)

const paymentsFile = "payments.json"

// FilePaymentRepository keeps payments in memory, mirrored to a JSON array
// file after every mutation. A separate order-id index backs the
// payment-for-order lookup; only primary records are written to disk, and the
// index is rebuilt on load.
type FilePaymentRepository struct {
	mu       sync.RWMutex
	path     string
	payments map[string]*models.Payment
	byOrder  map[string]string // order id -> payment id
	logger   *zap.Logger
}

// NewFilePaymentRepository loads the payments file from dataDir, creating the
// directory if needed. A missing or unreadable file yields an empty store.
func NewFilePaymentRepository(dataDir string, logger *zap.Logger) (*FilePaymentRepository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	r := &FilePaymentRepository{
		path:     filepath.Join(dataDir, paymentsFile),
		payments: make(map[string]*models.Payment),
		byOrder:  make(map[string]string),
		logger:   logger,
	}
	r.load()
	return r, nil
}

func (r *FilePaymentRepository) load() {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Warn("Failed to read payments file, starting empty",
				zap.String("path", r.path), zap.Error(err))
		}
		return
	}

	var payments []models.Payment
	if err := json.Unmarshal(data, &payments); err != nil {
		r.logger.Warn("Corrupt payments file, starting empty",
			zap.String("path", r.path), zap.Error(err))
		return
	}

	for i := range payments {
		p := payments[i]
		r.payments[p.ID] = &p
		r.byOrder[p.OrderID] = p.ID
	}
	r.logger.Info("Loaded payments from file",
		zap.Int("count", len(payments)), zap.String("path", r.path))
}

// flush writes the primary records to disk. Caller must hold the write lock.
func (r *FilePaymentRepository) flush() error {
	payments := make([]models.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		payments = append(payments, *p)
	}
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].CreatedAt.Before(payments[j].CreatedAt)
	})

	data, err := json.MarshalIndent(payments, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal payments: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write payments file: %w", err)
	}
	return os.Rename(tmp, r.path)
}

// Create stores a new payment, indexes it by order id and persists. A second
// payment for the same order takes over the order index, matching the
// one-active-payment-per-order lookup contract.
func (r *FilePaymentRepository) Create(_ context.Context, payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *payment
	r.payments[cp.ID] = &cp
	r.byOrder[cp.OrderID] = cp.ID
	return r.flush()
}

// FindByID returns the payment or ErrNotFound.
func (r *FilePaymentRepository) FindByID(_ context.Context, id string) (*models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// FindByOrderID resolves the order index and returns the payment or
// ErrNotFound.
func (r *FilePaymentRepository) FindByOrderID(_ context.Context, orderID string) (*models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byOrder[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	p, ok := r.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// FindByToken scans all payments for a matching gateway token. Linear, which
// is fine at this store's scale.
func (r *FilePaymentRepository) FindByToken(_ context.Context, token string) (*models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.payments {
		if p.PaydunyaToken != "" && p.PaydunyaToken == token {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

// Update replaces an existing payment and re-points the order index so both
// lookup paths stay aliased to the same record.
func (r *FilePaymentRepository) Update(_ context.Context, payment *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.payments[payment.ID]; !ok {
		return ErrNotFound
	}
	cp := *payment
	r.payments[cp.ID] = &cp
	r.byOrder[cp.OrderID] = cp.ID
	return r.flush()
}

// FindAll returns every payment, newest first.
func (r *FilePaymentRepository) FindAll(_ context.Context) ([]models.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payments := make([]models.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		payments = append(payments, *p)
	}
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
	return payments, nil
}
