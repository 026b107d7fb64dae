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

const ordersFile = "orders.json"

// FileOrderRepository keeps all orders in memory and mirrors them to a JSON
// array file after every mutation. Writes are serialized behind the mutex and
// flushed through a temp-file rename, so a crash mid-write never corrupts the
// previous snapshot.
type FileOrderRepository struct {
	mu     sync.RWMutex
	path   string
	orders map[string]*models.Order
	logger *zap.Logger
}

// NewFileOrderRepository loads the orders file from dataDir, creating the
// directory if needed. A missing or unreadable file yields an empty store.
func NewFileOrderRepository(dataDir string, logger *zap.Logger) (*FileOrderRepository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	r := &FileOrderRepository{
		path:   filepath.Join(dataDir, ordersFile),
		orders: make(map[string]*models.Order),
		logger: logger,
	}
	r.load()
	return r, nil
}

func (r *FileOrderRepository) load() {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Warn("Failed to read orders file, starting empty",
				zap.String("path", r.path), zap.Error(err))
		}
		return
	}

	var orders []models.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		r.logger.Warn("Corrupt orders file, starting empty",
			zap.String("path", r.path), zap.Error(err))
		return
	}

	for i := range orders {
		o := orders[i]
		r.orders[o.ID] = &o
	}
	r.logger.Info("Loaded orders from file",
		zap.Int("count", len(orders)), zap.String("path", r.path))
}

// flush writes the full collection to disk. Caller must hold the write lock.
func (r *FileOrderRepository) flush() error {
	orders := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		orders = append(orders, *o)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})

	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal orders: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write orders file: %w", err)
	}
	return os.Rename(tmp, r.path)
}

// Create stores a new order and persists the collection.
func (r *FileOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *order
	r.orders[cp.ID] = &cp
	return r.flush()
}

// FindByID returns the order or ErrNotFound.
func (r *FileOrderRepository) FindByID(_ context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

// Update replaces an existing order; it never upserts.
func (r *FileOrderRepository) Update(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return ErrNotFound
	}
	cp := *order
	r.orders[cp.ID] = &cp
	return r.flush()
}

// FindAll returns every order, newest first.
func (r *FileOrderRepository) FindAll(_ context.Context) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		orders = append(orders, *o)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}
