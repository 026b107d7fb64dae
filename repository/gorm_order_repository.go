package repository

import (
	"context"
	"errors"

	"chickenmaster-api/models"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository over Postgres. Selected with
// STORE_BACKEND=postgres; the file store stays the default.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new instance of GormOrderRepository.
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts a new order.
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByID retrieves an order by id.
func (r *GormOrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Update saves an existing order; missing rows surface as ErrNotFound.
func (r *GormOrderRepository) Update(ctx context.Context, order *models.Order) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", order.ID).
		Select("*").Omit("id", "created_at").
		Updates(order)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindAll retrieves all orders, newest first.
func (r *GormOrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
