package repository

import (
	"context"
	"errors"

	"chickenmaster-api/models"

	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository over Postgres. The
// order-id and token lookups are indexed columns instead of the file store's
// in-memory index and linear scan.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new instance of GormPaymentRepository.
func NewGormPaymentRepository(db *gorm.DB) PaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create inserts a new payment.
func (r *GormPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// FindByID retrieves a payment by id.
func (r *GormPaymentRepository) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// FindByOrderID retrieves the most recent payment for an order.
func (r *GormPaymentRepository) FindByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// FindByToken retrieves a payment by its gateway token.
func (r *GormPaymentRepository) FindByToken(ctx context.Context, token string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Where("paydunya_token = ?", token).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// Update saves an existing payment; missing rows surface as ErrNotFound.
func (r *GormPaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	res := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ?", payment.ID).
		Select("*").Omit("id", "created_at").
		Updates(payment)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindAll retrieves all payments, newest first.
func (r *GormPaymentRepository) FindAll(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
