package repository

import (
	"context"
	"errors"

	"chickenmaster-api/models"
)

// ErrNotFound is returned when an id is not present in the store.
var ErrNotFound = errors.New("record not found")

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	FindAll(ctx context.Context) ([]models.Order, error)
}

// PaymentRepository defines the interface for payment data access. Lookups
// by order id and by gateway token exist alongside the primary id lookup.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id string) (*models.Payment, error)
	FindByOrderID(ctx context.Context, orderID string) (*models.Payment, error)
	FindByToken(ctx context.Context, token string) (*models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
	FindAll(ctx context.Context) ([]models.Payment, error)
}

// AdminUserRepository defines the interface for dashboard account access.
type AdminUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	FindByID(ctx context.Context, id string) (*models.AdminUser, error)
	Update(ctx context.Context, user *models.AdminUser) error
}
