package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// OrderType distinguishes delivery orders from pickup orders.
type OrderType string

const (
	OrderTypeDelivery OrderType = "livraison"
	OrderTypeTakeaway OrderType = "emporter"
)

// OrderItem is a denormalized line item, copied from the catalog at order
// time so later menu edits never rewrite order history.
type OrderItem struct {
	ProductName   string  `json:"product_name"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	SelectedDrink string  `json:"selected_drink,omitempty"`
}

// OrderItems is stored as a jsonb column under the Postgres backend.
type OrderItems []OrderItem

func (i OrderItems) Value() (driver.Value, error) {
	return json.Marshal(i)
}

func (i *OrderItems) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, i)
	case string:
		return json.Unmarshal([]byte(v), i)
	case nil:
		*i = nil
		return nil
	default:
		return fmt.Errorf("unsupported type %T for OrderItems", src)
	}
}

// Order is a customer's submitted purchase request.
type Order struct {
	ID              string      `json:"id" gorm:"type:varchar(64);primaryKey"`
	OrderNumber     string      `json:"order_number" gorm:"type:varchar(64);not null;index"`
	CustomerName    string      `json:"customer_name" gorm:"type:varchar(255);not null"`
	CustomerPhone   string      `json:"customer_phone" gorm:"type:varchar(32)"`
	DeliveryAddress string      `json:"delivery_address" gorm:"type:varchar(512)"`
	DeliveryZone    string      `json:"delivery_zone" gorm:"type:varchar(128)"`
	Landmark        string      `json:"landmark" gorm:"type:varchar(255)"`
	Items           OrderItems  `json:"items" gorm:"type:jsonb"`
	Total           float64     `json:"total" gorm:"not null"`
	OrderType       OrderType   `json:"order_type" gorm:"type:varchar(16);not null"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);not null"`
	CreatedAt       time.Time   `json:"created_at" gorm:"not null;index"`
	PaymentID       string      `json:"payment_id,omitempty" gorm:"type:varchar(64)"`
}

// CreateOrderRequest is the payload for POST /api/orders.
type CreateOrderRequest struct {
	OrderNumber     string     `json:"order_number" binding:"required"`
	CustomerName    string     `json:"customer_name" binding:"required"`
	CustomerPhone   string     `json:"customer_phone"`
	DeliveryAddress string     `json:"delivery_address"`
	DeliveryZone    string     `json:"delivery_zone"`
	Landmark        string     `json:"landmark"`
	Items           OrderItems `json:"items" binding:"required"`
	Total           float64    `json:"total" binding:"required"`
	OrderType       OrderType  `json:"order_type" binding:"required,oneof=livraison emporter"`
}

// UpdateOrderRequest is the payload for PUT /api/orders/:orderId. Only the
// fields listed here can change; id and created_at are immutable.
type UpdateOrderRequest struct {
	OrderNumber     *string      `json:"order_number"`
	CustomerName    *string      `json:"customer_name"`
	CustomerPhone   *string      `json:"customer_phone"`
	DeliveryAddress *string      `json:"delivery_address"`
	DeliveryZone    *string      `json:"delivery_zone"`
	Landmark        *string      `json:"landmark"`
	Items           *OrderItems  `json:"items"`
	Total           *float64     `json:"total"`
	OrderType       *OrderType   `json:"order_type"`
	Status          *OrderStatus `json:"status"`
	PaymentID       *string      `json:"payment_id"`
}
