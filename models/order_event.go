package models

import "time"

// OrderEvent is published to Kafka whenever an order or its payment changes
// state, so downstream consumers (notifications, analytics) can react without
// polling the API.
type OrderEvent struct {
	Type      string    `json:"type"` // "order_created", "order_status_changed", "payment_status_changed"
	OrderID   string    `json:"order_id"`
	PaymentID string    `json:"payment_id,omitempty"`
	Status    string    `json:"status"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventOrderCreated         = "order_created"
	EventOrderStatusChanged   = "order_status_changed"
	EventPaymentStatusChanged = "payment_status_changed"
)
