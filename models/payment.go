package models

import "time"

// PaymentMethod is one of the supported mobile-money wallets.
type PaymentMethod string

const (
	PaymentMethodWave        PaymentMethod = "wave"
	PaymentMethodOrangeMoney PaymentMethod = "orange-money"
)

// Payment is a record of a funds-collection attempt tied to one order.
type Payment struct {
	ID                 string        `json:"id" gorm:"type:varchar(64);primaryKey"`
	OrderID            string        `json:"order_id" gorm:"type:varchar(64);not null;index"`
	Amount             float64       `json:"amount" gorm:"not null"`
	PaymentMethod      PaymentMethod `json:"payment_method" gorm:"type:varchar(20);not null"`
	Status             PaymentStatus `json:"status" gorm:"type:varchar(20);not null"`
	PaydunyaToken      string        `json:"paydunya_token,omitempty" gorm:"type:varchar(128);index"`
	PaydunyaInvoiceURL string        `json:"paydunya_invoice_url,omitempty" gorm:"type:varchar(512)"`
	CustomerName       string        `json:"customer_name,omitempty" gorm:"type:varchar(255)"`
	CustomerPhone      string        `json:"customer_phone,omitempty" gorm:"type:varchar(32)"`
	PaidAt             *time.Time    `json:"paid_at,omitempty"`
	ErrorMessage       string        `json:"error_message,omitempty" gorm:"type:varchar(512)"`
	CreatedAt          time.Time     `json:"created_at" gorm:"not null;index"`
}

// CreatePaymentRequest is the payload for POST /api/payments.
type CreatePaymentRequest struct {
	OrderID       string        `json:"order_id" binding:"required"`
	Amount        float64       `json:"amount" binding:"required"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"required,oneof=wave orange-money"`
	CustomerName  string        `json:"customer_name"`
	CustomerPhone string        `json:"customer_phone"`
}

// UpdatePaymentRequest is the payload for PUT /api/payments/:paymentId.
// Id, order_id and created_at are immutable.
type UpdatePaymentRequest struct {
	Amount             *float64       `json:"amount"`
	PaymentMethod      *PaymentMethod `json:"payment_method"`
	Status             *PaymentStatus `json:"status"`
	PaydunyaToken      *string        `json:"paydunya_token"`
	PaydunyaInvoiceURL *string        `json:"paydunya_invoice_url"`
	CustomerName       *string        `json:"customer_name"`
	CustomerPhone      *string        `json:"customer_phone"`
	PaidAt             *time.Time     `json:"paid_at"`
	ErrorMessage       *string        `json:"error_message"`
}

// PaydunyaInitializeRequest is the payload for POST /api/paydunya/initialize.
// Order metadata rides along for invoice display but only the first four
// fields drive the session.
type PaydunyaInitializeRequest struct {
	OrderID       string        `json:"order_id" binding:"required"`
	PaymentID     string        `json:"payment_id" binding:"required"`
	Total         float64       `json:"total" binding:"required"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"required"`
	OrderNumber   string        `json:"order_number"`
	Items         OrderItems    `json:"items"`
	CustomerName  string        `json:"customer_name"`
	CustomerPhone string        `json:"customer_phone"`
	OrderType     OrderType     `json:"order_type"`
}

// PaydunyaInitializeResponse mirrors the gateway's session-creation reply.
type PaydunyaInitializeResponse struct {
	Success       bool   `json:"success"`
	PaymentURL    string `json:"payment_url"`
	Token         string `json:"token"`
	TransactionID string `json:"transaction_id"`
}

// PaydunyaCallbackRequest is the webhook body the gateway posts back.
type PaydunyaCallbackRequest struct {
	Status     string `json:"status"`
	Token      string `json:"token"`
	CustomData struct {
		OrderID string `json:"order_id"`
	} `json:"custom_data"`
}

// PaymentStatusData is the projection returned by the paydunya status and
// verify endpoints.
type PaymentStatusData struct {
	PaymentID     string        `json:"payment_id"`
	OrderID       string        `json:"order_id"`
	Status        PaymentStatus `json:"status"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Amount        float64       `json:"amount"`
	CreatedAt     time.Time     `json:"created_at"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	ErrorMessage  string        `json:"error_message,omitempty"`
}
