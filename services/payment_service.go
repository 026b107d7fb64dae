package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chickenmaster-api/kafka"
	"chickenmaster-api/models"
	"chickenmaster-api/repository"

	"go.uber.org/zap"
)

// PaymentService defines the interface for payment business logic.
type PaymentService interface {
	CreatePayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, *ServiceError)
	GetPayment(ctx context.Context, id string) (*models.Payment, *ServiceError)
	GetPaymentByOrderID(ctx context.Context, orderID string) (*models.Payment, *ServiceError)
	UpdatePayment(ctx context.Context, id string, req *models.UpdatePaymentRequest) (*models.Payment, *ServiceError)
	ListPayments(ctx context.Context) ([]models.Payment, *ServiceError)
}

type paymentServiceImpl struct {
	repo     repository.PaymentRepository
	producer kafka.ProducerAPI
	logger   *zap.Logger
}

// NewPaymentService creates a new PaymentService. producer may be nil when
// event publishing is disabled.
func NewPaymentService(repo repository.PaymentRepository, producer kafka.ProducerAPI, logger *zap.Logger) PaymentService {
	return &paymentServiceImpl{repo: repo, producer: producer, logger: logger}
}

// CreatePayment stores a new pending payment. The referenced order is not
// checked for existence: checkout creates the payment before the order is
// necessarily flushed, and the storefront reconciles via payment_id later.
func (s *paymentServiceImpl) CreatePayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, *ServiceError) {
	payment := &models.Payment{
		ID:            newEntityID("payment"),
		OrderID:       req.OrderID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Status:        models.PaymentStatusPending,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		s.logger.Error("Failed to create payment", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create payment"}
	}

	s.logger.Info("Payment created",
		zap.String("payment_id", payment.ID),
		zap.String("order_id", payment.OrderID),
		zap.Float64("amount", payment.Amount))

	return payment, nil
}

// GetPayment returns the payment or a 404.
func (s *paymentServiceImpl) GetPayment(ctx context.Context, id string) (*models.Payment, *ServiceError) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Payment not found"}
		}
		s.logger.Error("Failed to get payment", zap.String("payment_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to get payment"}
	}
	return payment, nil
}

// GetPaymentByOrderID returns the payment for an order or a 404.
func (s *paymentServiceImpl) GetPaymentByOrderID(ctx context.Context, orderID string) (*models.Payment, *ServiceError) {
	payment, err := s.repo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Payment not found for this order"}
		}
		s.logger.Error("Failed to get payment by order",
			zap.String("order_id", orderID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to get payment"}
	}
	return payment, nil
}

// UpdatePayment applies a partial update; id, order_id and created_at never
// change, and a status change must be a legal payment transition.
func (s *paymentServiceImpl) UpdatePayment(ctx context.Context, id string, req *models.UpdatePaymentRequest) (*models.Payment, *ServiceError) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Payment not found"}
		}
		s.logger.Error("Failed to load payment for update", zap.String("payment_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update payment"}
	}

	prevStatus := payment.Status

	if req.Status != nil {
		next := *req.Status
		if !next.Valid() {
			return nil, &ServiceError{StatusCode: 400, Message: fmt.Sprintf("Unknown payment status %q", next)}
		}
		if !payment.Status.CanTransitionTo(next) {
			return nil, &ServiceError{
				StatusCode: 400,
				Message:    fmt.Sprintf("Illegal status transition %s -> %s", payment.Status, next),
			}
		}
		payment.Status = next
	}
	if req.Amount != nil {
		payment.Amount = *req.Amount
	}
	if req.PaymentMethod != nil {
		payment.PaymentMethod = *req.PaymentMethod
	}
	if req.PaydunyaToken != nil {
		payment.PaydunyaToken = *req.PaydunyaToken
	}
	if req.PaydunyaInvoiceURL != nil {
		payment.PaydunyaInvoiceURL = *req.PaydunyaInvoiceURL
	}
	if req.CustomerName != nil {
		payment.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		payment.CustomerPhone = *req.CustomerPhone
	}
	if req.PaidAt != nil {
		payment.PaidAt = req.PaidAt
	}
	if req.ErrorMessage != nil {
		payment.ErrorMessage = *req.ErrorMessage
	}

	if err := s.repo.Update(ctx, payment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Payment not found"}
		}
		s.logger.Error("Failed to update payment", zap.String("payment_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update payment"}
	}

	if payment.Status != prevStatus {
		s.logger.Info("Payment status changed",
			zap.String("payment_id", payment.ID),
			zap.String("from", string(prevStatus)),
			zap.String("to", string(payment.Status)))
		s.publishEvent(models.OrderEvent{
			Type:      models.EventPaymentStatusChanged,
			OrderID:   payment.OrderID,
			PaymentID: payment.ID,
			Status:    string(payment.Status),
			Amount:    payment.Amount,
			Timestamp: time.Now().UTC(),
		})
	}

	return payment, nil
}

// ListPayments returns every payment, newest first. Used by the admin
// dashboard.
func (s *paymentServiceImpl) ListPayments(ctx context.Context) ([]models.Payment, *ServiceError) {
	payments, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list payments", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to get payments"}
	}
	return payments, nil
}

func (s *paymentServiceImpl) publishEvent(event models.OrderEvent) {
	if s.producer == nil {
		return
	}
	if err := s.producer.SendOrderEvent(event); err != nil {
		s.logger.Warn("Payment event publish failed",
			zap.String("type", event.Type),
			zap.String("payment_id", event.PaymentID),
			zap.Error(err))
	}
}
