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

// Callback acknowledgement messages, shown verbatim in the storefront.
const (
	msgPaymentProcessed  = "Payment processed successfully"
	msgFailureRecorded   = "Payment failure recorded"
	msgCancelApplied     = "Payment cancellation recorded"
	msgCallbackProcessed = "Callback processed"
)

// PaydunyaService simulates the PayDunya mobile-money gateway: session
// initialization hands back a synthetic token and invoice URL, and the
// callback endpoint plays the role of the provider's webhook. No network
// calls are made and no money moves.
type PaydunyaService interface {
	Initialize(ctx context.Context, req *models.PaydunyaInitializeRequest) (*models.PaydunyaInitializeResponse, *ServiceError)
	Callback(ctx context.Context, req *models.PaydunyaCallbackRequest) (string, *ServiceError)
	StatusByOrderID(ctx context.Context, orderID string) (*models.PaymentStatusData, *ServiceError)
	StatusByToken(ctx context.Context, token string) (*models.PaymentStatusData, *ServiceError)
}

type paydunyaServiceImpl struct {
	orders   repository.OrderRepository
	payments repository.PaymentRepository
	producer kafka.ProducerAPI
	logger   *zap.Logger
}

// NewPaydunyaService creates the mock gateway adapter. producer may be nil.
func NewPaydunyaService(
	orders repository.OrderRepository,
	payments repository.PaymentRepository,
	producer kafka.ProducerAPI,
	logger *zap.Logger,
) PaydunyaService {
	return &paydunyaServiceImpl{
		orders:   orders,
		payments: payments,
		producer: producer,
		logger:   logger,
	}
}

// Initialize opens a simulated checkout session: the payment gets a token and
// invoice URL and moves to processing.
func (s *paydunyaServiceImpl) Initialize(ctx context.Context, req *models.PaydunyaInitializeRequest) (*models.PaydunyaInitializeResponse, *ServiceError) {
	payment, err := s.payments.FindByID(ctx, req.PaymentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Payment record not found"}
		}
		s.logger.Error("Failed to load payment for initialize",
			zap.String("payment_id", req.PaymentID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to initialize payment"}
	}

	if !payment.Status.CanTransitionTo(models.PaymentStatusProcessing) {
		return nil, &ServiceError{
			StatusCode: 409,
			Message:    fmt.Sprintf("Payment already %s", payment.Status),
		}
	}

	token := newGatewayToken()
	payment.Status = models.PaymentStatusProcessing
	payment.PaydunyaToken = token
	payment.PaydunyaInvoiceURL = fmt.Sprintf("https://paydunya.com/pay/%s", token)

	if err := s.payments.Update(ctx, payment); err != nil {
		s.logger.Error("Failed to store gateway session",
			zap.String("payment_id", payment.ID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to initialize payment"}
	}

	s.logger.Info("Gateway session initialized",
		zap.String("payment_id", payment.ID),
		zap.String("order_id", req.OrderID),
		zap.String("token", token))

	return &models.PaydunyaInitializeResponse{
		Success:       true,
		PaymentURL:    payment.PaydunyaInvoiceURL,
		Token:         token,
		TransactionID: fmt.Sprintf("txn_%d", time.Now().UnixMilli()),
	}, nil
}

// Callback applies a simulated provider webhook. A "completed" status settles
// the payment and confirms the order; "failed" and "cancelled" record the
// outcome; anything else is acknowledged without effect.
func (s *paydunyaServiceImpl) Callback(ctx context.Context, req *models.PaydunyaCallbackRequest) (string, *ServiceError) {
	orderID := req.CustomData.OrderID
	if orderID == "" {
		return "", &ServiceError{StatusCode: 400, Message: "Order ID missing"}
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		s.logger.Error("Failed to load order for callback", zap.String("order_id", orderID), zap.Error(err))
		return "", &ServiceError{StatusCode: 500, Message: "Failed to process callback"}
	}

	payment, err := s.payments.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", &ServiceError{StatusCode: 404, Message: "Payment record not found"}
		}
		s.logger.Error("Failed to load payment for callback", zap.String("order_id", orderID), zap.Error(err))
		return "", &ServiceError{StatusCode: 500, Message: "Failed to process callback"}
	}

	switch req.Status {
	case "completed":
		return s.settle(ctx, order, payment)
	case "failed":
		return s.record(ctx, payment, models.PaymentStatusFailed,
			"Payment failed at PayDunya", msgFailureRecorded)
	case "cancelled":
		return s.record(ctx, payment, models.PaymentStatusCancelled,
			"Payment cancelled by user", msgCancelApplied)
	default:
		s.logger.Info("Ignoring callback with unhandled status",
			zap.String("status", req.Status), zap.String("order_id", orderID))
		return msgCallbackProcessed, nil
	}
}

func (s *paydunyaServiceImpl) settle(ctx context.Context, order *models.Order, payment *models.Payment) (string, *ServiceError) {
	// Replayed webhooks for an already-settled payment are acknowledged, not
	// re-applied.
	if payment.Status == models.PaymentStatusCompleted {
		return msgPaymentProcessed, nil
	}
	if !payment.Status.CanTransitionTo(models.PaymentStatusCompleted) {
		return "", &ServiceError{
			StatusCode: 409,
			Message:    fmt.Sprintf("Payment already %s", payment.Status),
		}
	}

	now := time.Now()
	payment.Status = models.PaymentStatusCompleted
	payment.PaidAt = &now
	if err := s.payments.Update(ctx, payment); err != nil {
		s.logger.Error("Failed to settle payment", zap.String("payment_id", payment.ID), zap.Error(err))
		return "", &ServiceError{StatusCode: 500, Message: "Failed to process callback"}
	}

	if order.Status.CanTransitionTo(models.OrderStatusConfirmed) {
		order.Status = models.OrderStatusConfirmed
		if err := s.orders.Update(ctx, order); err != nil {
			s.logger.Error("Failed to confirm order", zap.String("order_id", order.ID), zap.Error(err))
			return "", &ServiceError{StatusCode: 500, Message: "Failed to process callback"}
		}
	}

	s.logger.Info("Payment settled",
		zap.String("payment_id", payment.ID),
		zap.String("order_id", order.ID))

	s.publishEvent(models.OrderEvent{
		Type:      models.EventPaymentStatusChanged,
		OrderID:   order.ID,
		PaymentID: payment.ID,
		Status:    string(models.PaymentStatusCompleted),
		Amount:    payment.Amount,
		Timestamp: now.UTC(),
	})

	return msgPaymentProcessed, nil
}

func (s *paydunyaServiceImpl) record(ctx context.Context, payment *models.Payment, status models.PaymentStatus, reason, ack string) (string, *ServiceError) {
	if payment.Status == status {
		return ack, nil
	}
	if !payment.Status.CanTransitionTo(status) {
		return "", &ServiceError{
			StatusCode: 409,
			Message:    fmt.Sprintf("Payment already %s", payment.Status),
		}
	}

	payment.Status = status
	payment.ErrorMessage = reason
	if err := s.payments.Update(ctx, payment); err != nil {
		s.logger.Error("Failed to record payment outcome",
			zap.String("payment_id", payment.ID),
			zap.String("status", string(status)),
			zap.Error(err))
		return "", &ServiceError{StatusCode: 500, Message: "Failed to process callback"}
	}

	s.logger.Info("Payment outcome recorded",
		zap.String("payment_id", payment.ID),
		zap.String("status", string(status)))

	s.publishEvent(models.OrderEvent{
		Type:      models.EventPaymentStatusChanged,
		OrderID:   payment.OrderID,
		PaymentID: payment.ID,
		Status:    string(status),
		Amount:    payment.Amount,
		Timestamp: time.Now().UTC(),
	})

	return ack, nil
}

// StatusByOrderID projects the payment attached to an order.
func (s *paydunyaServiceImpl) StatusByOrderID(ctx context.Context, orderID string) (*models.PaymentStatusData, *ServiceError) {
	payment, err := s.payments.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Payment not found"}
		}
		s.logger.Error("Failed to check payment status", zap.String("order_id", orderID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to check payment status"}
	}
	return statusProjection(payment), nil
}

// StatusByToken projects the payment holding a gateway token.
func (s *paydunyaServiceImpl) StatusByToken(ctx context.Context, token string) (*models.PaymentStatusData, *ServiceError) {
	payment, err := s.payments.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Payment not found"}
		}
		s.logger.Error("Failed to check payment status by token", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to check payment status"}
	}
	return statusProjection(payment), nil
}

func statusProjection(p *models.Payment) *models.PaymentStatusData {
	return &models.PaymentStatusData{
		PaymentID:     p.ID,
		OrderID:       p.OrderID,
		Status:        p.Status,
		PaymentMethod: p.PaymentMethod,
		Amount:        p.Amount,
		CreatedAt:     p.CreatedAt,
		PaidAt:        p.PaidAt,
		ErrorMessage:  p.ErrorMessage,
	}
}

func (s *paydunyaServiceImpl) publishEvent(event models.OrderEvent) {
	if s.producer == nil {
		return
	}
	if err := s.producer.SendOrderEvent(event); err != nil {
		s.logger.Warn("Gateway event publish failed",
			zap.String("type", event.Type),
			zap.String("order_id", event.OrderID),
			zap.Error(err))
	}
}
