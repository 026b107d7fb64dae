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

// ServiceError represents a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// OrderService defines the interface for order business logic.
type OrderService interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, *ServiceError)
	GetOrder(ctx context.Context, id string) (*models.Order, *ServiceError)
	UpdateOrder(ctx context.Context, id string, req *models.UpdateOrderRequest) (*models.Order, *ServiceError)
	ListOrders(ctx context.Context) ([]models.Order, *ServiceError)
}

type orderServiceImpl struct {
	repo     repository.OrderRepository
	producer kafka.ProducerAPI
	logger   *zap.Logger
}

// NewOrderService creates a new OrderService. producer may be nil when event
// publishing is disabled.
func NewOrderService(repo repository.OrderRepository, producer kafka.ProducerAPI, logger *zap.Logger) OrderService {
	return &orderServiceImpl{repo: repo, producer: producer, logger: logger}
}

// CreateOrder stores a new order with a generated id, pending status and a
// server-side creation timestamp. The client-computed total is trusted as-is.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, *ServiceError) {
	if len(req.Items) == 0 {
		return nil, &ServiceError{StatusCode: 400, Message: "Missing required fields"}
	}

	order := &models.Order{
		ID:              newEntityID("order"),
		OrderNumber:     req.OrderNumber,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryZone:    req.DeliveryZone,
		Landmark:        req.Landmark,
		Items:           req.Items,
		Total:           req.Total,
		OrderType:       req.OrderType,
		Status:          models.OrderStatusPending,
		CreatedAt:       time.Now(),
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.Error("Failed to create order", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create order"}
	}

	s.logger.Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.Float64("total", order.Total))

	s.publishEvent(models.OrderEvent{
		Type:      models.EventOrderCreated,
		OrderID:   order.ID,
		Status:    string(order.Status),
		Amount:    order.Total,
		Timestamp: time.Now().UTC(),
	})

	return order, nil
}

// GetOrder returns the order or a 404.
func (s *orderServiceImpl) GetOrder(ctx context.Context, id string) (*models.Order, *ServiceError) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		s.logger.Error("Failed to get order", zap.String("order_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to get order"}
	}
	return order, nil
}

// UpdateOrder applies a partial update. Id and created_at never change, and a
// status change must be a legal transition of the order state machine.
func (s *orderServiceImpl) UpdateOrder(ctx context.Context, id string, req *models.UpdateOrderRequest) (*models.Order, *ServiceError) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		s.logger.Error("Failed to load order for update", zap.String("order_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update order"}
	}

	prevStatus := order.Status

	if req.Status != nil {
		next := *req.Status
		if !next.Valid() {
			return nil, &ServiceError{StatusCode: 400, Message: fmt.Sprintf("Unknown order status %q", next)}
		}
		if !order.Status.CanTransitionTo(next) {
			return nil, &ServiceError{
				StatusCode: 400,
				Message:    fmt.Sprintf("Illegal status transition %s -> %s", order.Status, next),
			}
		}
		order.Status = next
	}
	if req.OrderNumber != nil {
		order.OrderNumber = *req.OrderNumber
	}
	if req.CustomerName != nil {
		order.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		order.CustomerPhone = *req.CustomerPhone
	}
	if req.DeliveryAddress != nil {
		order.DeliveryAddress = *req.DeliveryAddress
	}
	if req.DeliveryZone != nil {
		order.DeliveryZone = *req.DeliveryZone
	}
	if req.Landmark != nil {
		order.Landmark = *req.Landmark
	}
	if req.Items != nil {
		order.Items = *req.Items
	}
	if req.Total != nil {
		order.Total = *req.Total
	}
	if req.OrderType != nil {
		order.OrderType = *req.OrderType
	}
	if req.PaymentID != nil {
		order.PaymentID = *req.PaymentID
	}

	if err := s.repo.Update(ctx, order); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Order not found"}
		}
		s.logger.Error("Failed to update order", zap.String("order_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update order"}
	}

	if order.Status != prevStatus {
		s.logger.Info("Order status changed",
			zap.String("order_id", order.ID),
			zap.String("from", string(prevStatus)),
			zap.String("to", string(order.Status)))
		s.publishEvent(models.OrderEvent{
			Type:      models.EventOrderStatusChanged,
			OrderID:   order.ID,
			PaymentID: order.PaymentID,
			Status:    string(order.Status),
			Amount:    order.Total,
			Timestamp: time.Now().UTC(),
		})
	}

	return order, nil
}

// ListOrders returns every order, newest first. Used by the admin dashboard.
func (s *orderServiceImpl) ListOrders(ctx context.Context) ([]models.Order, *ServiceError) {
	orders, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to get orders"}
	}
	return orders, nil
}

// publishEvent sends an event to Kafka, best-effort; a broker outage never
// fails the request that triggered it.
func (s *orderServiceImpl) publishEvent(event models.OrderEvent) {
	if s.producer == nil {
		return
	}
	if err := s.producer.SendOrderEvent(event); err != nil {
		s.logger.Warn("Order event publish failed",
			zap.String("type", event.Type),
			zap.String("order_id", event.OrderID),
			zap.Error(err))
	}
}
