package kafka

import (
	"context"
	"encoding/json"

	"chickenmaster-api/models"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ProducerAPI is what the services need from the event producer; tests swap
// in a recording fake.
type ProducerAPI interface {
	SendOrderEvent(event models.OrderEvent) error
	Close() error
}

// OrderEventProducer publishes OrderEvents to Kafka, keyed by order id so
// per-order ordering is preserved.
type OrderEventProducer struct {
	writer *kafka.Writer
	topic  string
	logger *zap.Logger
}

// NewOrderEventProducer creates a writer for the given brokers and topic.
func NewOrderEventProducer(brokers []string, topic string, logger *zap.Logger) *OrderEventProducer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	logger.Info("Kafka producer initialized",
		zap.String("topic", topic), zap.Strings("brokers", brokers))
	return &OrderEventProducer{writer: w, topic: topic, logger: logger}
}

// SendOrderEvent publishes a single event.
func (p *OrderEventProducer) SendOrderEvent(event models.OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
	}
	if err := p.writer.WriteMessages(context.Background(), msg); err != nil {
		p.logger.Error("Failed to send order event",
			zap.String("type", event.Type),
			zap.String("order_id", event.OrderID),
			zap.Error(err))
		return err
	}

	p.logger.Info("Order event published",
		zap.String("type", event.Type),
		zap.String("order_id", event.OrderID),
		zap.String("status", event.Status))
	return nil
}

// Close flushes and closes the underlying writer.
func (p *OrderEventProducer) Close() error {
	p.logger.Info("Kafka producer closing", zap.String("topic", p.topic))
	return p.writer.Close()
}
