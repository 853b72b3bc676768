package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shipment-tracker/internal/core/logger"
	"shipment-tracker/internal/features/shipments/ports"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// AttentionRoutingKey is the routing key of attention events on the topic exchange.
const AttentionRoutingKey = "shipment.attention_required"

// amqpSender is the part of messaging.Client the publisher needs.
type amqpSender interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// AMQPEventPublisher implements ports.EventPublisher on a RabbitMQ topic exchange.
type AMQPEventPublisher struct {
	sender amqpSender
}

// NewAMQPEventPublisher creates a new AMQPEventPublisher.
func NewAMQPEventPublisher(sender amqpSender) *AMQPEventPublisher {
	return &AMQPEventPublisher{sender: sender}
}

// PublishAttention publishes the event as JSON. A missing ID or timestamp is filled in.
func (p *AMQPEventPublisher) PublishAttention(ctx context.Context, event ports.AttentionEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("event serialization error: %w", err)
	}

	err = p.sender.Publish(ctx, AttentionRoutingKey, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
		MessageId:   event.ID,
		Timestamp:   event.OccurredAt,
		Headers: amqp.Table{
			"tracking_number": event.TrackingNumber,
			"status":          event.Status,
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ports.ErrUpstream, err)
	}

	logger.Get().Debug("Attention event published",
		zap.String("routing_key", AttentionRoutingKey),
		zap.String("tracking_number", event.TrackingNumber),
		zap.String("status", event.Status),
	)
	return nil
}

// NoopEventPublisher drops every event. It is used when no broker is configured.
type NoopEventPublisher struct{}

// PublishAttention logs the event at debug level and returns nil.
func (NoopEventPublisher) PublishAttention(_ context.Context, event ports.AttentionEvent) error {
	logger.Get().Debug("Attention event dropped, no broker configured",
		zap.String("tracking_number", event.TrackingNumber),
		zap.String("status", event.Status),
	)
	return nil
}
