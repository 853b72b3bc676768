package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"shipment-tracker/internal/features/shipments/ports"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	args := m.Called(ctx, routingKey, msg)
	return args.Error(0)
}

func TestAMQPEventPublisher_PublishAttention(t *testing.T) {
	sender := new(MockSender)
	publisher := NewAMQPEventPublisher(sender)

	occurred := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	event := ports.AttentionEvent{
		ID:             "evt-1",
		TrackingNumber: "SHIP-AB12CD34",
		Status:         "on-hold",
		Label:          "On Hold",
		Remark:         "held at customs",
		OccurredAt:     occurred,
	}

	var sent amqp.Publishing
	sender.On("Publish", mock.Anything, AttentionRoutingKey, mock.AnythingOfType("amqp.Publishing")).
		Run(func(args mock.Arguments) { sent = args.Get(2).(amqp.Publishing) }).
		Return(nil)

	require.NoError(t, publisher.PublishAttention(context.Background(), event))
	sender.AssertExpectations(t)

	assert.Equal(t, "application/json", sent.ContentType)
	assert.Equal(t, "evt-1", sent.MessageId)
	assert.Equal(t, occurred, sent.Timestamp)
	assert.Equal(t, "SHIP-AB12CD34", sent.Headers["tracking_number"])

	var decoded ports.AttentionEvent
	require.NoError(t, json.Unmarshal(sent.Body, &decoded))
	assert.Equal(t, event, decoded)
}

func TestAMQPEventPublisher_FillsIDAndTime(t *testing.T) {
	sender := new(MockSender)
	publisher := NewAMQPEventPublisher(sender)

	var sent amqp.Publishing
	sender.On("Publish", mock.Anything, AttentionRoutingKey, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(2).(amqp.Publishing) }).
		Return(nil)

	require.NoError(t, publisher.PublishAttention(context.Background(), ports.AttentionEvent{TrackingNumber: "SHIP-AB12CD34"}))

	assert.NotEmpty(t, sent.MessageId)
	assert.False(t, sent.Timestamp.IsZero())
}

func TestAMQPEventPublisher_SendFailure(t *testing.T) {
	sender := new(MockSender)
	publisher := NewAMQPEventPublisher(sender)

	sender.On("Publish", mock.Anything, AttentionRoutingKey, mock.Anything).Return(errors.New("channel closed"))

	err := publisher.PublishAttention(context.Background(), ports.AttentionEvent{TrackingNumber: "SHIP-AB12CD34"})
	assert.ErrorIs(t, err, ports.ErrUpstream)
	assert.Contains(t, err.Error(), "channel closed")
}

func TestNoopEventPublisher(t *testing.T) {
	var publisher ports.EventPublisher = NoopEventPublisher{}
	assert.NoError(t, publisher.PublishAttention(context.Background(), ports.AttentionEvent{}))
}
