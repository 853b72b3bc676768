package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"shipment-tracker/internal/core/config"
	"shipment-tracker/internal/core/logger"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

var (
	// ErrNotConnected is returned by Publish when there is no open channel.
	ErrNotConnected = errors.New("no connection to RabbitMQ")
	// ErrClosed is returned by Connect once Close has been called.
	ErrClosed = errors.New("RabbitMQ client closed")
)

const (
	defaultRetryCount    = 3
	defaultRetryDelay    = 2 * time.Second
	defaultMaxRetryDelay = 30 * time.Second
)

// Client owns one AMQP connection and channel bound to a durable topic exchange.
// Dialing never happens under mu, so Publish is not held up by a reconnect.
type Client struct {
	url      string
	exchange string

	retryCount    int
	retryDelay    time.Duration
	maxRetryDelay time.Duration
	dial          func() (*amqp.Connection, *amqp.Channel, error)

	mu         sync.RWMutex
	connection *amqp.Connection
	channel    *amqp.Channel
	closing    bool
	done       chan struct{}

	log *zap.Logger
}

// NewClient creates a client for the configured broker. Connect must be called before Publish.
func NewClient(cfg config.MessagingConfig) *Client {
	c := &Client{
		url:           cfg.RabbitMQURL,
		exchange:      cfg.Exchange,
		retryCount:    defaultRetryCount,
		retryDelay:    defaultRetryDelay,
		maxRetryDelay: defaultMaxRetryDelay,
		done:          make(chan struct{}),
		log:           logger.Named("rabbitmq"),
	}
	c.dial = c.dialBroker
	return c
}

// Exchange returns the exchange messages are published to.
func (c *Client) Exchange() string {
	return c.exchange
}

// Connect dials the broker, retrying a few times, and declares the exchange.
func (c *Client) Connect(ctx context.Context) error {
	var lastErr error
	for attempt := 1; attempt <= c.retryCount; attempt++ {
		lastErr = c.connectOnce()
		if lastErr == nil || errors.Is(lastErr, ErrClosed) {
			return lastErr
		}

		c.log.Warn("RabbitMQ connection failed",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.retryCount),
			zap.Error(lastErr),
		)
		if attempt == c.retryCount {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.done:
			return ErrClosed
		case <-time.After(c.retryDelay):
		}
	}
	return fmt.Errorf("failed to connect to RabbitMQ: %w", lastErr)
}

// connectOnce dials outside the lock and installs the new connection under it.
func (c *Client) connectOnce() error {
	conn, ch, err := c.dial()
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.closing {
		c.mu.Unlock()
		ch.Close()
		conn.Close()
		return ErrClosed
	}
	previous := c.connection
	c.connection = conn
	c.channel = ch
	c.mu.Unlock()

	if previous != nil && !previous.IsClosed() {
		previous.Close()
	}

	c.log.Info("Connected to RabbitMQ", zap.String("exchange", c.exchange))
	go c.watch(conn)
	return nil
}

func (c *Client) dialBroker() (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(c.url)
	if err != nil {
		return nil, nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		c.exchange, // name
		"topic",    // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("failed to declare exchange %s: %w", c.exchange, err)
	}
	return conn, ch, nil
}

// watch starts reconnecting once the broker drops conn, unless conn was replaced or
// Close was called.
func (c *Client) watch(conn *amqp.Connection) {
	err, ok := <-conn.NotifyClose(make(chan *amqp.Error, 1))
	if !ok {
		return
	}

	c.mu.RLock()
	stale := c.closing || c.connection != conn
	c.mu.RUnlock()
	if stale {
		return
	}

	c.log.Warn("RabbitMQ connection lost, reconnecting", zap.Error(err))
	c.reconnect()
}

// reconnect dials with capped exponential backoff until it succeeds or Close is called.
func (c *Client) reconnect() {
	delay := c.retryDelay
	for attempt := 1; ; attempt++ {
		err := c.connectOnce()
		if err == nil || errors.Is(err, ErrClosed) {
			return
		}

		c.log.Warn("RabbitMQ reconnect failed",
			zap.Int("attempt", attempt),
			zap.Duration("next_retry", delay),
			zap.Error(err),
		)

		select {
		case <-c.done:
			return
		case <-time.After(delay):
		}

		delay *= 2
		if delay > c.maxRetryDelay {
			delay = c.maxRetryDelay
		}
	}
}

// Publish sends a persistent JSON message to the exchange.
func (c *Client) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.channel == nil || c.connection == nil || c.connection.IsClosed() {
		return ErrNotConnected
	}

	if msg.ContentType == "" {
		msg.ContentType = "application/json"
	}
	msg.DeliveryMode = amqp.Persistent

	if err := c.channel.Publish(c.exchange, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}
	return nil
}

// IsConnected reports whether the connection is open.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connection != nil && !c.connection.IsClosed()
}

// Close shuts the channel and connection down.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closing {
		return nil
	}
	c.closing = true
	close(c.done)

	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("channel close: %w", err))
		}
	}
	if c.connection != nil {
		if err := c.connection.Close(); err != nil {
			errs = append(errs, fmt.Errorf("connection close: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		c.log.Error("Failed to close RabbitMQ connection", zap.Error(err))
		return err
	}
	c.log.Info("RabbitMQ connection closed")
	return nil
}
