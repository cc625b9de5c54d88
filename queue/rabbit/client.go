// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package rabbit implements the queue contract over RabbitMQ.
package rabbit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/lostvec/queue"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Topology shared with the upstream gateway and the downstream indexer.
const (
	ExchangeName        = "lost-found.events"
	RoutingKeySubmitted = "item.submitted" // input: from the gateway
	RoutingKeyEmbedded  = "item.embedded"  // output: to the indexing service
	QueueEmbed          = "q.lost-items.embed"
	QueueIngest         = "q.lost-items.ingest"
)

const (
	defaultMaxRetries = 5
	defaultRetryDelay = 5 * time.Second
)

// Client is a RabbitMQ connection implementing queue.Consumer and
// queue.Publisher. Each worker instance owns its own Client: AMQP channels
// are not safe for concurrent use, and one-connection-per-worker matches the
// competing-consumers model.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
}

// Option configures a Client during Dial.
type Option func(*dialConfig)

type dialConfig struct {
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// WithDialRetries sets connection retry behavior.
// Defaults are 5 attempts with a 5s delay.
func WithDialRetries(attempts int, delay time.Duration) Option {
	return func(c *dialConfig) {
		if attempts > 0 {
			c.maxRetries = attempts
		}
		if delay > 0 {
			c.retryDelay = delay
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *dialConfig) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// Dial connects to the broker with bounded retry and declares the exchange,
// queues and binding. Declaration is idempotent, so every competing consumer
// can declare the same topology at startup.
func Dial(url string, opts ...Option) (*Client, error) {
	cfg := &dialConfig{
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
		logger:     slog.Default().With("component", "rabbit"),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var conn *amqp.Connection
	var err error
	for attempt := 1; attempt <= cfg.maxRetries; attempt++ {
		cfg.logger.Info("connecting to RabbitMQ", "attempt", attempt, "max", cfg.maxRetries)
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		cfg.logger.Error("failed to connect to RabbitMQ", "err", err)
		if attempt < cfg.maxRetries {
			time.Sleep(cfg.retryDelay)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", cfg.maxRetries, err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	cfg.logger.Info("connected to RabbitMQ", "exchange", ExchangeName, "queue", QueueEmbed)
	return &Client{conn: conn, channel: channel, logger: cfg.logger}, nil
}

func declareTopology(channel *amqp.Channel) error {
	if err := channel.ExchangeDeclare(
		ExchangeName,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	for _, name := range []string{QueueEmbed, QueueIngest} {
		if _, err := channel.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", name, err)
		}
	}

	if err := channel.QueueBind(QueueEmbed, RoutingKeySubmitted, ExchangeName, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}
	return nil
}

// delivery adapts an amqp delivery to queue.Delivery.
type delivery struct {
	d amqp.Delivery
}

func (d delivery) Body() []byte { return d.d.Body }

func (d delivery) Ack() error { return d.d.Ack(false) }

func (d delivery) Nack(requeue bool) error { return d.d.Nack(false, requeue) }

// Consume starts delivering messages from the embed queue with prefetch=1:
// the broker hands this consumer at most one unacknowledged message at a
// time, which is the pipeline's backpressure mechanism.
func (c *Client) Consume(ctx context.Context) (<-chan queue.Delivery, error) {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := c.channel.ConsumeWithContext(
		ctx,
		QueueEmbed,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	out := make(chan queue.Delivery)
	go func() {
		defer close(out)
		for msg := range msgs {
			select {
			case out <- delivery{d: msg}:
			case <-ctx.Done():
				// Unacked message; the broker will redeliver it.
				return
			}
		}
	}()
	return out, nil
}

// Publish sends body to the exchange as a persistent JSON message.
func (c *Client) Publish(ctx context.Context, routingKey string, body []byte, messageID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := c.channel.PublishWithContext(
		ctx,
		ExchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
			MessageId:    messageID,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Debug("message published", "routing_key", routingKey, "message_id", messageID, "bytes", len(body))
	return nil
}

// Close releases the channel and connection.
func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
