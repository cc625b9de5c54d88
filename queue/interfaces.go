// Package queue defines the narrow messaging contract the pipeline consumes:
// deliver a message, let the worker acknowledge or reject it, and publish a
// result. Transport mechanics (connection setup, heartbeats, topology) live
// in the backend packages; queue/rabbit implements the contract over
// RabbitMQ.
package queue

import "context"

// Delivery is a single inbound message awaiting acknowledgment.
// Exactly one of Ack or Nack must be called per delivery; the broker
// redelivers anything left unresolved when the consumer's channel closes,
// which is what gives the pipeline its at-least-once guarantee.
type Delivery interface {
	// Body returns the raw payload bytes.
	Body() []byte

	// Ack confirms successful processing.
	Ack() error

	// Nack rejects the delivery. With requeue the broker redelivers it,
	// otherwise it is dropped or dead-lettered per queue policy.
	Nack(requeue bool) error
}

// Consumer delivers inbound messages one channel receive at a time.
type Consumer interface {
	// Consume starts delivering messages. The returned channel closes when
	// ctx is canceled or the underlying connection drops.
	Consume(ctx context.Context) (<-chan Delivery, error)
}

// Publisher hands completed records to the outbound destination.
type Publisher interface {
	// Publish sends body under the given routing key. messageID should be
	// deterministic for the same logical record so downstream consumers can
	// deduplicate redeliveries.
	Publish(ctx context.Context, routingKey string, body []byte, messageID string) error
}
