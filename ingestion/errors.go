package ingestion

import "errors"

var (
	// ErrConsumerRequired is returned when a queue consumer is not provided.
	ErrConsumerRequired = errors.New("queue consumer required")

	// ErrPublisherRequired is returned when a queue publisher is not provided.
	ErrPublisherRequired = errors.New("queue publisher required")

	// ErrEngineRequired is returned when an embedding engine is not provided.
	ErrEngineRequired = errors.New("embedding engine required")

	// ErrMalformedPayload indicates the payload bytes do not parse as JSON.
	ErrMalformedPayload = errors.New("malformed payload")
)
