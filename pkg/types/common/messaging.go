package common

import (
	"context"
	"time"
)

// Message is a consumed marketplace event as delivered to handlers.
type Message struct {
	Topic     string
	Partition int
	Offset    int64
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

// ProducerMessage is an outbound marketplace event.
type ProducerMessage struct {
	Topic     string
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

// MessageHandler processes one consumed message.  Returning an error triggers
// the consumer's retry policy.
type MessageHandler func(ctx context.Context, msg *Message) error

// BatchPublishResult reports the per-message outcome of a batch publish.
type BatchPublishResult struct {
	Succeeded int
	Failed    int
	Errors    []BatchItemError
}

// BatchItemError identifies one failed message inside a batch.  Index is -1
// when the whole batch failed with a single error.
type BatchItemError struct {
	Index int
	Topic string
	Error error
}
