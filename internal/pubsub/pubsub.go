// Package pubsub is the in-process message bus. The dashboard publishes
// activity on it and the activity store consumes it.
package pubsub

import (
	"context"
	"errors"
)

// ErrClosed is returned when publishing on a bus that has been shut down.
var ErrClosed = errors.New("pubsub: bus closed")

// Message travels on the bus. Payload is usually JSON.
type Message struct {
	Topic   string
	Payload []byte
}

// Handler processes one delivered message.
type Handler func(ctx context.Context, msg Message) error

// Publisher sends messages.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber receives messages.
type Subscriber interface {
	// Subscribe delivers messages on topic to handler in the background
	// until ctx is canceled or the bus is closed.
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
