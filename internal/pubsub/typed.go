package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
)

// Event binds a topic name to the Go type carried in its payload.
type Event[T any] struct {
	topic string
}

// NewEvent declares a typed event on the given topic.
func NewEvent[T any](topic string) Event[T] {
	return Event[T]{topic: topic}
}

// Topic returns the event's topic name.
func (e Event[T]) Topic() string { return e.topic }

// Publish encodes v as JSON and publishes it on the event's topic.
func (e Event[T]) Publish(ctx context.Context, pub Publisher, v T) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", e.topic, err)
	}
	return pub.Publish(ctx, Message{Topic: e.topic, Payload: payload})
}

// Subscribe decodes each message on the event's topic before calling handle.
func (e Event[T]) Subscribe(ctx context.Context, sub Subscriber, handle func(context.Context, T) error) error {
	return sub.Subscribe(ctx, e.topic, func(ctx context.Context, msg Message) error {
		var v T
		if err := json.Unmarshal(msg.Payload, &v); err != nil {
			return fmt.Errorf("decoding %s event: %w", e.topic, err)
		}
		return handle(ctx, v)
	})
}
