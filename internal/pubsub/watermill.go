package pubsub

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// outputBuffer is how many undelivered messages a subscriber may queue.
const outputBuffer = 64

// WatermillBridge is a Publisher and Subscriber backed by watermill's
// in-memory GoChannel. Messages published with no subscriber are dropped.
type WatermillBridge struct {
	ch *gochannel.GoChannel

	mu     sync.RWMutex
	closed bool
}

// NewWatermillBridge creates a bus. Watermill's own logging is disabled.
func NewWatermillBridge() *WatermillBridge {
	return &WatermillBridge{
		ch: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: outputBuffer},
			watermill.NopLogger{},
		),
	}
}

func (wb *WatermillBridge) Publish(ctx context.Context, msg Message) error {
	wb.mu.RLock()
	defer wb.mu.RUnlock()
	if wb.closed {
		return ErrClosed
	}
	wm := message.NewMessage(watermill.NewUUID(), msg.Payload)
	wm.SetContext(ctx)
	return wb.ch.Publish(msg.Topic, wm)
}

func (wb *WatermillBridge) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := wb.ch.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for wm := range messages {
			// GoChannel redelivers nacked messages at once, so a handler that
			// keeps failing would spin. Failures are logged and acked.
			if err := handler(ctx, Message{Topic: topic, Payload: wm.Payload}); err != nil {
				slog.Error("Failed to handle message", "topic", topic, "msg_id", wm.UUID, "error", err)
			}
			wm.Ack()
		}
		slog.Debug("Subscription ended", "topic", topic)
	}()
	return nil
}

// Close stops every subscription. Closing twice is a no-op.
func (wb *WatermillBridge) Close() error {
	wb.mu.Lock()
	defer wb.mu.Unlock()
	if wb.closed {
		return nil
	}
	wb.closed = true
	return wb.ch.Close()
}
