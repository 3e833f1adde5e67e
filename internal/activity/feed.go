package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/nfrund/writerfolio/internal/pubsub"
)

// Topic carries domain.ActivityEntry payloads.
const Topic = "content.activity"

var activityEvent = pubsub.NewEvent[domain.ActivityEntry](Topic)

// Recorder is what mutating code depends on to report what happened.
type Recorder interface {
	Record(ctx context.Context, e domain.ActivityEntry)
}

// Feed publishes entries on the bus and, once started, persists them.
type Feed struct {
	pub   pubsub.Publisher
	sub   pubsub.Subscriber
	store Store
	now   func() time.Time
}

// NewFeed wires a feed to a bus and a store.
func NewFeed(pub pubsub.Publisher, sub pubsub.Subscriber, store Store) *Feed {
	return &Feed{pub: pub, sub: sub, store: store, now: time.Now}
}

// Start subscribes the store to the activity topic. It returns once the
// subscription is active; delivery stops when ctx is canceled.
func (f *Feed) Start(ctx context.Context) error {
	err := activityEvent.Subscribe(ctx, f.sub, func(ctx context.Context, e domain.ActivityEntry) error {
		return f.store.Append(ctx, e)
	})
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", Topic, err)
	}
	return nil
}

// Record publishes e. The feed is best effort, so failures are logged and
// never reach the caller.
func (f *Feed) Record(ctx context.Context, e domain.ActivityEntry) {
	if e.At.IsZero() {
		e.At = f.now().UTC()
	}
	if err := activityEvent.Publish(ctx, f.pub, e); err != nil {
		slog.WarnContext(ctx, "Failed to publish activity", "action", e.Action, "error", err)
	}
}

// Recent reads the latest entries from the store.
func (f *Feed) Recent(ctx context.Context, limit int) ([]domain.ActivityEntry, error) {
	return f.store.Recent(ctx, limit)
}

// Discard is a Recorder that drops everything.
type Discard struct{}

func (Discard) Record(context.Context, domain.ActivityEntry) {}
