package activity

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/nfrund/writerfolio/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(i int) domain.ActivityEntry {
	return domain.ActivityEntry{
		At:       time.Date(2024, 1, 1, 0, 0, i, 0, time.UTC),
		Action:   domain.ActionCreated,
		Kind:     domain.KindService,
		RecordID: fmt.Sprintf("id-%d", i),
		Label:    fmt.Sprintf("Service %d", i),
	}
}

func testStores(t *testing.T, capacity int) map[string]Store {
	t.Helper()
	sqlite, err := OpenSQLite(":memory:", capacity)
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Store{
		"memory": NewMemoryStore(capacity),
		"sqlite": sqlite,
	}
}

func TestStores_RecentIsNewestFirstAndBounded(t *testing.T) {
	for name, store := range testStores(t, 3) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			empty, err := store.Recent(ctx, 10)
			require.NoError(t, err)
			assert.Empty(t, empty)

			for i := 1; i <= 5; i++ {
				require.NoError(t, store.Append(ctx, entry(i)))
			}

			got, err := store.Recent(ctx, 10)
			require.NoError(t, err)
			require.Len(t, got, 3)
			assert.Equal(t, "id-5", got[0].RecordID)
			assert.Equal(t, "id-3", got[2].RecordID)
			assert.True(t, got[0].At.Equal(entry(5).At))
			assert.Equal(t, domain.KindService, got[0].Kind)

			got, err = store.Recent(ctx, 2)
			require.NoError(t, err)
			assert.Len(t, got, 2)
		})
	}
}

func TestFeed_RecordIsPersistedBySubscriber(t *testing.T) {
	bus := pubsub.NewWatermillBridge()
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := NewMemoryStore(10)
	feed := NewFeed(bus, bus, store)
	require.NoError(t, feed.Start(ctx))

	feed.Record(ctx, domain.ActivityEntry{Action: domain.ActionDeleted, Kind: domain.KindProject, RecordID: "p1", Label: "Essay"})

	require.Eventually(t, func() bool {
		got, _ := feed.Recent(ctx, 5)
		return len(got) == 1
	}, 2*time.Second, 10*time.Millisecond)

	got, err := feed.Recent(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.ActionDeleted, got[0].Action)
	assert.False(t, got[0].At.IsZero(), "Record stamps the time")
	assert.Equal(t, "Admin deleted portfolio item “Essay”", got[0].Summary())
}
