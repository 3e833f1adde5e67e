package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/nfrund/writerfolio/internal/activity"
	"github.com/nfrund/writerfolio/internal/app"
	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/nfrund/writerfolio/internal/testutils"
	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WiresServerAndFeed(t *testing.T) {
	backend := testutils.NewFakeBackend(t)
	backend.Seed("services", map[string]any{"title": "Copywriting", "description": "Words"})
	cfg := testutils.ConfigForTests(t, backend)
	cfg.Activity.DBPath = filepath.Join(t.TempDir(), "activity.db")

	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, a.Close()) })

	rec := httptest.NewRecorder()
	a.Server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Copywriting")

	store := do.MustInvoke[activity.Store](a.Injector)
	_, ok := store.(*activity.SQLiteStore)
	assert.True(t, ok, "a configured path selects SQLite")

	feed := do.MustInvoke[*activity.Feed](a.Injector)
	feed.Record(context.Background(), domain.ActivityEntry{Action: domain.ActionLogin, Label: "admin"})
	require.Eventually(t, func() bool {
		recent, err := feed.Recent(context.Background(), 5)
		return err == nil && len(recent) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNew_MemoryFeedByDefault(t *testing.T) {
	backend := testutils.NewFakeBackend(t)
	cfg := testutils.ConfigForTests(t, backend)

	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	_, ok := do.MustInvoke[activity.Store](a.Injector).(*activity.MemoryStore)
	assert.True(t, ok)
}

func TestNew_BadAPIURL(t *testing.T) {
	backend := testutils.NewFakeBackend(t)
	cfg := testutils.ConfigForTests(t, backend)
	cfg.API.BaseURL = "ftp://nope"

	_, err := app.New(context.Background(), cfg)
	assert.Error(t, err)
}
