// Package app wires the services behind the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nfrund/writerfolio/internal/activity"
	"github.com/nfrund/writerfolio/internal/api"
	"github.com/nfrund/writerfolio/internal/config"
	"github.com/nfrund/writerfolio/internal/content"
	"github.com/nfrund/writerfolio/internal/handlers"
	"github.com/nfrund/writerfolio/internal/pubsub"
	"github.com/nfrund/writerfolio/internal/rendering"
	"github.com/nfrund/writerfolio/internal/server"
	"github.com/nfrund/writerfolio/internal/storage"
	"github.com/samber/do/v2"
)

// App is the assembled application.
type App struct {
	Server   *server.Server
	Injector do.Injector
	cancel   context.CancelFunc
}

// New builds every service from cfg and starts the activity feed. Close
// releases what New opened.
func New(ctx context.Context, cfg config.Provider) (*App, error) {
	i := do.New()
	do.ProvideValue(i, cfg)
	do.Provide(i, newAPIClient)
	do.Provide(i, newStagingStore)
	do.Provide(i, newBus)
	do.Provide(i, newActivityStore)
	do.Provide(i, newFeed)
	do.Provide(i, newContentManager)
	do.Provide(i, newServer)

	feed, err := do.Invoke[*activity.Feed](i)
	if err != nil {
		return nil, err
	}
	feedCtx, cancel := context.WithCancel(ctx)
	if err := feed.Start(feedCtx); err != nil {
		cancel()
		return nil, err
	}

	a := &App{Injector: i, cancel: cancel}
	srv, err := do.Invoke[*server.Server](i)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	srv.RegisterRoutes()
	a.Server = srv
	return a, nil
}

// Close stops the feed subscriber and closes the bus and the activity store.
func (a *App) Close() error {
	a.cancel()
	var errs []error
	if bus, err := do.Invoke[*pubsub.WatermillBridge](a.Injector); err == nil {
		errs = append(errs, bus.Close())
	}
	if store, err := do.Invoke[activity.Store](a.Injector); err == nil {
		errs = append(errs, store.Close())
	}
	return errors.Join(errs...)
}

func newAPIClient(i do.Injector) (*api.Client, error) {
	cfg := do.MustInvoke[config.Provider](i)
	return api.New(cfg.GetAPIBaseURL(), api.WithTimeout(cfg.GetAPITimeout()), api.WithLogger(slog.Default()))
}

func newStagingStore(i do.Injector) (*storage.AferoStore, error) {
	cfg := do.MustInvoke[config.Provider](i)
	return storage.NewStagingStore(cfg.GetUploadStagingDir())
}

func newBus(do.Injector) (*pubsub.WatermillBridge, error) {
	return pubsub.NewWatermillBridge(), nil
}

// newActivityStore keeps the feed in SQLite when a path is configured and in
// memory otherwise.
func newActivityStore(i do.Injector) (activity.Store, error) {
	cfg := do.MustInvoke[config.Provider](i)
	path := cfg.GetActivityDBPath()
	if path == "" {
		return activity.NewMemoryStore(cfg.GetActivityCapacity()), nil
	}
	store, err := activity.OpenSQLite(path, cfg.GetActivityCapacity())
	if err != nil {
		return nil, fmt.Errorf("activity store: %w", err)
	}
	slog.Info("Activity feed persisted", "path", path)
	return store, nil
}

func newFeed(i do.Injector) (*activity.Feed, error) {
	bus := do.MustInvoke[*pubsub.WatermillBridge](i)
	return activity.NewFeed(bus, bus, do.MustInvoke[activity.Store](i)), nil
}

func newContentManager(i do.Injector) (*content.Manager, error) {
	return content.NewManager(
		do.MustInvoke[*api.Client](i),
		do.MustInvoke[*storage.AferoStore](i),
		do.MustInvoke[*activity.Feed](i),
		content.OptionsFrom(do.MustInvoke[config.Provider](i)),
	), nil
}

func newServer(i do.Injector) (*server.Server, error) {
	client := do.MustInvoke[*api.Client](i)
	feed := do.MustInvoke[*activity.Feed](i)
	return server.New(server.Dependencies{
		Config:    do.MustInvoke[config.Provider](i),
		Renderer:  rendering.NewUniversalRenderer(),
		Public:    handlers.NewPublicHandler(client, client),
		Auth:      handlers.NewAuthHandler(client, feed),
		Dashboard: handlers.NewDashboardHandler(client, do.MustInvoke[*content.Manager](i), feed),
	})
}
