package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/writerfolio/internal/api"
	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/nfrund/writerfolio/internal/middleware"
	"github.com/nfrund/writerfolio/internal/session"
	"github.com/nfrund/writerfolio/internal/view"
	"github.com/nfrund/writerfolio/internal/view/dto/admin"
	"github.com/nfrund/writerfolio/web/src/templates/pages"
	"golang.org/x/sync/errgroup"
	"maragu.dev/gomponents"
)

// RecentActivityLimit is how many feed entries the overview shows.
const RecentActivityLimit = 10

// DashboardHandler serves the admin dashboard: the section router, the
// add/edit/delete flows and the settings editor.
type DashboardHandler struct {
	reader   ContentReader
	writer   ContentWriter
	activity ActivityReader
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(reader ContentReader, writer ContentWriter, activity ActivityReader) *DashboardHandler {
	return &DashboardHandler{reader: reader, writer: writer, activity: activity}
}

// SectionGet renders one dashboard section (GET /admin, GET /admin/:section).
// Every call fetches fresh data from the backend.
func (h *DashboardHandler) SectionGet(c echo.Context) error {
	// 1. Resolve the section from the URL.
	sec := session.SectionOverview
	if name := c.Param("section"); name != "" {
		var ok bool
		if sec, ok = session.ParseSection(name); !ok {
			return echo.NewHTTPError(http.StatusNotFound, "unknown section")
		}
	}
	v := session.Get(c)
	v.Section = sec
	session.Set(c, v)

	// 2. Load it.
	body, err := h.section(c.Request().Context(), sec)
	if api.IsUnauthorized(err) {
		return middleware.ForceLogin(c, middleware.ExpiredMessage)
	}
	if err != nil {
		return err
	}

	// 3. Render the fragment or the whole shell.
	return renderAdmin(c, http.StatusOK, view.GetFlashData(c), body)
}

// section builds the body of sec. Only an unauthorized error is returned;
// other failures are rendered in place so the dashboard stays usable.
func (h *DashboardHandler) section(ctx context.Context, sec session.Section) (gomponents.Node, error) {
	if kind, ok := sec.Kind(); ok {
		data, err := h.list(ctx, kind)
		return pages.ListSection(data), err
	}
	switch sec {
	case session.SectionSettings:
		data, err := h.settings(ctx)
		return pages.Settings(data, h.reader.ResolveAsset), err
	default:
		return pages.Overview(h.overview(ctx)), nil
	}
}

// list fetches kind and converts it to cards.
func (h *DashboardHandler) list(ctx context.Context, kind domain.Kind) (admin.ListData, error) {
	data := admin.ListData{Kind: kind}
	var err error
	switch kind {
	case domain.KindService:
		var items []domain.Service
		items, err = h.reader.Services(ctx)
		data.Cards = pages.Cards(items, h.reader.ResolveAsset)
	case domain.KindProject:
		var items []domain.Project
		items, err = h.reader.Projects(ctx)
		data.Cards = pages.Cards(items, h.reader.ResolveAsset)
	case domain.KindTestimonial:
		var items []domain.Testimonial
		items, err = h.reader.Testimonials(ctx)
		data.Cards = pages.Cards(items, h.reader.ResolveAsset)
	}
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to load section", "kind", kind, "error", err)
		data.Error = api.UserMessage(err, "loading "+string(kind))
		data.Retry = api.IsRetryable(err)
		if api.IsUnauthorized(err) {
			return data, err
		}
	}
	return data, nil
}

// overview counts the collections concurrently and reads the activity feed.
func (h *DashboardHandler) overview(ctx context.Context) admin.OverviewData {
	data := admin.OverviewData{Counts: make([]admin.Count, len(domain.Kinds))}

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range domain.Kinds {
		data.Counts[i].Kind = kind
		g.Go(func() error {
			n, err := h.reader.Count(gctx, kind)
			if err != nil {
				data.Counts[i].Err = api.UserMessage(err, "counting "+string(kind))
				return nil
			}
			data.Counts[i].Total = n
			return nil
		})
	}
	if h.activity != nil {
		g.Go(func() error {
			recent, err := h.activity.Recent(gctx, RecentActivityLimit)
			if err != nil {
				middleware.FromContext(ctx).Warn("Failed to read activity", "error", err)
				return nil
			}
			data.Recent = recent
			return nil
		})
	}
	_ = g.Wait()
	return data
}

// settings fetches the settings singleton for the editor.
func (h *DashboardHandler) settings(ctx context.Context) (admin.SettingsData, error) {
	s, err := h.reader.Settings(ctx)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to load settings", "error", err)
		if api.IsUnauthorized(err) {
			return admin.SettingsData{}, err
		}
		return admin.SettingsData{Error: api.UserMessage(err, "loading settings")}, nil
	}
	return admin.SettingsData{Settings: s}, nil
}

// token is the bearer token the Auth middleware placed on the request.
func token(c echo.Context) string { return session.Get(c).Token }
