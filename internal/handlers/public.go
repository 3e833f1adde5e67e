package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/writerfolio/internal/api"
	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/nfrund/writerfolio/internal/middleware"
	"github.com/nfrund/writerfolio/internal/rendering"
	"github.com/nfrund/writerfolio/internal/view"
	"github.com/nfrund/writerfolio/internal/view/dto/public"
	"github.com/nfrund/writerfolio/web/src/templates/layouts"
	"github.com/nfrund/writerfolio/web/src/templates/pages"
	"golang.org/x/sync/errgroup"
)

// Public-site messages.
const (
	MsgContactSent   = "Message sent successfully!"
	MsgContactFailed = "Error sending message. Please try again."
)

// PublicHandler serves the read-only site and the contact form.
type PublicHandler struct {
	reader  ContentReader
	contact ContactSender
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(reader ContentReader, contact ContactSender) *PublicHandler {
	return &PublicHandler{reader: reader, contact: contact}
}

// HomeGet renders the public home page. The four collections are fetched
// concurrently; a failed one is left empty and reported.
func (h *PublicHandler) HomeGet(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	// 1. Fetch everything at once. Each goroutine owns its own error.
	var data public.HomeData
	var servicesErr, projectsErr, testimonialErr, settingsErr error
	var g errgroup.Group
	g.Go(func() error { data.Services, servicesErr = h.reader.Services(ctx); return nil })
	g.Go(func() error { data.Projects, projectsErr = h.reader.Projects(ctx); return nil })
	g.Go(func() error { data.Testimonials, testimonialErr = h.reader.Testimonials(ctx); return nil })
	g.Go(func() error { data.Settings, settingsErr = h.reader.Settings(ctx); return nil })
	_ = g.Wait()

	// 2. Report failures without hiding the sections that did load.
	for _, f := range []struct {
		err  error
		what string
	}{
		{servicesErr, "services"},
		{projectsErr, "portfolio"},
		{testimonialErr, "testimonials"},
		{settingsErr, "settings"},
	} {
		if f.err != nil {
			logger.Error("Failed to load public content", "section", f.what, "error", f.err)
			data.Errors = append(data.Errors, api.UserMessage(f.err, "loading "+f.what))
		}
	}

	// 3. Render.
	page := layouts.Page{SiteName: data.Settings.BusinessName, BodyClass: "public", Flash: view.GetFlashData(c)}
	return renderPage(c, http.StatusOK, page, pages.Home(data, h.reader.ResolveAsset))
}

// ProjectGet renders one portfolio item: the modal fragment for htmx, a full
// page otherwise.
func (h *PublicHandler) ProjectGet(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	project, err := h.reader.Project(ctx, id)
	if err != nil {
		middleware.FromContext(ctx).Warn("Failed to load project", "id", id, "error", err)
		status := statusFor(err)
		msg := api.UserMessage(err, "loading project details")
		if rendering.IsHTMX(c) {
			return c.Render(http.StatusOK, "", pages.ErrorModal(msg))
		}
		page := layouts.Page{Title: "Portfolio", BodyClass: "public"}
		return renderPage(c, status, page, pages.ErrorPage("Portfolio", msg, "/#portfolio"))
	}

	detail := pages.ProjectDetail(ctx, *project, h.reader.ResolveAsset)
	if rendering.IsHTMX(c) {
		return c.Render(http.StatusOK, "", detail)
	}
	page := layouts.Page{Title: project.Title, BodyClass: "public"}
	return renderPage(c, http.StatusOK, page, detail)
}

// ContactPost forwards the contact form to the backend.
func (h *PublicHandler) ContactPost(c echo.Context) error {
	ctx := c.Request().Context()

	// 1. Bind and validate the submitted fields.
	var msg domain.ContactMessage
	if err := c.Bind(&msg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid contact form")
	}
	data := public.ContactData{Message: msg}

	if err := c.Validate(&msg); err != nil {
		data.Error = userMessage(err, "sending message")
		return h.contactResponse(c, data)
	}

	// 2. Send it.
	if err := h.contact.SendContact(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to send contact message", "error", err)
		data.Error = MsgContactFailed
		return h.contactResponse(c, data)
	}

	// 3. Success clears the form.
	return h.contactResponse(c, public.ContactData{Success: MsgContactSent})
}

// contactResponse swaps the form for htmx and otherwise redirects back to
// the contact section with a flash.
func (h *PublicHandler) contactResponse(c echo.Context, data public.ContactData) error {
	if rendering.IsHTMX(c) {
		return c.Render(http.StatusOK, "", pages.ContactForm(data))
	}
	if data.Error != "" {
		view.SetFlashError(c, data.Error)
	} else {
		view.SetFlashSuccess(c, data.Success)
	}
	return c.Redirect(http.StatusSeeOther, "/#contact")
}
