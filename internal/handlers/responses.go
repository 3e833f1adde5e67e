package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/writerfolio/internal/api"
	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/nfrund/writerfolio/internal/rendering"
	"github.com/nfrund/writerfolio/internal/session"
	"github.com/nfrund/writerfolio/internal/view"
	"github.com/nfrund/writerfolio/web/src/templates/components"
	"github.com/nfrund/writerfolio/web/src/templates/layouts"
	"maragu.dev/gomponents"
)

// renderPage wraps body in the public Base layout.
func renderPage(c echo.Context, status int, page layouts.Page, body gomponents.Node) error {
	// 1. Wrap the Gomponents content to make it compatible with the layout.
	pageContent := view.AdaptGomponentToTempl(body)

	// 2. Wrap the inner page in the Base layout.
	finalComponent := layouts.Document(page, pageContent)

	// 3. Render through the universal renderer.
	return c.Render(status, "", finalComponent)
}

// renderAdmin answers htmx requests with the fragment (flash first) and
// everything else with the full dashboard shell.
func renderAdmin(c echo.Context, status int, flash view.FlashData, body gomponents.Node) error {
	if rendering.IsHTMX(c) {
		return c.Render(status, "", gomponents.Group{components.Flash(flash), body})
	}
	return c.Render(status, "", layouts.Admin(session.Get(c), flash, view.AdaptGomponentToTempl(body)))
}

// formStatus is the status for a re-rendered form. htmx ignores error
// responses by default, so fragments are sent with 200.
func formStatus(c echo.Context, status int) int {
	if rendering.IsHTMX(c) {
		return http.StatusOK
	}
	return status
}

// statusFor maps a failure to an HTTP status for full-page responses.
func statusFor(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs),
		errors.Is(err, domain.ErrFileTooLarge),
		errors.Is(err, domain.ErrUnsupportedType):
		return http.StatusUnprocessableEntity
	}
	switch api.KindOf(err) {
	case api.KindValidation:
		return http.StatusUnprocessableEntity
	case api.KindNotFound:
		return http.StatusNotFound
	case api.KindUnauthorized:
		return http.StatusUnauthorized
	case api.KindForbidden:
		return http.StatusForbidden
	case api.KindNetwork, api.KindServer, api.KindMalformed:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// userMessage turns err into a sentence for the admin, e.g. "Error saving
// service: Title is required".
func userMessage(err error, action string) string {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fieldMessage(fe))
		}
		return fmt.Sprintf("Error %s: %s", action, strings.Join(parts, "; "))
	case errors.Is(err, domain.ErrFileTooLarge):
		return fmt.Sprintf("Error %s: the image is too large.", action)
	case errors.Is(err, domain.ErrUnsupportedType):
		return fmt.Sprintf("Error %s: the image type is not supported.", action)
	}
	return api.UserMessage(err, action)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "url":
		return fe.Field() + " must be a valid URL"
	case "numeric":
		return fe.Field() + " must be a number"
	case "max":
		return fe.Field() + " is too long"
	}
	return fe.Field() + " is invalid"
}
