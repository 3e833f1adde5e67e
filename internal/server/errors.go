package server

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/writerfolio/internal/middleware"
	"github.com/nfrund/writerfolio/internal/rendering"
)

// setupErrorHandling installs an error handler that logs unexpected errors
// with a stack trace and answers without leaking internals.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
			middleware.FromContext(c.Request().Context()).Debug("HTTP error", "status", code, "error", err)
		} else {
			slog.Error("Internal Server Error (Unhandled)",
				"error", err.Error(),
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"stack_trace", string(debug.Stack()),
			)
		}

		// Keep htmx from swapping the error text into the page.
		if rendering.IsHTMX(c) {
			c.Response().Header().Set("HX-Reswap", "none")
		}

		var respErr error
		if c.Request().Method == http.MethodHead {
			respErr = c.NoContent(code)
		} else {
			respErr = c.String(code, message)
		}
		if respErr != nil {
			slog.Error("Failed to write error response", "error", respErr)
		}
	}
}
