package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/writerfolio/internal/rendering"
	"github.com/nfrund/writerfolio/internal/session"
	"github.com/nfrund/writerfolio/internal/view"
)

// LoginPath is where unauthenticated admins are sent.
const LoginPath = "/admin/login"

// ExpiredMessage is flashed when a stored token is no longer accepted.
const ExpiredMessage = "Your session has expired. Please log in again."

// Auth creates a middleware that protects the admin dashboard. The token is
// read from the cookie session; a JWT whose exp has passed counts as absent.
// Downstream handlers read the token with session.Get.
func Auth(now func() time.Time) echo.MiddlewareFunc {
	if now == nil {
		now = time.Now
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := session.Token(c)
			if token == "" {
				return rendering.Redirect(c, LoginPath)
			}

			if session.Expired(token, now()) {
				FromContext(c.Request().Context()).Info("Stored token has expired")
				return ForceLogin(c, ExpiredMessage)
			}

			session.Set(c, session.View{Token: token, Section: session.SectionOverview})
			return next(c)
		}
	}
}

// ForceLogin clears the stored token, flashes message and redirects to the
// login form.
func ForceLogin(c echo.Context, message string) error {
	if err := session.Clear(c); err != nil {
		FromContext(c.Request().Context()).Warn("Failed to clear session", "error", err)
	}
	if message != "" {
		view.SetFlashError(c, message)
	}
	return rendering.Redirect(c, LoginPath)
}
