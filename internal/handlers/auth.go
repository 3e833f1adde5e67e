package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/writerfolio/internal/activity"
	"github.com/nfrund/writerfolio/internal/api"
	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/nfrund/writerfolio/internal/middleware"
	"github.com/nfrund/writerfolio/internal/session"
	"github.com/nfrund/writerfolio/internal/view"
	"github.com/nfrund/writerfolio/internal/view/dto/auth"
	"github.com/nfrund/writerfolio/web/src/templates/layouts"
	"github.com/nfrund/writerfolio/web/src/templates/pages"
)

// Login messages.
const (
	MsgInvalidCredentials = "Invalid credentials"
	MsgLoginFailed        = "Login failed. Please try again."
	MsgMissingCredentials = "Please enter your username and password."
	MsgLoggedOut          = "You have been logged out."
)

// AuthHandler handles the admin login gate.
type AuthHandler struct {
	auth     Authenticator
	recorder activity.Recorder
	now      func() time.Time
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth Authenticator, recorder activity.Recorder) *AuthHandler {
	if recorder == nil {
		recorder = activity.Discard{}
	}
	return &AuthHandler{auth: auth, recorder: recorder, now: time.Now}
}

// LoginGet renders the login page (GET /admin/login). An admin with a usable
// token goes straight to the dashboard.
func (h *AuthHandler) LoginGet(c echo.Context) error {
	if token := session.Token(c); token != "" && !session.Expired(token, h.now()) {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}

	// 1. Retrieve flash messages (e.g. "session expired").
	flashes := view.GetFlashData(c)

	// 2. Render the login form.
	return h.renderLogin(c, http.StatusOK, flashes, auth.LoginData{Next: safeNext(c.QueryParam("next"))})
}

// LoginPost submits the credentials to the backend. Only a successful login
// stores anything in the session.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)

	// 1. Bind and validate.
	var creds domain.Credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid login form")
	}
	data := auth.LoginData{Username: creds.Username, Next: safeNext(c.FormValue("next"))}
	if err := c.Validate(&creds); err != nil {
		data.Error = MsgMissingCredentials
		return h.renderLogin(c, http.StatusUnprocessableEntity, view.FlashData{}, data)
	}

	// 2. Ask the backend for a token.
	token, err := h.auth.Login(ctx, creds)
	if err != nil {
		if api.IsUnauthorized(err) {
			logger.Warn("Failed login attempt", "username", creds.Username)
			data.Error = MsgInvalidCredentials
			return h.renderLogin(c, http.StatusUnauthorized, view.FlashData{}, data)
		}
		logger.Error("Login request failed", "error", err)
		data.Error = MsgLoginFailed
		return h.renderLogin(c, statusFor(err), view.FlashData{}, data)
	}

	// 3. Persist the token and show the dashboard.
	if err := session.SaveToken(c, token); err != nil {
		logger.Error("Failed to save session", "error", err)
		data.Error = MsgLoginFailed
		return h.renderLogin(c, http.StatusInternalServerError, view.FlashData{}, data)
	}
	h.recorder.Record(ctx, domain.ActivityEntry{Action: domain.ActionLogin, Label: creds.Username})

	next := data.Next
	if next == "" {
		next = "/admin"
	}
	return c.Redirect(http.StatusSeeOther, next)
}

// Logout clears the token and returns to the login form.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	if err := session.Clear(c); err != nil {
		middleware.FromContext(ctx).Warn("Failed to clear session", "error", err)
	}
	h.recorder.Record(ctx, domain.ActivityEntry{Action: domain.ActionLogout})

	view.SetFlashSuccess(c, MsgLoggedOut)
	return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

func (h *AuthHandler) renderLogin(c echo.Context, status int, flashes view.FlashData, data auth.LoginData) error {
	page := layouts.Page{Title: "Admin Login", BodyClass: "admin login", Flash: flashes}
	return renderPage(c, status, page, pages.Login(data))
}

// safeNext only allows redirects back into the dashboard.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/admin") && !strings.HasPrefix(next, "//") {
		return next
	}
	return ""
}
