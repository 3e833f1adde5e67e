package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/writerfolio/internal/api"
	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/nfrund/writerfolio/internal/middleware"
	"github.com/nfrund/writerfolio/internal/session"
	"github.com/nfrund/writerfolio/internal/view"
	"github.com/nfrund/writerfolio/internal/view/dto/admin"
	"github.com/nfrund/writerfolio/internal/view/dto/auth"
	"github.com/nfrund/writerfolio/web/src/templates/pages"
)

// Settings messages.
const (
	MsgSettingsSaved = "Settings saved successfully!"
	MsgAdminCreated  = "Admin created successfully!"
)

// SettingsPost saves the site settings (POST /admin/settings).
func (h *DashboardHandler) SettingsPost(c echo.Context) error {
	ctx := c.Request().Context()
	h.enterSettings(c)

	var form SettingsForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid settings form")
	}
	data := admin.SettingsData{Settings: form.Settings()}

	fh, err := formFile(c, domain.SettingsImageField+"File")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid upload")
	}
	staged, err := h.writer.Stage(ctx, fh)
	if err != nil {
		data.Error = userMessage(err, "saving settings")
		return h.renderSettings(c, formStatus(c, statusFor(err)), view.FlashData{}, data)
	}

	if err := h.writer.SaveSettings(ctx, token(c), data.Settings, staged); err != nil {
		if api.IsUnauthorized(err) {
			return middleware.ForceLogin(c, middleware.ExpiredMessage)
		}
		middleware.FromContext(ctx).Error("Failed to save settings", "error", err)
		data.Error = userMessage(err, "saving settings")
		return h.renderSettings(c, formStatus(c, statusFor(err)), view.FlashData{}, data)
	}

	// Re-read so the editor shows what the backend stored.
	fresh, err := h.settings(ctx)
	if api.IsUnauthorized(err) {
		return middleware.ForceLogin(c, middleware.ExpiredMessage)
	}
	return h.renderSettings(c, http.StatusOK, view.Success(MsgSettingsSaved), fresh)
}

// AdminsPost creates another admin account (POST /admin/admins).
func (h *DashboardHandler) AdminsPost(c echo.Context) error {
	ctx := c.Request().Context()
	h.enterSettings(c)

	var creds domain.Credentials
	if err := c.Bind(&creds); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid admin form")
	}
	creds.Username = strings.TrimSpace(creds.Username)

	data, err := h.settings(ctx)
	if api.IsUnauthorized(err) {
		return middleware.ForceLogin(c, middleware.ExpiredMessage)
	}

	if err := c.Validate(&creds); err != nil {
		data.CreateAdmin = auth.CreateAdminData{Username: creds.Username, Error: MsgMissingCredentials}
		return h.renderSettings(c, formStatus(c, http.StatusUnprocessableEntity), view.FlashData{}, data)
	}

	if err := h.writer.CreateAdmin(ctx, token(c), creds); err != nil {
		if api.IsUnauthorized(err) {
			return middleware.ForceLogin(c, middleware.ExpiredMessage)
		}
		middleware.FromContext(ctx).Error("Failed to create admin", "username", creds.Username, "error", err)
		data.CreateAdmin = auth.CreateAdminData{Username: creds.Username, Error: userMessage(err, "creating admin")}
		return h.renderSettings(c, formStatus(c, statusFor(err)), view.FlashData{}, data)
	}

	return h.renderSettings(c, http.StatusOK, view.Success(MsgAdminCreated), data)
}

func (h *DashboardHandler) enterSettings(c echo.Context) {
	v := session.Get(c)
	v.Section = session.SectionSettings
	session.Set(c, v)
}

func (h *DashboardHandler) renderSettings(c echo.Context, status int, flash view.FlashData, data admin.SettingsData) error {
	return renderAdmin(c, status, flash, pages.Settings(data, h.reader.ResolveAsset))
}
