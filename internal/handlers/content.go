package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/writerfolio/internal/api"
	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/nfrund/writerfolio/internal/middleware"
	"github.com/nfrund/writerfolio/internal/rendering"
	"github.com/nfrund/writerfolio/internal/session"
	"github.com/nfrund/writerfolio/internal/view"
	"github.com/nfrund/writerfolio/internal/view/dto/admin"
	"github.com/nfrund/writerfolio/web/src/templates/components"
	"github.com/nfrund/writerfolio/web/src/templates/pages"
	"maragu.dev/gomponents"
)

// kindParam parses the :section of a record route ("portfolio" is projects).
func kindParam(c echo.Context) (domain.Kind, error) {
	kind, err := domain.ParseKind(c.Param("section"))
	if err != nil {
		return "", echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	v := session.Get(c)
	v.Section = session.SectionFor(kind)
	session.Set(c, v)
	return kind, nil
}

// NewGet renders an empty add form (GET /admin/:section/new).
func (h *DashboardHandler) NewGet(c echo.Context) error {
	kind, err := kindParam(c)
	if err != nil {
		return err
	}
	return h.renderForm(c, http.StatusOK, admin.FormData{Kind: kind})
}

// EditGet fetches a record and renders the form filled with it
// (GET /admin/:section/:id/edit).
func (h *DashboardHandler) EditGet(c echo.Context) error {
	kind, err := kindParam(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	rec, err := h.reader.Record(ctx, kind, c.Param("id"))
	if err != nil {
		if api.IsUnauthorized(err) {
			return middleware.ForceLogin(c, middleware.ExpiredMessage)
		}
		middleware.FromContext(ctx).Warn("Failed to load record", "kind", kind, "id", c.Param("id"), "error", err)
		return h.listWithFlash(c, kind, view.Error(api.UserMessage(err, "loading "+kind.Singular())))
	}
	return h.renderForm(c, http.StatusOK, admin.FormData{Kind: kind, Record: rec})
}

// CreatePost saves a new record (POST /admin/:section).
func (h *DashboardHandler) CreatePost(c echo.Context) error {
	return h.save(c, "")
}

// UpdatePost saves an existing record (POST /admin/:section/:id).
func (h *DashboardHandler) UpdatePost(c echo.Context) error {
	return h.save(c, c.Param("id"))
}

func (h *DashboardHandler) save(c echo.Context, id string) error {
	kind, err := kindParam(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	action := "saving " + kind.Singular()

	// 1. Bind the form into a record.
	rec, err := bindRecord(c, kind, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	data := admin.FormData{Kind: kind, Record: rec}

	// 2. Stage the optional image.
	fh, err := formFile(c, kind.ImageField()+"File")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid upload")
	}
	staged, err := h.writer.Stage(ctx, fh)
	if err != nil {
		data.Error = userMessage(err, action)
		return h.renderForm(c, formStatus(c, statusFor(err)), data)
	}

	// 3. Upload and save. Nothing in the list changes on failure.
	if err := h.writer.Save(ctx, token(c), rec, staged); err != nil {
		if api.IsUnauthorized(err) {
			return middleware.ForceLogin(c, middleware.ExpiredMessage)
		}
		middleware.FromContext(ctx).Error("Failed to save record", "kind", kind, "id", id, "error", err)
		data.Error = userMessage(err, action)
		return h.renderForm(c, formStatus(c, statusFor(err)), data)
	}

	// 4. Close the modal and show the refreshed list.
	return h.afterMutation(c, kind, fmt.Sprintf("%s saved successfully!", capitalize(kind.Singular())))
}

// DeleteGet asks for confirmation before a delete (GET /admin/:section/:id/delete).
// Browsers without JavaScript land here from the card's Delete button.
func (h *DashboardHandler) DeleteGet(c echo.Context) error {
	kind, err := kindParam(c)
	if err != nil {
		return err
	}
	return renderAdmin(c, http.StatusOK, view.FlashData{}, pages.DeleteConfirm(kind, c.Param("id"), c.QueryParam("label")))
}

// DeletePost removes a record after confirmation (POST /admin/:section/:id/delete).
func (h *DashboardHandler) DeletePost(c echo.Context) error {
	kind, err := kindParam(c)
	if err != nil {
		return err
	}
	if c.FormValue("confirm") != "yes" {
		return echo.NewHTTPError(http.StatusBadRequest, "deletion was not confirmed")
	}
	ctx := c.Request().Context()

	if err := h.writer.Delete(ctx, token(c), kind, c.Param("id"), c.FormValue("label")); err != nil {
		if api.IsUnauthorized(err) {
			return middleware.ForceLogin(c, middleware.ExpiredMessage)
		}
		middleware.FromContext(ctx).Error("Failed to delete record", "kind", kind, "id", c.Param("id"), "error", err)
		msg := userMessage(err, "deleting "+kind.Singular())
		if rendering.IsHTMX(c) {
			return h.listWithFlash(c, kind, view.Error(msg))
		}
		view.SetFlashError(c, msg)
		return c.Redirect(http.StatusSeeOther, "/admin/"+kind.Section())
	}

	return h.afterMutation(c, kind, fmt.Sprintf("%s deleted successfully!", capitalize(kind.Singular())))
}

// afterMutation re-fetches the list. htmx gets the list with the modal
// closed out of band; plain posts are redirected.
func (h *DashboardHandler) afterMutation(c echo.Context, kind domain.Kind, message string) error {
	if !rendering.IsHTMX(c) {
		view.SetFlashSuccess(c, message)
		return c.Redirect(http.StatusSeeOther, "/admin/"+kind.Section())
	}
	data, err := h.list(c.Request().Context(), kind)
	if api.IsUnauthorized(err) {
		return middleware.ForceLogin(c, middleware.ExpiredMessage)
	}
	return c.Render(http.StatusOK, "", gomponents.Group{
		components.Flash(view.Success(message)),
		pages.ListSection(data),
		components.CloseModal(),
	})
}

// listWithFlash renders the section list with a one-off message.
func (h *DashboardHandler) listWithFlash(c echo.Context, kind domain.Kind, flash view.FlashData) error {
	data, err := h.list(c.Request().Context(), kind)
	if api.IsUnauthorized(err) {
		return middleware.ForceLogin(c, middleware.ExpiredMessage)
	}
	if rendering.IsHTMX(c) {
		rendering.Retarget(c, "#"+components.AdminContentID)
		return c.Render(http.StatusOK, "", gomponents.Group{
			gomponents.El("div", gomponents.Attr("id", components.AdminContentID), gomponents.Attr("class", "admin-content"),
				components.Flash(flash), pages.ListSection(data)),
			components.CloseModal(),
		})
	}
	return renderAdmin(c, http.StatusOK, flash, pages.ListSection(data))
}

// renderForm answers with the modal: as a fragment for htmx (retargeted so a
// failed submit replaces the modal, not the list) or inside the dashboard.
func (h *DashboardHandler) renderForm(c echo.Context, status int, data admin.FormData) error {
	modal := pages.RecordModal(data, h.reader.ResolveAsset)
	if rendering.IsHTMX(c) {
		rendering.Retarget(c, "#"+components.ModalID)
		return c.Render(http.StatusOK, "", modal)
	}
	return renderAdmin(c, status, view.FlashData{}, modal)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
