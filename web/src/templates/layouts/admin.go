package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/nfrund/writerfolio/internal/session"
	"github.com/nfrund/writerfolio/internal/view"
	"github.com/nfrund/writerfolio/web/src/templates/components"
	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

// Admin renders the dashboard shell: a sidebar that switches sections with
// htmx and the content panel holding the active section.
func Admin(v session.View, flash view.FlashData, content templ.Component) templ.Component {
	shell := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Div(
			Class("admin-layout"),
			Aside(
				Class("sidebar"),
				H2(gomponents.Text("Dashboard")),
				Nav(
					Ul(gomponents.Map(session.Sections, func(s session.Section) gomponents.Node {
						return Li(sectionLink(s, s == v.Section))
					})),
				),
				FormEl(
					Method("post"), Action("/admin/logout"),
					Button(Class("btn btn-secondary logout-btn"), Type("submit"), gomponents.Text("Logout")),
				),
			),
			Main(
				ID(components.AdminContentID),
				Class("admin-content"),
				view.AdaptTemplToGomponentContext(ctx, content),
			),
		).Render(w)
	})
	return Base(Page{Title: "Admin · " + v.Section.Label(), BodyClass: "admin"}, withFlash(flash, shell))
}

func sectionLink(s session.Section, active bool) gomponents.Node {
	href := "/admin/" + string(s)
	return A(
		Href(href),
		gomponents.If(active, Class("active")),
		hx.Get(href), hx.Target("#"+components.AdminContentID), hx.PushURL("true"),
		gomponents.Text(s.Label()),
	)
}

// withFlash moves the flash messages inside the dashboard shell.
func withFlash(flash view.FlashData, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if !flash.Empty() {
			if err := components.Flash(flash).Render(w); err != nil {
				return err
			}
		}
		return body.Render(ctx, w)
	})
}
