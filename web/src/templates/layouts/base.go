package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/nfrund/writerfolio/internal/view"
	"github.com/nfrund/writerfolio/web/src/templates/components"
	"maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// Page describes the document around a page body.
type Page struct {
	Title    string
	SiteName string
	// BodyClass distinguishes public and admin styling.
	BodyClass string
	Flash     view.FlashData
}

// Document renders the HTML document with body inside it. body may be a templ
// component or an adapted gomponents node.
func Document(page Page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return c.HTML5(c.HTML5Props{
			Title:    CalculateTitle(page.Title, page.SiteName),
			Language: "en",
			Head: []gomponents.Node{
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				Link(Rel("stylesheet"), Href("/static/css/site.css")),
				Script(Src(htmxSrc), Defer()),
			},
			Body: []gomponents.Node{
				Class(page.BodyClass),
				components.Flash(page.Flash),
				view.AdaptTemplToGomponentContext(ctx, body),
				components.ModalRoot(),
			},
		}).Render(w)
	})
}
