package pages

import (
	"context"

	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/nfrund/writerfolio/internal/richtext"
	"github.com/nfrund/writerfolio/internal/view"
	"github.com/nfrund/writerfolio/web/src/templates/components"
	"maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// ProjectDetail renders one portfolio item inside the modal.
func ProjectDetail(ctx context.Context, p domain.Project, asset AssetFunc) gomponents.Node {
	return components.Modal(p.Title, "/#portfolio",
		gomponents.If(p.Image != "", Img(ID("modal-image"), Src(asset(p.Image)), Alt(p.Title))),
		gomponents.If(p.Client != "", P(Class("project-client"), gomponents.Text("Client: "+p.Client))),
		gomponents.If(p.Tagline != "", P(Class("project-tagline"), gomponents.Text(p.Tagline))),
		Div(ID("modal-description"), Class("rich-text"), view.AdaptTemplToGomponentContext(ctx, richtext.Component(p.Description))),
	)
}
