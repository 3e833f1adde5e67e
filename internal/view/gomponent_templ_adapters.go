package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"maragu.dev/gomponents"
)

// GomponentToTemplAdapter lets a gomponents node sit inside a templ layout.
type GomponentToTemplAdapter struct {
	Node gomponents.Node
}

func (a *GomponentToTemplAdapter) Render(_ context.Context, w io.Writer) error {
	if a.Node == nil {
		return nil
	}
	return a.Node.Render(w)
}

// AdaptGomponentToTempl converts a gomponents node into a templ.Component.
func AdaptGomponentToTempl(node gomponents.Node) templ.Component {
	return &GomponentToTemplAdapter{Node: node}
}

// TemplToGomponentAdapter lets a templ component sit inside a gomponents tree.
// gomponents does not pass a context, so the one captured at construction is
// used (context.Background when none was given).
type TemplToGomponentAdapter struct {
	Component templ.Component
	Ctx       context.Context
}

func (a *TemplToGomponentAdapter) Render(w io.Writer) error {
	if a.Component == nil {
		return nil
	}
	ctx := a.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return a.Component.Render(ctx, w)
}

// AdaptTemplToGomponent converts a templ component into a gomponents node.
func AdaptTemplToGomponent(component templ.Component) gomponents.Node {
	return &TemplToGomponentAdapter{Component: component}
}

// AdaptTemplToGomponentContext is AdaptTemplToGomponent with a request
// context, for components that read values from it.
func AdaptTemplToGomponentContext(ctx context.Context, component templ.Component) gomponents.Node {
	return &TemplToGomponentAdapter{Component: component, Ctx: ctx}
}
