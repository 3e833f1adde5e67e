package rendering

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Renderer defines the contract for rendering templ components and
// gomponents nodes.
type Renderer interface {
	// RenderComponent renders a component to a slice of bytes.
	RenderComponent(ctx context.Context, component interface{}) ([]byte, error)

	// RenderPage writes component as the full HTML response.
	RenderPage(c echo.Context, status int, component interface{}) error
}

// UniversalRenderer handles templ.Component and anything with
// Render(io.Writer) error, such as gomponents.Node.
type UniversalRenderer struct{}

// NewUniversalRenderer creates a new UniversalRenderer instance.
func NewUniversalRenderer() *UniversalRenderer {
	return &UniversalRenderer{}
}

type gomponentNode interface {
	Render(w io.Writer) error
}

func (tr *UniversalRenderer) render(ctx context.Context, component interface{}, w io.Writer) error {
	switch c := component.(type) {
	case templ.Component:
		return c.Render(ctx, w)
	case gomponentNode:
		return c.Render(w)
	default:
		return fmt.Errorf("unsupported component type: %T", component)
	}
}

// RenderComponent implements the Renderer interface.
func (tr *UniversalRenderer) RenderComponent(ctx context.Context, component interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := tr.render(ctx, component, &buf); err != nil {
		return nil, fmt.Errorf("failed to render component to bytes: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPage renders into a buffer first so a failing component produces an
// error response instead of half a page.
func (tr *UniversalRenderer) RenderPage(c echo.Context, status int, component interface{}) error {
	out, err := tr.RenderComponent(c.Request().Context(), component)
	if err != nil {
		return err
	}
	return c.HTMLBlob(status, out)
}

// Render implements echo.Renderer for c.Render(status, "", component). The
// template name is ignored; the component travels in data.
func (tr *UniversalRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	if c.Response().Header().Get(echo.HeaderContentType) == "" {
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	}
	return tr.render(c.Request().Context(), data, w)
}

// IsHTMX reports whether the request was issued by htmx, in which case
// handlers answer with a fragment instead of a full page.
func IsHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true" && c.Request().Header.Get("HX-Boosted") != "true"
}

// Retarget tells htmx to swap the response into selector, replacing it,
// instead of the element that issued the request.
func Retarget(c echo.Context, selector string) {
	c.Response().Header().Set("HX-Retarget", selector)
	c.Response().Header().Set("HX-Reswap", "outerHTML")
}

// Redirect sends the browser to url. htmx requests get an HX-Redirect header
// so the whole page navigates instead of the target being swapped.
func Redirect(c echo.Context, url string) error {
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", url)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, url)
}
