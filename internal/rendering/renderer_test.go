package rendering

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func TestUniversalRenderer(t *testing.T) {
	r := NewUniversalRenderer()
	ctx := context.Background()

	out, err := r.RenderComponent(ctx, P(gomponents.Text("hi")))
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(out))

	tc := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<b>templ</b>")
		return err
	})
	out, err = r.RenderComponent(ctx, tc)
	require.NoError(t, err)
	assert.Equal(t, "<b>templ</b>", string(out))

	_, err = r.RenderComponent(ctx, 42)
	assert.Error(t, err)
}

func TestRenderPageAndEchoRender(t *testing.T) {
	e := echo.New()
	r := NewUniversalRenderer()
	e.Renderer = r

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, r.RenderPage(c, http.StatusCreated, Div(gomponents.Text("page"))))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	assert.Equal(t, "<div>page</div>", rec.Body.String())

	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	require.NoError(t, c.Render(http.StatusOK, "", Span(gomponents.Text("x"))))
	assert.Equal(t, "<span>x</span>", rec.Body.String())
}

func TestIsHTMX(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/services", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	assert.False(t, IsHTMX(c))

	req.Header.Set("HX-Request", "true")
	assert.True(t, IsHTMX(c))

	req.Header.Set("HX-Boosted", "true")
	assert.False(t, IsHTMX(c), "boosted requests want the whole page")
}

func TestRedirect(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/admin/services", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, Redirect(e.NewContext(req, rec), "/admin/login"))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get(echo.HeaderLocation))

	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	require.NoError(t, Redirect(e.NewContext(req, rec), "/admin/login"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("HX-Redirect"))
}
