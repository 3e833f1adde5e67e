package view_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/nfrund/writerfolio/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type ctxKey struct{}

func TestAdapters(t *testing.T) {
	t.Run("gomponent inside templ", func(t *testing.T) {
		var buf bytes.Buffer
		c := view.AdaptGomponentToTempl(Div(Class("item-card"), gomponents.Text("Essay")))
		require.NoError(t, c.Render(context.Background(), &buf))
		assert.Equal(t, `<div class="item-card">Essay</div>`, buf.String())
	})

	t.Run("templ inside gomponent keeps the context", func(t *testing.T) {
		comp := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			v, _ := ctx.Value(ctxKey{}).(string)
			_, err := io.WriteString(w, v)
			return err
		})
		ctx := context.WithValue(context.Background(), ctxKey{}, "from-request")

		var buf bytes.Buffer
		require.NoError(t, Span(view.AdaptTemplToGomponentContext(ctx, comp)).Render(&buf))
		assert.Equal(t, "<span>from-request</span>", buf.String())

		buf.Reset()
		require.NoError(t, view.AdaptTemplToGomponent(comp).Render(&buf))
		assert.Empty(t, buf.String())
	})
}
