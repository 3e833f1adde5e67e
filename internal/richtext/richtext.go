// Package richtext renders project descriptions. Authors write Markdown or
// paste HTML; both are accepted and raw HTML is passed through.
package richtext

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
		html.WithUnsafe(),
	),
)

// ToHTML converts source to an HTML fragment.
func ToHTML(source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Component renders source as a templ component. Conversion failures fall
// back to the escaped source text.
func Component(source string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out, err := ToHTML(source)
		if err != nil {
			_, err = io.WriteString(w, templ.EscapeString(source))
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	})
}
