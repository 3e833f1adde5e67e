package components

import (
	"github.com/nfrund/writerfolio/internal/view"
	"maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Flash renders success and error messages as alerts.
func Flash(data view.FlashData) gomponents.Node {
	if data.Empty() {
		return nil
	}
	return Div(
		Class("flash-messages"),
		gomponents.Map(data.Success, func(msg string) gomponents.Node {
			return Div(Class("alert alert-success"), Role("status"), gomponents.Text(msg))
		}),
		gomponents.Map(data.Error, func(msg string) gomponents.Node {
			return Div(Class("alert alert-error"), Role("alert"), gomponents.Text(msg))
		}),
	)
}

// InlineError renders a form-level error message, or nothing.
func InlineError(msg string) gomponents.Node {
	if msg == "" {
		return nil
	}
	return P(Class("form-error"), Role("alert"), gomponents.Text(msg))
}
