package pages

import (
	"github.com/nfrund/writerfolio/web/src/templates/components"
	"maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// ErrorPage renders a failed page load with a link to try again.
func ErrorPage(heading, message, retryURL string) gomponents.Node {
	return Div(
		Class("error-page"),
		H1(gomponents.Text(heading)),
		P(gomponents.Text(message)),
		gomponents.If(retryURL != "", A(Class("btn btn-primary"), Href(retryURL), gomponents.Text("Try again"))),
	)
}

// ErrorModal shows a failed modal load.
func ErrorModal(message string) gomponents.Node {
	return components.Modal("Something went wrong", "#",
		P(Class("form-error"), gomponents.Text(message)),
	)
}
