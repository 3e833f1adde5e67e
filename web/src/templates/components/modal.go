package components

import (
	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

// ModalID is the container every modal fragment is swapped into.
const ModalID = "modal"

// ModalRoot is the empty container placed once per page.
func ModalRoot() gomponents.Node {
	return Div(ID(ModalID))
}

// Modal wraps body in the overlay markup. closeURL is followed when the modal
// is dismissed without JavaScript.
func Modal(heading, closeURL string, body ...gomponents.Node) gomponents.Node {
	return Div(
		ID(ModalID),
		Div(
			Class("modal-overlay"),
			Div(
				Class("modal"), Role("dialog"), Aria("modal", "true"),
				Div(
					Class("modal-header"),
					H2(gomponents.Text(heading)),
					A(
						Class("modal-close"), Href(closeURL), Aria("label", "Close"),
						gomponents.Attr("hx-on:click", "event.preventDefault(); document.getElementById('"+ModalID+"').innerHTML = ''"),
						gomponents.Text("×"),
					),
				),
				Div(Class("modal-body"), gomponents.Group(body)),
			),
		),
	)
}

// CloseModal is an out-of-band swap that empties the modal container.
func CloseModal() gomponents.Node {
	return Div(ID(ModalID), hx.SwapOOB("true"))
}
