package components

import (
	"fmt"
	"net/url"

	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/nfrund/writerfolio/internal/view/dto/admin"
	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

// AdminContentID is the dashboard panel sections are swapped into.
const AdminContentID = "admin-content"

// ItemCard renders one record with its Edit and Delete actions.
func ItemCard(kind domain.Kind, card admin.Card) gomponents.Node {
	base := "/admin/" + kind.Section() + "/" + url.PathEscape(card.ID)
	return Div(
		Class("item-card"), gomponents.Attr("data-id", card.ID),
		gomponents.If(card.ImageURL != "",
			Img(Class("item-card-image"), Src(card.ImageURL), Alt(card.Title), Loading("lazy")),
		),
		Div(
			Class("item-card-body"),
			H3(gomponents.Text(card.Title)),
			gomponents.If(card.Subtitle != "", P(Class("item-card-subtitle"), gomponents.Text(card.Subtitle))),
			gomponents.If(card.Excerpt != "", P(Class("item-card-excerpt"), gomponents.Text(card.Excerpt))),
		),
		Div(
			Class("item-card-actions"),
			A(
				Class("btn btn-secondary"), Href(base+"/edit"),
				hx.Get(base+"/edit"), hx.Target("#"+ModalID), hx.Swap("outerHTML"),
				gomponents.Text("Edit"),
			),
			// Without JavaScript the form GETs a confirmation page; htmx asks
			// in the browser and posts the confirmation itself.
			FormEl(
				Method("get"), Action(base+"/delete"),
				hx.Post(base+"/delete"), hx.Target("#"+AdminContentID),
				hx.Confirm(fmt.Sprintf("Are you sure you want to delete this %s?", kind.Singular())),
				gomponents.Attr("hx-vals", `{"confirm":"yes"}`),
				Input(Type("hidden"), Name("label"), Value(card.Title)),
				Button(Class("btn btn-danger"), Type("submit"), gomponents.Text("Delete")),
			),
		),
	)
}
