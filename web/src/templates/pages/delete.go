package pages

import (
	"fmt"
	"net/url"

	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/nfrund/writerfolio/internal/session"
	"maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// DeleteConfirm asks before a record is deleted when the browser could not
// show the confirm dialog itself.
func DeleteConfirm(kind domain.Kind, id, label string) gomponents.Node {
	sec := string(session.SectionFor(kind))
	subject := kind.Singular()
	if label != "" {
		subject += " “" + label + "”"
	}
	return Div(
		ID("delete-confirm"), Class("admin-section"),
		H1(gomponents.Text("Delete "+titleWord(kind.Singular()))),
		P(gomponents.Text(fmt.Sprintf("Are you sure you want to delete this %s?", subject))),
		FormEl(
			Method("post"), Action("/admin/"+sec+"/"+url.PathEscape(id)+"/delete"),
			Input(Type("hidden"), Name("confirm"), Value("yes")),
			Input(Type("hidden"), Name("label"), Value(label)),
			Div(
				Class("form-actions"),
				Button(Class("btn btn-danger"), Type("submit"), gomponents.Text("Delete")),
				A(Class("btn btn-secondary"), Href("/admin/"+sec), gomponents.Text("Cancel")),
			),
		),
	)
}
