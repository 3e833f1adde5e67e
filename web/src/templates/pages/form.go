package pages

import (
	"net/url"

	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/nfrund/writerfolio/internal/session"
	"github.com/nfrund/writerfolio/internal/view/dto/admin"
	"github.com/nfrund/writerfolio/web/src/templates/components"
	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

// RecordModal renders the add/edit form for one record inside the modal.
func RecordModal(data admin.FormData, asset AssetFunc) gomponents.Node {
	sec := session.SectionFor(data.Kind)
	verb := "Add "
	action := "/admin/" + string(sec)
	if data.IsEdit() {
		verb = "Edit "
		action += "/" + url.PathEscape(data.Record.RecordID())
	}

	return components.Modal(verb+titleWord(data.Kind.Singular()), "/admin/"+string(sec),
		FormEl(
			ID(string(data.Kind)+"-form"), Class("record-form"),
			Method("post"), Action(action), EncType("multipart/form-data"),
			hx.Post(action), hx.Target("#"+components.AdminContentID),
			components.InlineError(data.Error),
			recordFields(data.Kind, data.Record, asset),
			components.SubmitButton("Save"),
		),
	)
}

func recordFields(kind domain.Kind, rec domain.Record, asset AssetFunc) gomponents.Node {
	preview := func(u string) string {
		if u == "" {
			return ""
		}
		return asset(u)
	}

	switch kind {
	case domain.KindService:
		s, _ := rec.(*domain.Service)
		if s == nil {
			s = &domain.Service{}
		}
		return gomponents.Group{
			components.TextField("title", "Title", "text", s.Title, true),
			components.TextArea("description", "Description", s.Description, 4, true),
			components.TextField("price", "Price", "number", string(s.Price), false),
			imageField("icon", "Icon", s.Icon, preview),
		}
	case domain.KindProject:
		p, _ := rec.(*domain.Project)
		if p == nil {
			p = &domain.Project{}
		}
		return gomponents.Group{
			components.TextField("title", "Title", "text", p.Title, true),
			components.TextField("client", "Client", "text", p.Client, false),
			components.TextField("tagline", "Tagline", "text", p.Tagline, false),
			components.TextArea("description", "Description (Markdown or HTML)", p.Description, 8, false),
			imageField("image", "Image", p.Image, preview),
		}
	case domain.KindTestimonial:
		t, _ := rec.(*domain.Testimonial)
		if t == nil {
			t = &domain.Testimonial{}
		}
		return gomponents.Group{
			components.TextField("name", "Name", "text", t.Name, true),
			components.TextField("company", "Company", "text", t.Company, false),
			components.TextArea("text", "Testimonial", t.Text, 4, true),
			imageField("photo", "Photo", t.Photo, preview),
		}
	}
	return nil
}

// imageField keeps the stored value in the URL input and resolves only the
// preview, so an unchanged form posts the value back verbatim.
func imageField(name, label, value string, preview func(string) string) gomponents.Node {
	return components.ImageField(name, label, value, preview(value))
}
