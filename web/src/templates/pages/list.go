package pages

import (
	"strings"

	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/nfrund/writerfolio/internal/session"
	"github.com/nfrund/writerfolio/internal/view/dto/admin"
	"github.com/nfrund/writerfolio/web/src/templates/components"
	xhtml "golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

// ExcerptLength is how much of a description an admin card shows.
const ExcerptLength = 100

// ListSection renders a collection section: an add button and one card per record.
func ListSection(data admin.ListData) gomponents.Node {
	sec := session.SectionFor(data.Kind)
	newURL := "/admin/" + string(sec) + "/new"
	return Div(
		ID("section-"+string(sec)), Class("admin-section"),
		Div(
			Class("section-header"),
			H1(gomponents.Text(sec.Label())),
			A(
				Class("btn btn-primary"), Href(newURL),
				hx.Get(newURL), hx.Target("#"+components.ModalID), hx.Swap("outerHTML"),
				gomponents.Text("Add "+titleWord(data.Kind.Singular())),
			),
		),
		gomponents.If(data.Error != "", components.InlineError(data.Error)),
		gomponents.If(data.Retry, A(
			Class("btn btn-secondary"), Href("/admin/"+string(sec)),
			hx.Get("/admin/"+string(sec)), hx.Target("#"+components.AdminContentID),
			gomponents.Text("Try again"),
		)),
		gomponents.If(data.Error == "" && len(data.Cards) == 0,
			P(Class("muted"), gomponents.Text("Nothing here yet.")),
		),
		Div(
			ID(string(sec)+"-list"), Class("item-list"),
			gomponents.Map(data.Cards, func(c admin.Card) gomponents.Node {
				return components.ItemCard(data.Kind, c)
			}),
		),
	)
}

// Cards converts records to the card view model.
func Cards[T any, R interface {
	*T
	domain.Record
}](records []T, asset AssetFunc) []admin.Card {
	cards := make([]admin.Card, 0, len(records))
	for i := range records {
		r := R(&records[i])
		c := admin.Card{ID: r.RecordID(), Title: r.Label()}
		if img := r.ImageURL(); img != "" {
			c.ImageURL = asset(img)
		}
		switch v := any(r).(type) {
		case *domain.Service:
			c.Excerpt = domain.Excerpt(v.Description, ExcerptLength)
			if p := v.Price.Display(); p != "" {
				c.Subtitle = "$" + p
			}
		case *domain.Project:
			c.Subtitle = v.Tagline
			c.Excerpt = domain.Excerpt(stripTags(v.Description), ExcerptLength)
		case *domain.Testimonial:
			c.Subtitle = v.Company
			c.Excerpt = domain.Excerpt(v.Text, ExcerptLength)
		}
		cards = append(cards, c)
	}
	return cards
}

var titleCaser = cases.Title(language.English)

func titleWord(s string) string { return titleCaser.String(s) }

// stripTags reduces rich HTML to its text, with entities decoded, so
// descriptions excerpt as plain text.
func stripTags(s string) string {
	var b strings.Builder
	z := xhtml.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			return strings.TrimSpace(b.String())
		case xhtml.TextToken:
			b.WriteString(z.Token().Data)
		}
	}
}
