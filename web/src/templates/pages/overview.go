package pages

import (
	"strconv"
	"time"

	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/nfrund/writerfolio/internal/session"
	"github.com/nfrund/writerfolio/internal/view/dto/admin"
	"github.com/nfrund/writerfolio/web/src/templates/components"
	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

// Overview renders collection counts and the recent activity feed.
func Overview(data admin.OverviewData) gomponents.Node {
	return Div(
		ID("section-overview"), Class("admin-section"),
		H1(gomponents.Text("Overview")),
		Div(
			Class("stats-grid"),
			gomponents.Map(data.Counts, statCard),
		),
		H2(gomponents.Text("Recent activity")),
		gomponents.If(len(data.Recent) == 0, P(Class("muted"), gomponents.Text("No recent activity."))),
		gomponents.If(len(data.Recent) > 0, Ul(
			Class("activity-list"),
			gomponents.Map(data.Recent, func(e domain.ActivityEntry) gomponents.Node {
				return Li(
					gomponents.El("time", gomponents.Attr("datetime", e.At.Format(time.RFC3339)), gomponents.Text(e.At.Format("Jan 2, 15:04"))),
					gomponents.Text(" "+e.Summary()),
				)
			}),
		)),
	)
}

func statCard(c admin.Count) gomponents.Node {
	sec := session.SectionFor(c.Kind)
	href := "/admin/" + string(sec)
	total := strconv.Itoa(c.Total)
	if c.Err != "" {
		total = "–"
	}
	return A(
		Class("stat-card"), Href(href),
		hx.Get(href), hx.Target("#"+components.AdminContentID), hx.PushURL("true"),
		H3(gomponents.Text(sec.Label())),
		P(Class("stat-value"), gomponents.Text(total)),
		gomponents.If(c.Err != "", Small(Class("form-error"), gomponents.Text(c.Err))),
	)
}
