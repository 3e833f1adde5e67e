package pages

import (
	"net/url"

	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/nfrund/writerfolio/internal/view/dto/public"
	"github.com/nfrund/writerfolio/web/src/templates/components"
	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

// PlaceholderIcon is shown for services without an icon.
const PlaceholderIcon = "https://via.placeholder.com/80"

// AssetFunc resolves an image path returned by the backend to a full URL.
type AssetFunc func(path string) string

// Home renders the public one-page site.
func Home(data public.HomeData, asset AssetFunc) gomponents.Node {
	s := data.Settings
	return gomponents.Group{
		Header(
			Class("site-header"),
			Nav(
				Class("navbar"),
				Div(Class("logo"), gomponents.Text(domain.Or(s.BusinessName, domain.DefaultBusinessName))),
				Ul(
					Class("nav-links"),
					navLink("#about", "About"),
					navLink("#services", "Services"),
					navLink("#portfolio", "Portfolio"),
					navLink("#testimonials", "Testimonials"),
					navLink("#contact", "Contact"),
				),
			),
		),
		Main(
			gomponents.If(len(data.Errors) > 0, Div(
				Class("flash-messages"),
				gomponents.Map(data.Errors, func(msg string) gomponents.Node {
					return Div(Class("alert alert-error"), gomponents.Text(msg))
				}),
			)),
			Section(
				Class("hero"), ID("home"),
				H1(gomponents.Text(domain.Or(s.BusinessName, domain.DefaultBusinessName))),
				A(
					Class("cta-button"),
					Href(domain.Or(s.CTALink, domain.DefaultCTALink)),
					gomponents.Text(domain.Or(s.CTAText, domain.DefaultCTAText)),
				),
			),
			aboutSection(s, asset),
			Section(
				ID("services"),
				H2(gomponents.Text("Services")),
				Div(ID("services-list"), Class("services-grid"), gomponents.Map(data.Services, func(svc domain.Service) gomponents.Node {
					return serviceItem(svc, asset)
				})),
			),
			Section(
				ID("portfolio"),
				H2(gomponents.Text("Portfolio")),
				Div(ID("portfolio-list"), Class("portfolio-grid"), gomponents.Map(data.Projects, func(p domain.Project) gomponents.Node {
					return portfolioItem(p, asset)
				})),
			),
			Section(
				ID("testimonials"),
				H2(gomponents.Text("Testimonials")),
				Div(ID("testimonials-list"), gomponents.Map(data.Testimonials, func(t domain.Testimonial) gomponents.Node {
					return testimonialItem(t, asset)
				})),
			),
			contactSection(s, public.ContactData{}),
		),
		footer(s),
	}
}

func navLink(href, text string) gomponents.Node {
	return Li(A(Href(href), gomponents.Text(text)))
}

func aboutSection(s domain.Settings, asset AssetFunc) gomponents.Node {
	return Section(
		ID("about"),
		H2(gomponents.Text("About Me")),
		Div(
			Class("about-content"),
			gomponents.If(s.AboutImage != "",
				Img(ID("about-image"), Src(asset(s.AboutImage)), Alt(domain.Or(s.BusinessName, domain.DefaultBusinessName))),
			),
			P(ID("about-bio"), gomponents.Text(domain.Or(s.AboutBio, domain.DefaultAboutBio))),
		),
	)
}

func serviceItem(svc domain.Service, asset AssetFunc) gomponents.Node {
	icon := PlaceholderIcon
	if svc.Icon != "" {
		icon = asset(svc.Icon)
	}
	return Div(
		Class("service-item"),
		Img(Src(icon), Alt(svc.Title)),
		H3(gomponents.Text(svc.Title)),
		P(gomponents.Text(svc.Description)),
		gomponents.If(svc.Price.Display() != "",
			P(Class("service-price"), gomponents.Text("Starting at $"+svc.Price.Display())),
		),
	)
}

func portfolioItem(p domain.Project, asset AssetFunc) gomponents.Node {
	href := "/portfolio/" + url.PathEscape(p.ID)
	return A(
		Class("portfolio-item"), Href(href),
		hx.Get(href), hx.Target("#"+components.ModalID), hx.Swap("outerHTML"),
		gomponents.If(p.Image != "", Img(Src(asset(p.Image)), Alt(p.Title), Loading("lazy"))),
		H3(gomponents.Text(p.Title)),
		P(gomponents.Text(p.Tagline)),
	)
}

func testimonialItem(t domain.Testimonial, asset AssetFunc) gomponents.Node {
	cite := t.Name
	if t.Company != "" {
		cite += ", " + t.Company
	}
	return Div(
		Class("testimonial-item"),
		gomponents.If(t.Photo != "", Img(Src(asset(t.Photo)), Alt(t.Name))),
		BlockQuote(gomponents.Text("“"+t.Text+"”")),
		gomponents.El("cite", gomponents.Text(cite)),
	)
}

func contactSection(s domain.Settings, data public.ContactData) gomponents.Node {
	return Section(
		ID("contact"),
		H2(gomponents.Text("Contact")),
		Div(
			Class("contact-info"),
			gomponents.If(s.ContactEmail != "", P(ID("contact-email"), gomponents.Text("Email: "+s.ContactEmail))),
			gomponents.If(s.Phone != "", P(gomponents.Text("Phone: "+s.Phone))),
			gomponents.If(s.Location != "", P(gomponents.Text("Location: "+s.Location))),
			A(ID("contact-scheduler"), Class("btn btn-secondary"), Href(domain.Or(s.SchedulerLink, "#")), gomponents.Text("Schedule a call")),
		),
		ContactForm(data),
	)
}

// ContactForm renders the contact form together with its status line. htmx
// replaces the whole form after a submission.
func ContactForm(data public.ContactData) gomponents.Node {
	m := data.Message
	return FormEl(
		ID("contact-form"),
		Method("post"), Action("/contact"),
		hx.Post("/contact"), hx.Swap("outerHTML"),
		gomponents.If(data.Success != "", P(Class("alert alert-success"), Role("status"), gomponents.Text(data.Success))),
		components.InlineError(data.Error),
		components.TextField("name", "Name", "text", m.Name, true),
		components.TextField("email", "Email", "email", m.Email, true),
		components.TextField("subject", "Subject", "text", m.Subject, false),
		components.TextArea("message", "Message", m.Message, 5, true),
		components.SubmitButton("Send Message"),
	)
}

func footer(s domain.Settings) gomponents.Node {
	return Footer(
		Class("site-footer"),
		Div(
			Class("social-links"),
			socialLink("social-facebook", "Facebook", s.SocialFacebook),
			socialLink("social-twitter", "Twitter", s.SocialTwitter),
			socialLink("social-linkedin", "LinkedIn", s.SocialLinkedin),
			socialLink("social-instagram", "Instagram", s.SocialInstagram),
		),
		P(gomponents.Text("© "+domain.Or(s.BusinessName, domain.DefaultBusinessName))),
	)
}

func socialLink(id, label, href string) gomponents.Node {
	return A(ID(id), Href(domain.Or(href, "#")), Target("_blank"), Rel("noopener"), gomponents.Text(label))
}
