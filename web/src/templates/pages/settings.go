package pages

import (
	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/nfrund/writerfolio/internal/view/dto/admin"
	"github.com/nfrund/writerfolio/web/src/templates/components"
	"maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

// Settings renders the site settings editor and the create-admin form.
func Settings(data admin.SettingsData, asset AssetFunc) gomponents.Node {
	s := data.Settings
	about := ""
	if s.AboutImage != "" {
		about = asset(s.AboutImage)
	}
	return Div(
		ID("section-settings"), Class("admin-section"),
		H1(gomponents.Text("Settings")),
		FormEl(
			ID("settings-form"), Class("record-form"),
			Method("post"), Action("/admin/settings"), EncType("multipart/form-data"),
			hx.Post("/admin/settings"), hx.Target("#"+components.AdminContentID),
			components.InlineError(data.Error),
			fieldset("Business",
				components.TextField("businessName", "Business Name", "text", s.BusinessName, false),
				components.TextField("contactEmail", "Contact Email", "email", s.ContactEmail, false),
				components.TextField("phone", "Phone", "tel", s.Phone, false),
				components.TextField("location", "Location", "text", s.Location, false),
				components.TextField("schedulerLink", "Scheduler Link", "url", s.SchedulerLink, false),
			),
			fieldset("Hero",
				components.TextField("ctaText", "CTA Text", "text", s.CTAText, false),
				components.TextField("ctaLink", "CTA Link", "text", s.CTALink, false),
			),
			fieldset("About",
				components.TextArea("aboutBio", "About Bio", s.AboutBio, 6, false),
				components.ImageField(domain.SettingsImageField, "About Image", s.AboutImage, about),
			),
			fieldset("Social",
				components.TextField("socialFacebook", "Facebook", "url", s.SocialFacebook, false),
				components.TextField("socialTwitter", "Twitter", "url", s.SocialTwitter, false),
				components.TextField("socialLinkedin", "LinkedIn", "url", s.SocialLinkedin, false),
				components.TextField("socialInstagram", "Instagram", "url", s.SocialInstagram, false),
			),
			components.SubmitButton("Save Settings"),
		),
		H2(gomponents.Text("Create Admin")),
		FormEl(
			ID("create-admin-form"), Class("record-form"),
			Method("post"), Action("/admin/admins"),
			hx.Post("/admin/admins"), hx.Target("#"+components.AdminContentID),
			components.InlineError(data.CreateAdmin.Error),
			components.TextField("username", "Username", "text", data.CreateAdmin.Username, true),
			components.TextField("password", "Password", "password", "", true),
			components.SubmitButton("Create Admin"),
		),
	)
}

func fieldset(legend string, fields ...gomponents.Node) gomponents.Node {
	return FieldSet(Legend(gomponents.Text(legend)), gomponents.Group(fields))
}
