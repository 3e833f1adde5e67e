package public

import "github.com/nfrund/writerfolio/internal/domain"

// HomeData backs the public home page. Failed collections are left empty and
// reported in Errors so the rest of the page still renders.
type HomeData struct {
	Settings     domain.Settings
	Services     []domain.Service
	Projects     []domain.Project
	Testimonials []domain.Testimonial
	Errors       []string
}

// ContactData backs the contact form status line.
type ContactData struct {
	Message domain.ContactMessage
	Success string
	Error   string
}
