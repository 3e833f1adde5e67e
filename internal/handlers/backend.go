package handlers

import (
	"context"
	"mime/multipart"

	"github.com/nfrund/writerfolio/internal/content"
	"github.com/nfrund/writerfolio/internal/domain"
)

// ContentReader is the read side of the backend API.
type ContentReader interface {
	Services(ctx context.Context) ([]domain.Service, error)
	Projects(ctx context.Context) ([]domain.Project, error)
	Testimonials(ctx context.Context) ([]domain.Testimonial, error)
	Project(ctx context.Context, id string) (*domain.Project, error)
	Record(ctx context.Context, kind domain.Kind, id string) (domain.Record, error)
	Count(ctx context.Context, kind domain.Kind) (int, error)
	Settings(ctx context.Context) (domain.Settings, error)
	// ResolveAsset turns a stored image path into a URL the browser can load.
	ResolveAsset(path string) string
}

// Authenticator exchanges credentials for a bearer token.
type Authenticator interface {
	Login(ctx context.Context, creds domain.Credentials) (string, error)
}

// ContactSender delivers the public contact form.
type ContactSender interface {
	SendContact(ctx context.Context, msg domain.ContactMessage) error
}

// ContentWriter performs admin mutations; content.Manager implements it.
type ContentWriter interface {
	Stage(ctx context.Context, fh *multipart.FileHeader) (*content.Staged, error)
	Discard(ctx context.Context, staged *content.Staged)
	Save(ctx context.Context, token string, rec domain.Record, staged *content.Staged) error
	Delete(ctx context.Context, token string, kind domain.Kind, id, label string) error
	SaveSettings(ctx context.Context, token string, s domain.Settings, staged *content.Staged) error
	CreateAdmin(ctx context.Context, token string, creds domain.Credentials) error
}

// ActivityReader lists recent admin activity.
type ActivityReader interface {
	Recent(ctx context.Context, limit int) ([]domain.ActivityEntry, error)
}
