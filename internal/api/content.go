package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/nfrund/writerfolio/internal/domain"
)

// List fetches a whole collection. There is no paging or filtering; the
// backend returns every record.
func List[T any](ctx context.Context, c *Client, kind domain.Kind) ([]T, error) {
	var out []T
	if err := c.do(ctx, request{method: http.MethodGet, path: kind.Path()}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Get fetches one record by id.
func Get[T any](ctx context.Context, c *Client, kind domain.Kind, id string) (*T, error) {
	var out T
	if err := c.do(ctx, request{method: http.MethodGet, path: recordPath(kind, id)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func recordPath(kind domain.Kind, id string) string {
	return kind.Path() + "/" + url.PathEscape(id)
}

// Services lists every service.
func (c *Client) Services(ctx context.Context) ([]domain.Service, error) {
	return List[domain.Service](ctx, c, domain.KindService)
}

// Projects lists every portfolio project.
func (c *Client) Projects(ctx context.Context) ([]domain.Project, error) {
	return List[domain.Project](ctx, c, domain.KindProject)
}

// Testimonials lists every testimonial.
func (c *Client) Testimonials(ctx context.Context) ([]domain.Testimonial, error) {
	return List[domain.Testimonial](ctx, c, domain.KindTestimonial)
}

// Project fetches one portfolio project.
func (c *Client) Project(ctx context.Context, id string) (*domain.Project, error) {
	return Get[domain.Project](ctx, c, domain.KindProject, id)
}

// Record fetches one record of any kind as its domain type.
func (c *Client) Record(ctx context.Context, kind domain.Kind, id string) (domain.Record, error) {
	switch kind {
	case domain.KindService:
		return Get[domain.Service](ctx, c, kind, id)
	case domain.KindProject:
		return Get[domain.Project](ctx, c, kind, id)
	case domain.KindTestimonial:
		return Get[domain.Testimonial](ctx, c, kind, id)
	}
	return nil, domain.ErrUnknownKind
}

// Count returns the size of a collection.
func (c *Client) Count(ctx context.Context, kind domain.Kind) (int, error) {
	items, err := List[map[string]any](ctx, c, kind)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// Create POSTs a new record as JSON.
func (c *Client) Create(ctx context.Context, token string, kind domain.Kind, payload any) error {
	r, err := jsonRequest(http.MethodPost, kind.Path(), token, payload)
	if err != nil {
		return err
	}
	return c.do(ctx, r, nil)
}

// Update PUTs a record as JSON.
func (c *Client) Update(ctx context.Context, token string, kind domain.Kind, id string, payload any) error {
	r, err := jsonRequest(http.MethodPut, recordPath(kind, id), token, payload)
	if err != nil {
		return err
	}
	return c.do(ctx, r, nil)
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, token string, kind domain.Kind, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: recordPath(kind, id), token: token}, nil)
}

// CreateMultipart POSTs a new record as multipart form data with the image
// file embedded under the kind's image field.
func (c *Client) CreateMultipart(ctx context.Context, token string, kind domain.Kind, payload any, file *File) error {
	return c.submitMultipart(ctx, http.MethodPost, kind.Path(), token, payload, file)
}

// UpdateMultipart PUTs a record as multipart form data.
func (c *Client) UpdateMultipart(ctx context.Context, token string, kind domain.Kind, id string, payload any, file *File) error {
	return c.submitMultipart(ctx, http.MethodPut, recordPath(kind, id), token, payload, file)
}
