package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind names a backend collection of admin-managed records.
type Kind string

const (
	KindService     Kind = "services"
	KindProject     Kind = "projects"
	KindTestimonial Kind = "testimonials"
)

// Kinds lists the collections in the order the dashboard shows them.
var Kinds = []Kind{KindService, KindProject, KindTestimonial}

// ParseKind accepts a collection name or its dashboard section name
// ("portfolio" for projects).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "services", "service":
		return KindService, nil
	case "projects", "project", "portfolio":
		return KindProject, nil
	case "testimonials", "testimonial":
		return KindTestimonial, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Path is the backend collection path, e.g. "/services".
func (k Kind) Path() string { return "/" + string(k) }

// Section is the dashboard section that lists this kind.
func (k Kind) Section() string {
	if k == KindProject {
		return "portfolio"
	}
	return string(k)
}

// Singular is the human label used in buttons and messages.
func (k Kind) Singular() string {
	switch k {
	case KindService:
		return "service"
	case KindProject:
		return "portfolio item"
	case KindTestimonial:
		return "testimonial"
	}
	return string(k)
}

// ImageField is the JSON field that carries the record's image URL.
func (k Kind) ImageField() string {
	switch k {
	case KindService:
		return "icon"
	case KindTestimonial:
		return "photo"
	default:
		return "image"
	}
}

// Record is the behavior shared by services, projects and testimonials.
type Record interface {
	Kind() Kind
	RecordID() string
	Label() string
	ImageURL() string
	SetImageURL(url string)
	// Payload returns the JSON body sent to the backend, without the id.
	Payload() any
	Validate() error
}

// Price is a numeric amount the backend may send either as a JSON string or a
// JSON number. It is always sent back as a string.
type Price string

func (p *Price) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Price(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	*p = Price(n.String())
	return nil
}

// Display formats the price for the public site, dropping a trailing ".00".
func (p Price) Display() string {
	s := strings.TrimSpace(string(p))
	if s == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}

// Service is an offering listed on the public site.
type Service struct {
	ID          string `json:"_id,omitempty"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Icon        string `json:"icon"`
	Price       Price  `json:"price" validate:"omitempty,numeric"`
}

func (s *Service) UnmarshalJSON(b []byte) error {
	type alias Service
	aux := struct {
		*alias
		PlainID string `json:"id"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if s.ID == "" {
		s.ID = aux.PlainID
	}
	return nil
}

func (s *Service) Kind() Kind { return KindService }
func (s *Service) RecordID() string { return s.ID }
func (s *Service) Label() string { return s.Title }
func (s *Service) ImageURL() string { return s.Icon }
func (s *Service) SetImageURL(u string) { s.Icon = u }
func (s *Service) Validate() error { return validatorInstance.Struct(s) }
func (s *Service) Payload() any {
	c := *s
	c.ID = ""
	return c
}

// Project is a portfolio item. Description holds rich text (HTML or Markdown).
type Project struct {
	ID          string `json:"_id,omitempty"`
	Title       string `json:"title" validate:"required,max=200"`
	Client      string `json:"client"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func (p *Project) UnmarshalJSON(b []byte) error {
	type alias Project
	aux := struct {
		*alias
		PlainID string `json:"id"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = aux.PlainID
	}
	return nil
}

func (p *Project) Kind() Kind { return KindProject }
func (p *Project) RecordID() string { return p.ID }
func (p *Project) Label() string { return p.Title }
func (p *Project) ImageURL() string { return p.Image }
func (p *Project) SetImageURL(u string) { p.Image = u }
func (p *Project) Validate() error { return validatorInstance.Struct(p) }
func (p *Project) Payload() any {
	c := *p
	c.ID = ""
	return c
}

// Testimonial is a client quote.
type Testimonial struct {
	ID      string `json:"_id,omitempty"`
	Name    string `json:"name" validate:"required,max=200"`
	Company string `json:"company"`
	Text    string `json:"text" validate:"required"`
	Photo   string `json:"photo"`
}

func (t *Testimonial) UnmarshalJSON(b []byte) error {
	type alias Testimonial
	aux := struct {
		*alias
		PlainID string `json:"id"`
	}{alias: (*alias)(t)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = aux.PlainID
	}
	return nil
}

func (t *Testimonial) Kind() Kind { return KindTestimonial }
func (t *Testimonial) RecordID() string { return t.ID }
func (t *Testimonial) Label() string { return t.Name }
func (t *Testimonial) ImageURL() string { return t.Photo }
func (t *Testimonial) SetImageURL(u string) { t.Photo = u }
func (t *Testimonial) Validate() error { return validatorInstance.Struct(t) }
func (t *Testimonial) Payload() any {
	c := *t
	c.ID = ""
	return c
}

// Excerpt shortens s to at most n runes, appending "..." when it was cut.
func Excerpt(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}
