package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/writerfolio/internal/domain"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a CustomValidator sharing the domain validator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: domain.Validator()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// ServiceForm is the add/edit service form.
type ServiceForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Price       string `form:"price"`
	Icon        string `form:"icon"`
}

// ProjectForm is the add/edit portfolio item form.
type ProjectForm struct {
	Title       string `form:"title"`
	Client      string `form:"client"`
	Tagline     string `form:"tagline"`
	Description string `form:"description"`
	Image       string `form:"image"`
}

// TestimonialForm is the add/edit testimonial form.
type TestimonialForm struct {
	Name    string `form:"name"`
	Company string `form:"company"`
	Text    string `form:"text"`
	Photo   string `form:"photo"`
}

// SettingsForm is the settings editor.
type SettingsForm struct {
	BusinessName    string `form:"businessName"`
	ContactEmail    string `form:"contactEmail"`
	Phone           string `form:"phone"`
	Location        string `form:"location"`
	SchedulerLink   string `form:"schedulerLink"`
	CTAText         string `form:"ctaText"`
	CTALink         string `form:"ctaLink"`
	AboutBio        string `form:"aboutBio"`
	AboutImage      string `form:"aboutImage"`
	SocialFacebook  string `form:"socialFacebook"`
	SocialTwitter   string `form:"socialTwitter"`
	SocialLinkedin  string `form:"socialLinkedin"`
	SocialInstagram string `form:"socialInstagram"`
}

// Settings converts the form into the domain record.
func (f SettingsForm) Settings() domain.Settings {
	return domain.Settings{
		BusinessName:    strings.TrimSpace(f.BusinessName),
		ContactEmail:    strings.TrimSpace(f.ContactEmail),
		Phone:           strings.TrimSpace(f.Phone),
		Location:        strings.TrimSpace(f.Location),
		SchedulerLink:   strings.TrimSpace(f.SchedulerLink),
		CTAText:         strings.TrimSpace(f.CTAText),
		CTALink:         strings.TrimSpace(f.CTALink),
		AboutBio:        f.AboutBio,
		AboutImage:      strings.TrimSpace(f.AboutImage),
		SocialFacebook:  strings.TrimSpace(f.SocialFacebook),
		SocialTwitter:   strings.TrimSpace(f.SocialTwitter),
		SocialLinkedin:  strings.TrimSpace(f.SocialLinkedin),
		SocialInstagram: strings.TrimSpace(f.SocialInstagram),
	}
}

// bindRecord reads the add/edit form for kind into a record carrying id.
func bindRecord(c echo.Context, kind domain.Kind, id string) (domain.Record, error) {
	switch kind {
	case domain.KindService:
		var f ServiceForm
		if err := c.Bind(&f); err != nil {
			return nil, err
		}
		return &domain.Service{
			ID:          id,
			Title:       strings.TrimSpace(f.Title),
			Description: strings.TrimSpace(f.Description),
			Price:       domain.Price(strings.TrimSpace(f.Price)),
			Icon:        strings.TrimSpace(f.Icon),
		}, nil
	case domain.KindProject:
		var f ProjectForm
		if err := c.Bind(&f); err != nil {
			return nil, err
		}
		return &domain.Project{
			ID:          id,
			Title:       strings.TrimSpace(f.Title),
			Client:      strings.TrimSpace(f.Client),
			Tagline:     strings.TrimSpace(f.Tagline),
			Description: f.Description,
			Image:       strings.TrimSpace(f.Image),
		}, nil
	case domain.KindTestimonial:
		var f TestimonialForm
		if err := c.Bind(&f); err != nil {
			return nil, err
		}
		return &domain.Testimonial{
			ID:      id,
			Name:    strings.TrimSpace(f.Name),
			Company: strings.TrimSpace(f.Company),
			Text:    strings.TrimSpace(f.Text),
			Photo:   strings.TrimSpace(f.Photo),
		}, nil
	}
	return nil, domain.ErrUnknownKind
}

// formFile returns the uploaded file for field, or nil when none was chosen.
func formFile(c echo.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	return fh, err
}
