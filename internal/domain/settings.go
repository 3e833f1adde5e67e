package domain

// Settings is the singleton site configuration record.
type Settings struct {
	BusinessName    string `json:"businessName"`
	ContactEmail    string `json:"contactEmail" validate:"omitempty,email"`
	Phone           string `json:"phone"`
	Location        string `json:"location"`
	SchedulerLink   string `json:"schedulerLink"`
	CTAText         string `json:"ctaText"`
	CTALink         string `json:"ctaLink"`
	AboutBio        string `json:"aboutBio"`
	AboutImage      string `json:"aboutImage"`
	SocialFacebook  string `json:"socialFacebook"`
	SocialTwitter   string `json:"socialTwitter"`
	SocialLinkedin  string `json:"socialLinkedin"`
	SocialInstagram string `json:"socialInstagram"`
}

// SettingsImageField is the settings field that carries the about image URL.
const SettingsImageField = "aboutImage"

// Validate checks the shape of the user-entered settings.
func (s *Settings) Validate() error {
	return validatorInstance.Struct(s)
}

// Public-site fallbacks used when a setting is empty.
const (
	DefaultBusinessName = "WriterName"
	DefaultCTAText      = "View My Work"
	DefaultCTALink      = "#portfolio"
	DefaultAboutBio     = "Bio will be loaded dynamically."
)

// Or returns s when it is non-empty and fallback otherwise.
func Or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
