package session

import (
	"github.com/nfrund/writerfolio/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Section is one of the mutually exclusive dashboard panels.
type Section string

const (
	SectionOverview     Section = "overview"
	SectionServices     Section = "services"
	SectionPortfolio    Section = "portfolio"
	SectionTestimonials Section = "testimonials"
	SectionSettings     Section = "settings"
)

// Sections in sidebar order.
var Sections = []Section{SectionOverview, SectionServices, SectionPortfolio, SectionTestimonials, SectionSettings}

var titleCaser = cases.Title(language.English)

// ParseSection validates a section name from the URL.
func ParseSection(s string) (Section, bool) {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, true
		}
	}
	return "", false
}

// Label is the sidebar caption, e.g. "Testimonials".
func (s Section) Label() string { return titleCaser.String(string(s)) }

// Kind returns the record kind listed by the section, if any.
func (s Section) Kind() (domain.Kind, bool) {
	switch s {
	case SectionServices:
		return domain.KindService, true
	case SectionPortfolio:
		return domain.KindProject, true
	case SectionTestimonials:
		return domain.KindTestimonial, true
	}
	return "", false
}

// SectionFor is the dashboard section that lists kind.
func SectionFor(k domain.Kind) Section { return Section(k.Section()) }
