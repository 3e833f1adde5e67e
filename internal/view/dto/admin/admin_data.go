package admin

import (
	"github.com/nfrund/writerfolio/internal/domain"
	"github.com/nfrund/writerfolio/internal/view/dto/auth"
)

// Count is one tile on the overview.
type Count struct {
	Kind  domain.Kind
	Total int
	// Err is set when the collection could not be counted.
	Err string
}

// OverviewData backs the overview section.
type OverviewData struct {
	Counts []Count
	Recent []domain.ActivityEntry
}

// Card is one record in a section list.
type Card struct {
	ID       string
	Title    string
	Subtitle string
	Excerpt  string
	ImageURL string
}

// ListData backs the services, portfolio and testimonials sections.
type ListData struct {
	Kind  domain.Kind
	Cards []Card
	// Error replaces the list when the fetch failed.
	Error string
	// Retry offers to load the section again after a transient failure.
	Retry bool
}

// FormData backs the add/edit modal for one record.
type FormData struct {
	Kind domain.Kind
	// Record holds the values to prefill; its id decides create or update.
	Record domain.Record
	Error  string
}

// IsEdit reports whether the form updates an existing record.
func (f FormData) IsEdit() bool { return f.Record != nil && f.Record.RecordID() != "" }

// SettingsData backs the settings section.
type SettingsData struct {
	Settings    domain.Settings
	Error       string
	CreateAdmin auth.CreateAdminData
}
