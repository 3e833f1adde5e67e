package domain

import "time"

// Action is what an admin did to a record.
type Action string

const (
	ActionCreated      Action = "created"
	ActionUpdated      Action = "updated"
	ActionDeleted      Action = "deleted"
	ActionUploaded     Action = "uploaded"
	ActionSettings     Action = "saved settings"
	ActionAdminCreated Action = "created admin"
	ActionLogin        Action = "logged in"
	ActionLogout       Action = "logged out"
)

// ActivityEntry is one line of the dashboard activity feed.
type ActivityEntry struct {
	At       time.Time `json:"at"`
	Action   Action    `json:"action"`
	Kind     Kind      `json:"kind,omitempty"`
	RecordID string    `json:"record_id,omitempty"`
	Label    string    `json:"label,omitempty"`
}

// Summary renders the entry as a sentence for the overview list.
func (e ActivityEntry) Summary() string {
	subject := e.Label
	if e.Kind != "" {
		if subject == "" {
			subject = e.Kind.Singular()
		} else {
			subject = e.Kind.Singular() + " “" + subject + "”"
		}
	}
	if subject == "" {
		return "Admin " + string(e.Action)
	}
	return "Admin " + string(e.Action) + " " + subject
}
