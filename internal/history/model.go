// Package history loads the local dataset of historical events the explorer
// answers questions about. The dataset is read once at startup and never
// modified afterwards.
package history

import "strings"

// Placeholders shown when a record omits an optional field.
const (
	DefaultEvent       = "Unknown Event"
	DefaultYear        = "Unknown Year"
	DefaultDescription = "No Description Available"
)

// Record is a single historical event entry.
//
// Raw fields hold exactly what the dataset contained; an absent field is the
// empty value. Use the accessor methods for display text with defaults applied.
type Record struct {
	// Event is the short title of the event, e.g. "Moon Landing"
	Event string `json:"event"`

	// Year is display-only; numeric years keep their JSON literal text
	Year string `json:"year"`

	// Description is free text, possibly empty
	Description string `json:"description,omitempty"`

	// KeyFigures lists the people involved, in dataset order
	KeyFigures []string `json:"key_figures,omitempty"`
}

// Title returns the event name or DefaultEvent.
func (r Record) Title() string {
	if r.Event == "" {
		return DefaultEvent
	}
	return r.Event
}

// When returns the year or DefaultYear.
func (r Record) When() string {
	if r.Year == "" {
		return DefaultYear
	}
	return r.Year
}

// Summary returns the description or DefaultDescription.
func (r Record) Summary() string {
	if r.Description == "" {
		return DefaultDescription
	}
	return r.Description
}

// Figures returns the key figures joined with ", ". No figures yields "".
func (r Record) Figures() string {
	return strings.Join(r.KeyFigures, ", ")
}
