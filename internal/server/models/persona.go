package models

import "time"

// Persona is a named descriptive voice used to steer creative-prompt
// generation. Same deactivate-don't-delete rule as GratitudePrompt.
type Persona struct {
	ID           string
	Name         string
	Description  string
	Active       bool
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
