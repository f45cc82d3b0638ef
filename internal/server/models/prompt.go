package models

import "time"

// GratitudePrompt is a seeded fixed-text prompt for gratitude entries.
// Prompts are never deleted, only deactivated, so historical entry
// references stay intact.
type GratitudePrompt struct {
	ID        string
	Text      string
	Active    bool
	CreatedAt time.Time
}
