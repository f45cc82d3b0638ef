package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/avolkova/inkwell/internal/common"
)

// EntryType is one of the three fixed journal entry kinds. Stored values are
// always the canonical lowercase form.
type EntryType string

const (
	TypeAnger     EntryType = "anger"
	TypeGratitude EntryType = "gratitude"
	TypeCreative  EntryType = "creative"
)

// ParseEntryType maps case-insensitive user input onto a canonical EntryType.
func ParseEntryType(s string) (EntryType, error) {
	switch EntryType(strings.ToLower(strings.TrimSpace(s))) {
	case TypeAnger:
		return TypeAnger, nil
	case TypeGratitude:
		return TypeGratitude, nil
	case TypeCreative:
		return TypeCreative, nil
	default:
		return "", fmt.Errorf("%w: unknown entry type %q", common.ErrValidation, s)
	}
}

// Tag returns the fixed title prefix for the type. Types reaching this method
// are validated enum values; anything else is a programming error.
func (t EntryType) Tag() string {
	switch t {
	case TypeAnger:
		return "🔥"
	case TypeGratitude:
		return "🙏"
	case TypeCreative:
		return "✨"
	default:
		panic(fmt.Sprintf("models: no title tag for entry type %q", string(t)))
	}
}

// Entry is a persisted journal entry. Entries are immutable after creation
// and owned by the single user for their lifetime. The prompt-text fields are
// read-only projections filled in by list/get queries.
type Entry struct {
	ID           string
	UserID       string
	Type         EntryType
	Title        string
	BodyMarkdown string

	// Exactly one of these is relevant, depending on Type. All may be nil.
	AngerReason       *string
	GratitudePromptID *string
	CreativePromptID  *string

	GratitudePromptText *string
	CreativePromptText  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
