package entries

import (
	"context"

	"github.com/avolkova/inkwell/internal/server/models"
)

type Repository interface {
	// Create persists a new entry and returns it with generated fields set.
	Create(ctx context.Context, entry *models.Entry) (*models.Entry, error)

	// ListByOwner returns the owner's entries ordered by creation time
	// descending, with any linked prompt text resolved.
	ListByOwner(ctx context.Context, userID string, limit, offset int) ([]*models.Entry, error)

	// CountByOwner returns the owner's total entry count.
	CountByOwner(ctx context.Context, userID string) (int64, error)

	// GetByID returns the entry only when it belongs to userID; any other
	// outcome is common.ErrNotFound.
	GetByID(ctx context.Context, userID, id string) (*models.Entry, error)
}
