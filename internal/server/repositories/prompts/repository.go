package prompts

import (
	"context"

	"github.com/avolkova/inkwell/internal/server/models"
)

type Repository interface {
	// CountActive returns the number of active gratitude prompts.
	CountActive(ctx context.Context) (int64, error)

	// GetActiveByOffset returns the active prompt at the given ordinal
	// position under a stable (created_at, id) ordering.
	GetActiveByOffset(ctx context.Context, offset int64) (*models.GratitudePrompt, error)

	// SetActive flips the active flag; common.ErrNotFound when no such prompt.
	SetActive(ctx context.Context, id string, active bool) error
}
