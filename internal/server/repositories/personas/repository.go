package personas

import (
	"context"

	"github.com/avolkova/inkwell/internal/server/models"
)

type Repository interface {
	// ListActive returns all active personas ordered by display order, ties
	// broken by creation time (oldest first).
	ListActive(ctx context.Context) ([]*models.Persona, error)

	// SetActive flips the active flag; common.ErrNotFound when no such persona.
	SetActive(ctx context.Context, id string, active bool) error
}
