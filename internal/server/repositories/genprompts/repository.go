package genprompts

import (
	"context"

	"github.com/avolkova/inkwell/internal/server/models"
)

type Repository interface {
	// Create persists one generation result, fallback or not, and returns it
	// with generated fields set.
	Create(ctx context.Context, prompt *models.GeneratedPrompt) (*models.GeneratedPrompt, error)
}
