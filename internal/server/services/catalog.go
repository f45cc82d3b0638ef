package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/avolkova/inkwell/internal/common"
	"github.com/avolkova/inkwell/internal/server/models"
	"github.com/avolkova/inkwell/internal/server/repositories/repomanager"
)

// randIndex draws a uniform offset in [0, n). Package-level var so tests can
// pin the draw.
var randIndex = func(n int64) int64 {
	return rand.Int64N(n)
}

// CatalogService exposes the seeded prompt and persona collections.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager) *CatalogService {
	return &CatalogService{db: db, repomanager: m}
}

// RandomGratitudePrompt picks uniformly among active prompts by drawing an
// offset into the stable (created_at, id) ordering.
func (s *CatalogService) RandomGratitudePrompt(ctx context.Context) (*models.GratitudePrompt, error) {
	repo := s.repomanager.GratitudePrompts(s.db)

	count, err := repo.CountActive(ctx)
	if err != nil {
		return nil, common.ErrInternal
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: no prompts available", common.ErrNotFound)
	}

	prompt, err := repo.GetActiveByOffset(ctx, randIndex(count))
	if err != nil {
		return nil, common.ErrInternal
	}
	return prompt, nil
}

// ListActivePersonas returns active personas in display order.
func (s *CatalogService) ListActivePersonas(ctx context.Context) ([]*models.Persona, error) {
	result, err := s.repomanager.Personas(s.db).ListActive(ctx)
	if err != nil {
		return nil, common.ErrInternal
	}
	return result, nil
}

// SetGratitudePromptActive flips a prompt's active flag. Entries that already
// reference the prompt keep their reference.
func (s *CatalogService) SetGratitudePromptActive(ctx context.Context, id string, active bool) error {
	if err := s.repomanager.GratitudePrompts(s.db).SetActive(ctx, id, active); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("%w: no such prompt", common.ErrNotFound)
		}
		return common.ErrInternal
	}
	return nil
}

// SetPersonaActive flips a persona's active flag; historical snapshots in
// generated prompts are unaffected.
func (s *CatalogService) SetPersonaActive(ctx context.Context, id string, active bool) error {
	if err := s.repomanager.Personas(s.db).SetActive(ctx, id, active); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("%w: no such persona", common.ErrNotFound)
		}
		return common.ErrInternal
	}
	return nil
}
