package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/avolkova/inkwell/internal/common"
	"github.com/avolkova/inkwell/internal/dbx"
	"github.com/avolkova/inkwell/internal/server/models"
	"github.com/avolkova/inkwell/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// CreateEntryInput is the caller-supplied shape of a new entry. Aux fields
// are suggestions only; Create keeps the one matching the entry type and
// drops the rest.
type CreateEntryInput struct {
	EntryType         string
	BodyMarkdown      string
	AngerReason       string
	GratitudePromptID string
	CreativePromptID  string
}

// ListResult bundles one page of entries with pagination facts.
type ListResult struct {
	Entries  []*models.Entry
	Page     int
	PageSize int
	Total    int64
}

// EntryService creates and lists journal entries, scoped to the single
// authenticated owner.
type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	titles      *TitleService
}

// NewEntryService constructs an EntryService.
func NewEntryService(db *sql.DB, m repomanager.RepositoryManager, titles *TitleService) *EntryService {
	return &EntryService{db: db, repomanager: m, titles: titles}
}

// Create validates and persists a new entry. The title bump and the insert
// share one transaction so a failed insert never burns a counter value.
func (s *EntryService) Create(ctx context.Context, userID string, in CreateEntryInput) (*models.Entry, error) {
	entryType, err := models.ParseEntryType(in.EntryType)
	if err != nil {
		return nil, err
	}

	entry := &models.Entry{
		UserID:       userID,
		Type:         entryType,
		BodyMarkdown: in.BodyMarkdown,
	}

	// Server-side authoritative stripping: only the aux field matching the
	// category survives, whatever the caller sent.
	switch entryType {
	case models.TypeAnger:
		if reason := strings.TrimSpace(in.AngerReason); reason != "" {
			entry.AngerReason = &reason
		}
	case models.TypeGratitude:
		id, err := normalizeID(in.GratitudePromptID)
		if err != nil {
			return nil, err
		}
		entry.GratitudePromptID = id
	case models.TypeCreative:
		id, err := normalizeID(in.CreativePromptID)
		if err != nil {
			return nil, err
		}
		entry.CreativePromptID = id
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		title, err := s.titles.NextTitle(ctx, tx, entryType)
		if err != nil {
			return err
		}
		entry.Title = title

		_, err = s.repomanager.Entries(tx).Create(ctx, entry)
		return err
	})
	if err != nil {
		return nil, common.ErrInternal
	}

	// Re-read through the joined select so the response carries any linked
	// prompt's display text.
	stored, err := s.repomanager.Entries(s.db).GetByID(ctx, userID, entry.ID)
	if err != nil {
		return nil, common.ErrInternal
	}

	return stored, nil
}

// List returns one page of the owner's entries, newest first, with the total
// count. Zero entries is an empty page, not an error.
func (s *EntryService) List(ctx context.Context, userID string, page, pageSize int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	repo := s.repomanager.Entries(s.db)

	total, err := repo.CountByOwner(ctx, userID)
	if err != nil {
		return nil, common.ErrInternal
	}

	result, err := repo.ListByOwner(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &ListResult{Entries: result, Page: page, PageSize: pageSize, Total: total}, nil
}

// GetByID returns the entry only when it belongs to userID. A malformed id
// or someone else's entry both read as not-found; existence is never
// confirmed across owners.
func (s *EntryService) GetByID(ctx context.Context, userID, id string) (*models.Entry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: no such entry", common.ErrNotFound)
	}

	entry, err := s.repomanager.Entries(s.db).GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("%w: no such entry", common.ErrNotFound)
		}
		return nil, common.ErrInternal
	}

	return entry, nil
}

// normalizeID validates an optional uuid reference supplied by the client.
func normalizeID(raw string) (*string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if _, err := uuid.Parse(raw); err != nil {
		return nil, fmt.Errorf("%w: invalid prompt reference", common.ErrValidation)
	}
	return &raw, nil
}
