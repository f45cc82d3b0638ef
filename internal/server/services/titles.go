package services

import (
	"context"
	"fmt"

	"github.com/avolkova/inkwell/internal/dbx"
	"github.com/avolkova/inkwell/internal/server/models"
	"github.com/avolkova/inkwell/internal/server/repositories/repomanager"
)

// TitleService produces the human-facing sequence title per category. The
// counter bump is a single atomic statement in the repository, so concurrent
// creations in one category never share a value.
type TitleService struct {
	repomanager repomanager.RepositoryManager
}

// NewTitleService constructs a TitleService.
func NewTitleService(m repomanager.RepositoryManager) *TitleService {
	return &TitleService{repomanager: m}
}

// NextTitle increments the category counter on the given handle (pass the
// surrounding transaction so a failed entry insert rolls the bump back) and
// formats the display title.
func (s *TitleService) NextTitle(ctx context.Context, db dbx.DBTX, entryType models.EntryType) (string, error) {
	counter, err := s.repomanager.Counters(db).Increment(ctx, string(entryType))
	if err != nil {
		return "", fmt.Errorf("error incrementing counter: %w", err)
	}
	return FormatTitle(entryType, counter), nil
}

// FormatTitle renders "<tag> NNN" with the numeric suffix zero-padded to
// three digits. Padding widens, never truncates: counter 1000 renders as
// "<tag> 1000".
func FormatTitle(entryType models.EntryType, counter int64) string {
	return fmt.Sprintf("%s %03d", entryType.Tag(), counter)
}
