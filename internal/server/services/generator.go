package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/avolkova/inkwell/internal/common"
	"github.com/avolkova/inkwell/internal/logging"
	"github.com/avolkova/inkwell/internal/server/config"
	"github.com/avolkova/inkwell/internal/server/models"
	"github.com/avolkova/inkwell/internal/server/repositories/repomanager"
)

const (
	instructionFraming = "You are a creative writing coach. Craft one short, vivid writing prompt that blends the voices described below."

	instructionDefaultSeed = "Invite the writer to discover surprise in an otherwise ordinary day."

	instructionConstraints = "Reply with a single prompt only: no headers, at most 120 words, " +
		"written in the second person, leaning on sensory detail."
)

// TextGenerator is the outbound generation call. Satisfied by *ollama.Client.
type TextGenerator interface {
	Generate(ctx context.Context, model, prompt string) (text, raw string, err error)
}

// GenerationResult is what callers get back from Generate. FromOllama marks
// whether the text came from the service or from the deterministic fallback;
// both are successful outcomes.
type GenerationResult struct {
	ID         string
	Text       string
	Personas   []models.PersonaSnapshot
	FromOllama bool
}

// GeneratorService turns persona selections plus an optional seed into one
// usable creative prompt, tolerating the generation service being down.
type GeneratorService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	generator   TextGenerator
	model       string
	logger      logging.Logger
}

// NewGeneratorService constructs a GeneratorService.
func NewGeneratorService(db *sql.DB, m repomanager.RepositoryManager, g TextGenerator, cfg *config.Config, l logging.Logger) *GeneratorService {
	return &GeneratorService{
		db:          db,
		repomanager: m,
		generator:   g,
		model:       cfg.OllamaModel,
		logger:      l.With("module", "generator"),
	}
}

// Generate resolves the persona selection, calls the generation service, and
// persists the result whether the call worked or not. Network failures,
// non-success statuses, and empty responses all fold into the fallback text;
// the only hard failure is an empty persona selection.
func (s *GeneratorService) Generate(ctx context.Context, personaIDs []string, seedText string) (*GenerationResult, error) {
	selected, err := s.resolvePersonas(ctx, personaIDs)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: select at least one persona", common.ErrValidation)
	}

	seedText = strings.TrimSpace(seedText)
	snapshot := snapshotPersonas(selected)
	instruction := buildInstruction(snapshot, seedText)

	record := &models.GeneratedPrompt{
		Personas: snapshot,
		Metadata: models.GenerationMetadata{
			Instruction: instruction,
			Model:       s.model,
		},
	}

	text, raw, err := s.generator.Generate(ctx, s.model, instruction)
	if err != nil {
		s.logger.Warn(ctx, "generation call failed, using fallback", "error", err.Error())
		record.PromptText = fallbackPrompt(snapshot, seedText)
		record.Fallback = true
		record.Metadata.Fallback = true
		record.Metadata.ErrorDetail = err.Error()
		record.Metadata.RawResponse = raw
	} else {
		record.PromptText = text
		record.Metadata.RawResponse = raw
	}

	record, err = s.repomanager.GeneratedPrompts(s.db).Create(ctx, record)
	if err != nil {
		return nil, common.ErrInternal
	}

	return &GenerationResult{
		ID:         record.ID,
		Text:       record.PromptText,
		Personas:   record.Personas,
		FromOllama: !record.Fallback,
	}, nil
}

// resolvePersonas intersects the requested ids with the active set. Unknown
// or inactive ids are dropped silently; an empty request means "all active".
func (s *GeneratorService) resolvePersonas(ctx context.Context, personaIDs []string) ([]*models.Persona, error) {
	active, err := s.repomanager.Personas(s.db).ListActive(ctx)
	if err != nil {
		return nil, common.ErrInternal
	}

	if len(personaIDs) == 0 {
		return active, nil
	}

	requested := make(map[string]struct{}, len(personaIDs))
	for _, id := range personaIDs {
		requested[id] = struct{}{}
	}

	var selected []*models.Persona
	for _, p := range active {
		if _, ok := requested[p.ID]; ok {
			selected = append(selected, p)
		}
	}
	return selected, nil
}

func snapshotPersonas(personas []*models.Persona) []models.PersonaSnapshot {
	snapshot := make([]models.PersonaSnapshot, 0, len(personas))
	for _, p := range personas {
		snapshot = append(snapshot, models.PersonaSnapshot{Name: p.Name, Description: p.Description})
	}
	return snapshot
}

func buildInstruction(personas []models.PersonaSnapshot, seedText string) string {
	var b strings.Builder

	b.WriteString(instructionFraming)
	b.WriteString("\n\nVoices:\n")
	for _, p := range personas {
		fmt.Fprintf(&b, "- %s: %s\n", p.Name, p.Description)
	}

	b.WriteString("\n")
	if seedText != "" {
		fmt.Fprintf(&b, "Weave in this seed idea: %q.\n", seedText)
	} else {
		b.WriteString(instructionDefaultSeed + "\n")
	}

	b.WriteString("\n")
	b.WriteString(instructionConstraints)

	return b.String()
}

// fallbackPrompt builds the deterministic degraded-mode prompt from the
// selected persona names and the seed, if any.
func fallbackPrompt(personas []models.PersonaSnapshot, seedText string) string {
	names := make([]string, 0, len(personas))
	for _, p := range personas {
		names = append(names, p.Name)
	}
	joined := strings.Join(names, ", ")

	if seedText != "" {
		return fmt.Sprintf("Write in the spirit of %s, weaving in the seed %q.", joined, seedText)
	}
	return fmt.Sprintf("Write in the spirit of %s, discovering surprise in an otherwise ordinary day.", joined)
}
