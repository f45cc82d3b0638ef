package models

import "time"

// PersonaSnapshot is a denormalized copy of a persona at generation time.
// It is embedded in GeneratedPrompt instead of a live reference so that
// later deactivating or editing the persona does not rewrite history.
type PersonaSnapshot struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GenerationMetadata captures the raw exchange with the generation service.
type GenerationMetadata struct {
	Instruction string `json:"instruction"`
	Model       string `json:"model"`
	RawResponse string `json:"rawResponse,omitempty"`
	ErrorDetail string `json:"errorDetail,omitempty"`
	Fallback    bool   `json:"fallback"`
}

// GeneratedPrompt is the immutable record of one creative-prompt generation,
// stored for both service-generated and fallback results.
type GeneratedPrompt struct {
	ID         string
	Personas   []PersonaSnapshot
	PromptText string
	Metadata   GenerationMetadata
	Fallback   bool
	CreatedAt  time.Time
}
