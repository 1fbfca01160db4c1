/*
PURPOSE:
  Loads the LLM prompt list and resolves each entry into its prompt kind
  (completion vs chat) so the driver receives an already-disambiguated
  variant.

REQUIREMENTS:
  User-specified:
  - A prompt is either a flat text or an ordered message sequence, never
    both.
  - Ids are unique within a file and match ^[a-z0-9_]+$.

  Implementation-discovered:
  - Kind resolution belongs here at the boundary; drivers should not
    re-derive it from raw maps.
  - An entry with neither form is NOT a load error: it resolves to an
    unknown kind and fails only when a run actually reaches it.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli
  - Produces: []model.PromptSpec for internal/engine

ERROR HANDLING:
  - Schema violations and duplicate ids are fatal configuration errors.

IMPLEMENTATION RULES:
  - Validate shape first (schema), then cross-entry rules (duplicates).

USAGE:
  prompts, err := config.LoadLLMPrompts("config/llm_prompts.yaml")

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/config/schema.go
  - internal/model/types.go

MAINTENANCE:
  - Update alongside the prompts file format.
*/

package config

import (
	"fmt"

	"github.com/promptlab/prompt-runner/internal/model"
)

type llmPromptDoc struct {
	ID       string                 `yaml:"id"`
	Prompt   *string                `yaml:"prompt"`
	Messages []model.Message        `yaml:"messages"`
	Options  map[string]interface{} `yaml:"options"`
}

// LoadLLMPrompts reads, validates and disambiguates the LLM prompt list.
func LoadLLMPrompts(path string) ([]model.PromptSpec, error) {
	var docs []llmPromptDoc
	if err := loadListFile(path, llmPromptsSchema, "prompts file", &docs); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(docs))
	specs := make([]model.PromptSpec, 0, len(docs))
	for _, doc := range docs {
		if seen[doc.ID] {
			return nil, fmt.Errorf("prompts file %s: duplicate prompt id %q", path, doc.ID)
		}
		seen[doc.ID] = true

		spec := model.PromptSpec{
			ID:      doc.ID,
			Options: doc.Options,
		}
		switch {
		case doc.Prompt != nil:
			spec.Kind = model.KindCompletion
			spec.Prompt = *doc.Prompt
		case len(doc.Messages) > 0:
			spec.Kind = model.KindChat
			spec.Messages = doc.Messages
		default:
			// Neither form. Kept as KindUnknown; the driver rejects it
			// when the prompt is reached, not here.
			spec.Kind = model.KindUnknown
		}
		specs = append(specs, spec)
	}

	return specs, nil
}
