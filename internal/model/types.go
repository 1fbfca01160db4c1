/*
PURPOSE:
  Defines the core data structures used throughout Prompt Runner.
  These models represent prompt/model configuration, evaluation results
  and run summaries.

REQUIREMENTS:
  User-specified:
  - Record run identity, prompt id, model name, mode.
  - Record output text and generation metrics for LLM runs.
  - Record per-image metadata for image runs.

  Implementation-discovered:
  - Need JSON tags matching the persisted result schema.
  - Optional metrics must serialize as null (pointers), never zero-filled.

ARCHITECTURE INTEGRATION:
  - Used by: internal/config, internal/engine, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data structs).

IMPLEMENTATION RULES:
  - Keep structs simple and public.
  - Prompt kind is a tagged union resolved at config load time, not
    re-derived from raw maps in the drivers.

USAGE:
  res := model.LLMResult{...}

SELF-HEALING INSTRUCTIONS:
  - If new metrics are needed, add field and update the CSV index writer.

RELATED FILES:
  - internal/output/store.go
  - internal/output/csv.go

MAINTENANCE:
  - Update when the result schema grows new fields.
*/

package model

// PromptKind discriminates the two forms an LLM prompt can take.
type PromptKind string

const (
	// KindCompletion is a flat single-turn prompt.
	KindCompletion PromptKind = "completion"
	// KindChat is an ordered multi-turn message sequence.
	KindChat PromptKind = "chat"
	// KindUnknown marks a prompt carrying neither form. The drivers
	// reject it at the point of use.
	KindUnknown PromptKind = ""
)

// Message is one role-tagged turn of a chat prompt.
type Message struct {
	Role    string `yaml:"role" json:"role"`
	Content string `yaml:"content" json:"content"`
}

// PromptSpec is one entry of the LLM prompt list. At most one of Prompt or
// Messages is populated; Kind records which (KindUnknown when neither).
type PromptSpec struct {
	ID       string
	Kind     PromptKind
	Prompt   string
	Messages []Message
	Options  map[string]interface{}
}

// ModelSpec is one entry of the LLM model list.
type ModelSpec struct {
	Name    string
	Options map[string]interface{}
}

// ImagePromptSpec is one entry of the image prompt list. Options is an open
// map passed verbatim to the image backend (prompt text, seed, strength...).
type ImagePromptSpec struct {
	ID      string
	Mode    string
	Options map[string]interface{}
}

// ImageModelSpec is one entry of the image model list. InitOptions are
// backend construction parameters, fixed for the model's lifetime within a
// run; GenerationOptions are per-call defaults merged under prompt options.
type ImageModelSpec struct {
	Name              string
	InitOptions       map[string]interface{}
	GenerationOptions map[string]interface{}
}

// LLMOutput holds the generated text body.
type LLMOutput struct {
	Text string `json:"text"`
}

// LLMMetrics is the canonical metrics block of an LLM result. Every field
// is optional; a backend response without metrics degrades to all-null.
type LLMMetrics struct {
	DoneReason            *string  `json:"done_reason"`
	InputTokens           *int     `json:"input_tokens"`
	OutputTokens          *int     `json:"output_tokens"`
	TotalTokens           *int     `json:"total_tokens"`
	LoadSeconds           *float64 `json:"load_seconds"`
	InputSeconds          *float64 `json:"input_seconds"`
	OutputSeconds         *float64 `json:"output_seconds"`
	TotalSeconds          *float64 `json:"total_seconds"`
	OutputTokensPerSecond *float64 `json:"output_tokens_per_second"`
}

// LLMResult is one persisted record per (prompt, model, mode).
type LLMResult struct {
	RunID     string     `json:"run_id"`
	CreatedAt string     `json:"created_at"`
	PromptID  string     `json:"prompt_id"`
	Model     string     `json:"model"`
	Mode      string     `json:"mode"`
	Output    LLMOutput  `json:"output"`
	Metrics   LLMMetrics `json:"metrics"`
}

// ImageModelRef names the model that produced an image.
type ImageModelRef struct {
	Name string `json:"name"`
}

// ImagePromptRef names the prompt that produced an image.
type ImagePromptRef struct {
	ID string `json:"id"`
}

// ImageResultMeta is the metadata record written next to each generated
// image. GenerationOptions holds the exact merged map used for the call,
// for reproducibility.
type ImageResultMeta struct {
	RunID             string                 `json:"run_id"`
	CreatedAt         string                 `json:"created_at"`
	Mode              string                 `json:"mode"`
	Model             ImageModelRef          `json:"model"`
	Prompt            ImagePromptRef         `json:"prompt"`
	GenerationOptions map[string]interface{} `json:"generation_options"`
}

// DomainSummary aggregates one domain's pass over the configured lists.
// Counts reflect configuration, not what a filter admitted.
type DomainSummary struct {
	PromptCount  int                `json:"prompt_count"`
	ModelCount   int                `json:"model_count"`
	Prompts      []string           `json:"prompts"`
	Models       []string           `json:"models"`
	ModelTimings map[string]float64 `json:"model_timings"`
}

// Summary is the run-level summary.json record. Exactly one of LLM or
// Image is set, tagging the domain the run belonged to.
type Summary struct {
	RunID     string         `json:"run_id"`
	CreatedAt string         `json:"created_at"`
	LLM       *DomainSummary `json:"llm,omitempty"`
	Image     *DomainSummary `json:"image,omitempty"`
}
