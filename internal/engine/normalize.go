/*
PURPOSE:
  Normalizes a raw backend response into the canonical output/metrics
  shape persisted with every LLM result.

REQUIREMENTS:
  User-specified:
  - Durations convert from nanoseconds to seconds, rounded to 3 decimals.
  - total_tokens only when both counts are present; never zero-filled.
  - Throughput only when output tokens and a positive output duration are
    both present.

  Implementation-discovered:
  - Metric absence is not a fault; a bare {response} degrades to all-null
    metrics.
  - Throughput is computed from the already-rounded output_seconds, so
    the persisted numbers stay mutually consistent.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/llm.go
  - Produces: model.LLMOutput, model.LLMMetrics

ERROR HANDLING:
  - None; normalization is total.

IMPLEMENTATION RULES:
  - Field mapping:
      load_duration        -> load_seconds
      prompt_eval_duration -> input_seconds
      eval_duration        -> output_seconds
      total_duration       -> total_seconds

USAGE:
  out, metrics := normalizeResponse(resp)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update when the metrics block grows new fields.
*/

package engine

import (
	"math"

	"github.com/promptlab/prompt-runner/internal/model"
)

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

// nsToSeconds converts an optional nanosecond duration to seconds,
// rounded to 3 decimal places.
func nsToSeconds(ns *int64) *float64 {
	if ns == nil {
		return nil
	}
	s := round3(float64(*ns) / 1e9)
	return &s
}

// normalizeResponse wraps a raw generation response into the canonical
// result shape.
func normalizeResponse(resp GenerateResponse) (model.LLMOutput, model.LLMMetrics) {
	metrics := model.LLMMetrics{
		DoneReason:    resp.DoneReason,
		InputTokens:   resp.PromptEvalCount,
		OutputTokens:  resp.EvalCount,
		LoadSeconds:   nsToSeconds(resp.LoadDuration),
		InputSeconds:  nsToSeconds(resp.PromptEvalDuration),
		OutputSeconds: nsToSeconds(resp.EvalDuration),
		TotalSeconds:  nsToSeconds(resp.TotalDuration),
	}

	if metrics.InputTokens != nil && metrics.OutputTokens != nil {
		total := *metrics.InputTokens + *metrics.OutputTokens
		metrics.TotalTokens = &total
	}

	if metrics.OutputTokens != nil && metrics.OutputSeconds != nil && *metrics.OutputSeconds > 0 {
		tps := round3(float64(*metrics.OutputTokens) / *metrics.OutputSeconds)
		metrics.OutputTokensPerSecond = &tps
	}

	return model.LLMOutput{Text: resp.Text}, metrics
}
