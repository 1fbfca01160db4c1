/*
PURPOSE:
  High-level LLM evaluation driver. Iterates models × prompts, invokes
  the text backend, normalizes responses and persists results.

REQUIREMENTS:
  User-specified:
  - Sequential execution: outer loop over models, inner loop over
    prompts, no interleaving.
  - prompt_filter selects completion-form, chat-form, or all prompts.
  - Per-model wall-clock timing across that model's whole prompt loop.
  - A summary written once, after all models complete.

  Implementation-discovered:
  - The filter is validated before any side effect; an invalid value must
    not leave a run directory behind.
  - A backend failure aborts the batch; artifacts already written for
    earlier prompts stay on disk, unsummarized.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/options, internal/output, internal/runid

ERROR HANDLING:
  - Configuration errors and store precondition errors are fatal.
  - Backend errors propagate as-is; no retry, no partial-credit record.

IMPLEMENTATION RULES:
  - Options merge: global defaults < model options < prompt options.
  - Prompts run in their native form; the merged map passes verbatim.

USAGE:
  runID, err := engine.RunLLMEval(cfg, prompts, models, "all", client)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/engine/client.go
  - internal/output/store.go

MAINTENANCE:
  - Update iteration logic if parallelism is ever introduced.
*/

package engine

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/promptlab/prompt-runner/internal/config"
	"github.com/promptlab/prompt-runner/internal/model"
	"github.com/promptlab/prompt-runner/internal/options"
	"github.com/promptlab/prompt-runner/internal/output"
	"github.com/promptlab/prompt-runner/internal/runid"
)

// RunLLMEval runs the LLM evaluation across prompts and models and
// returns the run id. promptFilter must be "completion", "chat" or "all".
func RunLLMEval(cfg *config.Config, prompts []model.PromptSpec, models []model.ModelSpec, promptFilter string, gen TextGenerator) (string, error) {
	if promptFilter != "completion" && promptFilter != "chat" && promptFilter != "all" {
		return "", fmt.Errorf("invalid prompt_filter %q: must be 'completion', 'chat', or 'all'", promptFilter)
	}

	runID, runDirName, createdAt := runid.Generate()

	store := output.NewStore(cfg.ResultsDir, runDirName)
	runPath, err := store.CreateResultStructure()
	if err != nil {
		return "", err
	}

	csvIndex, err := output.NewCSVIndexWriter(filepath.Join(runPath, "results.csv"))
	if err != nil {
		return "", err
	}
	defer csvIndex.Close()

	output.Logger.Info("Starting LLM evaluation", "run_id", runID, "models", len(models), "prompts", len(prompts), "filter", promptFilter)

	modelTimings := make(map[string]float64, len(models))

	for _, m := range models {
		output.Logger.Info("Processing model", "model", m.Name)
		start := time.Now()

		for _, p := range prompts {
			if promptFilter == "completion" && p.Kind != model.KindCompletion {
				continue
			}
			if promptFilter == "chat" && p.Kind != model.KindChat {
				continue
			}

			opts := options.Merge(cfg.LLMGenerationDefaults, m.Options, p.Options)

			var resp GenerateResponse
			var mode string
			switch p.Kind {
			case model.KindCompletion:
				mode = "completion"
				output.Logger.Info("Running prompt", "prompt", p.ID, "mode", mode)
				resp, err = gen.Complete(m.Name, p.Prompt, opts)
			case model.KindChat:
				mode = "chat"
				output.Logger.Info("Running prompt", "prompt", p.ID, "mode", mode)
				resp, err = gen.Chat(m.Name, p.Messages, opts)
			default:
				return "", fmt.Errorf("prompt %q must have either a prompt or a messages field", p.ID)
			}
			if err != nil {
				return "", fmt.Errorf("model %s, prompt %s: %w", m.Name, p.ID, err)
			}

			out, metrics := normalizeResponse(resp)
			res := model.LLMResult{
				RunID:     runID,
				CreatedAt: createdAt,
				PromptID:  p.ID,
				Model:     m.Name,
				Mode:      mode,
				Output:    out,
				Metrics:   metrics,
			}

			if err := store.SaveLLMResult(res); err != nil {
				return "", err
			}
			if err := csvIndex.Write(res); err != nil {
				return "", err
			}
		}

		modelTimings[m.Name] = round3(time.Since(start).Seconds())
	}

	summary := model.Summary{
		RunID:     runID,
		CreatedAt: createdAt,
		LLM:       buildDomainSummary(promptIDs(prompts), modelNames(models), modelTimings),
	}
	if err := store.SaveSummary(summary); err != nil {
		return "", err
	}

	output.Logger.Info("Evaluation complete", "run_id", runID)
	return runID, nil
}

func buildDomainSummary(prompts, models []string, timings map[string]float64) *model.DomainSummary {
	return &model.DomainSummary{
		PromptCount:  len(prompts),
		ModelCount:   len(models),
		Prompts:      prompts,
		Models:       models,
		ModelTimings: timings,
	}
}

func promptIDs(prompts []model.PromptSpec) []string {
	ids := make([]string, 0, len(prompts))
	for _, p := range prompts {
		ids = append(ids, p.ID)
	}
	return ids
}

func modelNames(models []model.ModelSpec) []string {
	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, m.Name)
	}
	return names
}
