/*
PURPOSE:
  High-level image evaluation driver. Iterates models × prompts,
  constructs one backend per model, generates image batches and persists
  each image with its metadata.

REQUIREMENTS:
  User-specified:
  - mode_filter selects txt2img, img2img, or all prompts.
  - Backend initialization uses only the model's init_options, once per
    model; per-call merging never touches them.
  - Persist each image of a batch in return order, index from 0.
  - Summary counts reflect the full configured lists, not what the
    filter admitted.

  Implementation-discovered:
  - The filter is validated before any side effect.
  - The exact merged options of each call are recorded in the per-image
    metadata for reproducibility.

ARCHITECTURE INTEGRATION:
  - Called by: internal/cli
  - Uses: internal/options, internal/output, internal/runid

ERROR HANDLING:
  - Construction and generation failures propagate as-is and abort the
    batch; earlier artifacts stay on disk.

IMPLEMENTATION RULES:
  - Options merge: global image defaults < model generation_options <
    prompt options.
  - Batch size is a pass-through option; the driver never interprets it.

USAGE:
  runID, err := engine.RunImageEval(cfg, prompts, models, "all", engine.NewSDBackend)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/engine/sd.go
  - internal/output/store.go

MAINTENANCE:
  - Update if per-call timing is ever required (currently per-model).
*/

package engine

import (
	"fmt"
	"time"

	"github.com/promptlab/prompt-runner/internal/config"
	"github.com/promptlab/prompt-runner/internal/model"
	"github.com/promptlab/prompt-runner/internal/options"
	"github.com/promptlab/prompt-runner/internal/output"
	"github.com/promptlab/prompt-runner/internal/runid"
)

// ImageBackend generates a batch of images from an opaque options map.
type ImageBackend interface {
	Generate(options map[string]interface{}) ([][]byte, error)
}

// ImageBackendFactory constructs a backend from a model's init_options.
// Construction fails fast on invalid parameters; the driver does not
// pre-validate.
type ImageBackendFactory func(initOptions map[string]interface{}) (ImageBackend, error)

// RunImageEval runs the image evaluation across prompts and models and
// returns the run id. modeFilter must be "txt2img", "img2img" or "all".
func RunImageEval(cfg *config.Config, prompts []model.ImagePromptSpec, models []model.ImageModelSpec, modeFilter string, factory ImageBackendFactory) (string, error) {
	if modeFilter != "txt2img" && modeFilter != "img2img" && modeFilter != "all" {
		return "", fmt.Errorf("invalid mode_filter %q: must be 'txt2img', 'img2img', or 'all'", modeFilter)
	}

	runID, runDirName, createdAt := runid.Generate()

	store := output.NewStore(cfg.ResultsDir, runDirName)
	if _, err := store.CreateResultStructure(); err != nil {
		return "", err
	}

	output.Logger.Info("Starting image evaluation", "run_id", runID, "models", len(models), "prompts", len(prompts), "filter", modeFilter)

	modelTimings := make(map[string]float64, len(models))

	for _, m := range models {
		output.Logger.Info("Initializing image backend", "model", m.Name)
		backend, err := factory(m.InitOptions)
		if err != nil {
			return "", fmt.Errorf("initialize backend for model %s: %w", m.Name, err)
		}

		start := time.Now()

		for _, p := range prompts {
			if modeFilter != "all" && p.Mode != modeFilter {
				continue
			}

			opts := options.Merge(cfg.ImageGenerationDefaults, m.GenerationOptions, p.Options)

			output.Logger.Info("Generating", "prompt", p.ID, "mode", p.Mode)
			images, err := backend.Generate(opts)
			if err != nil {
				return "", fmt.Errorf("model %s, prompt %s: %w", m.Name, p.ID, err)
			}

			for i, img := range images {
				meta := model.ImageResultMeta{
					RunID:             runID,
					CreatedAt:         createdAt,
					Mode:              p.Mode,
					Model:             model.ImageModelRef{Name: m.Name},
					Prompt:            model.ImagePromptRef{ID: p.ID},
					GenerationOptions: opts,
				}
				if err := store.SaveImageResult(p.ID, m.Name, i, img, meta); err != nil {
					return "", err
				}
			}
		}

		modelTimings[m.Name] = round3(time.Since(start).Seconds())
	}

	summary := model.Summary{
		RunID:     runID,
		CreatedAt: createdAt,
		Image:     buildDomainSummary(imagePromptIDs(prompts), imageModelNames(models), modelTimings),
	}
	if err := store.SaveSummary(summary); err != nil {
		return "", err
	}

	output.Logger.Info("Evaluation complete", "run_id", runID)
	return runID, nil
}

func imagePromptIDs(prompts []model.ImagePromptSpec) []string {
	ids := make([]string, 0, len(prompts))
	for _, p := range prompts {
		ids = append(ids, p.ID)
	}
	return ids
}

func imageModelNames(models []model.ImageModelSpec) []string {
	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, m.Name)
	}
	return names
}
