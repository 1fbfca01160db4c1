/*
PURPOSE:
  Defines the 'run-image' subcommand.
  Executes the image evaluation across the configured prompts and models.

REQUIREMENTS:
  User-specified:
  - One backend per model, constructed from its init_options.
  - Allow filtering to txt2img or img2img prompts.

  Implementation-discovered:
  - List files load before the driver starts, so configuration errors
    surface without side effects.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.RunImageEval()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if loading fails or the driver aborts.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load -> Validate -> Run.

USAGE:
  prompt-runner run-image --mode-filter txt2img

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/cli/root.go
  - internal/engine/image.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/promptlab/prompt-runner/internal/config"
	"github.com/promptlab/prompt-runner/internal/engine"
	"github.com/promptlab/prompt-runner/internal/output"
)

var (
	imagePromptsFile string
	imageModelsFile  string
	modeFilter       string
)

var runImageCmd = &cobra.Command{
	Use:   "run-image",
	Short: "Run the image generation evaluation suite",
	Long: `Runs every configured image prompt against every configured diffusion
model. Each generated image lands as a PNG with a sibling metadata JSON
recording the exact merged generation options.`,
	Example: `  # Run everything
  prompt-runner run-image

  # Only text-to-image prompts
  prompt-runner run-image --mode-filter txt2img`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		prompts, err := config.LoadImagePrompts(imagePromptsFile)
		if err != nil {
			return err
		}
		models, err := config.LoadImageModels(imageModelsFile)
		if err != nil {
			return err
		}

		runID, err := engine.RunImageEval(cfg, prompts, models, modeFilter, engine.NewSDBackend)
		if err != nil {
			return err
		}

		output.Logger.Info("Results written", "run_id", runID, "results_dir", cfg.ResultsDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runImageCmd)

	runImageCmd.Flags().StringVar(&imagePromptsFile, "prompts", "config/image_prompts.yaml", "Path to the image prompts file")
	runImageCmd.Flags().StringVar(&imageModelsFile, "models", "config/image_models.yaml", "Path to the image models file")
	runImageCmd.Flags().StringVar(&modeFilter, "mode-filter", "all", "Which prompts to run: txt2img, img2img, or all")
}
