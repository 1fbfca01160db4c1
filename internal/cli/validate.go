/*
PURPOSE:
  Defines the 'validate' subcommand.
  Loads and validates all configuration files without running anything.

REQUIREMENTS:
  User-specified:
  - Catch config problems before committing to a (long) evaluation run.

  Implementation-discovered:
  - Missing optional files (e.g. no image configs in an LLM-only setup)
    are reported but do not fail validation on their own; only files that
    exist and are invalid do.

ARCHITECTURE INTEGRATION:
  - Uses: internal/config

ERROR HANDLING:
  - Returns an error if any present file fails validation.

IMPLEMENTATION RULES:
  - Writes nothing; read-only.

USAGE:
  prompt-runner validate

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/config/schema.go

MAINTENANCE:
  - Update when new config files are added.
*/

package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/promptlab/prompt-runner/internal/config"
	"github.com/promptlab/prompt-runner/internal/output"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate all configuration files without running",
	RunE: func(cmd *cobra.Command, args []string) error {
		failed := false

		if _, err := config.Load(cfgFile); err != nil {
			output.Logger.Error("Config invalid", "error", err)
			failed = true
		} else {
			output.Logger.Info("Config OK")
		}

		check := func(label string, err error) {
			switch {
			case err == nil:
				output.Logger.Info(label + " OK")
			case errors.Is(err, fs.ErrNotExist):
				output.Logger.Warn(label+" not present", "error", err)
			default:
				output.Logger.Error(label+" invalid", "error", err)
				failed = true
			}
		}

		_, err := config.LoadLLMPrompts(llmPromptsFile)
		check("LLM prompts", err)
		_, err = config.LoadLLMModels(llmModelsFile)
		check("LLM models", err)
		_, err = config.LoadImagePrompts(imagePromptsFile)
		check("Image prompts", err)
		_, err = config.LoadImageModels(imageModelsFile)
		check("Image models", err)

		if failed {
			return fmt.Errorf("configuration validation failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
