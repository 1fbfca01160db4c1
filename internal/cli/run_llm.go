/*
PURPOSE:
  Defines the 'run-llm' subcommand.
  Executes the LLM evaluation across the configured prompts and models.

REQUIREMENTS:
  User-specified:
  - Run every configured (model, prompt) pair sequentially.
  - Allow filtering to completion-form or chat-form prompts.

  Implementation-discovered:
  - Config and list files load (and validate) before the driver starts,
    so configuration errors surface without side effects.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.RunLLMEval()
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if loading fails or the driver aborts.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load -> Validate -> Run.

USAGE:
  prompt-runner run-llm --prompt-filter chat

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/cli/root.go
  - internal/engine/llm.go

MAINTENANCE:
  - Update when adding new CLI overrides.
*/

package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/promptlab/prompt-runner/internal/config"
	"github.com/promptlab/prompt-runner/internal/engine"
	"github.com/promptlab/prompt-runner/internal/output"
)

var (
	llmPromptsFile string
	llmModelsFile  string
	promptFilter   string
	llmCallTimeout time.Duration
)

var runLLMCmd = &cobra.Command{
	Use:   "run-llm",
	Short: "Run the LLM evaluation suite",
	Long: `Runs every configured prompt against every configured model, in order.
Each result lands as a JSON record plus a markdown body under the run
directory; a summary.json with per-model timings is written at the end.`,
	Example: `  # Run everything
  prompt-runner run-llm

  # Only multi-turn chat prompts
  prompt-runner run-llm --prompt-filter chat

  # Alternate prompt set
  prompt-runner run-llm --prompts ./config/code_prompts.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		prompts, err := config.LoadLLMPrompts(llmPromptsFile)
		if err != nil {
			return err
		}
		models, err := config.LoadLLMModels(llmModelsFile)
		if err != nil {
			return err
		}

		client := engine.NewClient(cfg.OllamaURL, llmCallTimeout)

		runID, err := engine.RunLLMEval(cfg, prompts, models, promptFilter, client)
		if err != nil {
			return err
		}

		output.Logger.Info("Results written", "run_id", runID, "results_dir", cfg.ResultsDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runLLMCmd)

	runLLMCmd.Flags().StringVar(&llmPromptsFile, "prompts", "config/llm_prompts.yaml", "Path to the LLM prompts file")
	runLLMCmd.Flags().StringVar(&llmModelsFile, "models", "config/llm_models.yaml", "Path to the LLM models file")
	runLLMCmd.Flags().StringVar(&promptFilter, "prompt-filter", "all", "Which prompts to run: completion, chat, or all")
	runLLMCmd.Flags().DurationVar(&llmCallTimeout, "call-timeout", 10*time.Minute, "Per-call timeout (covers model loading)")
}
