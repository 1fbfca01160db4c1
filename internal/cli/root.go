/*
PURPOSE:
  Defines the root Cobra command for the Prompt Runner CLI.
  Handles global flags and command initialization.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/prompt-runner/main.go
  - Calls: Child commands (run-llm, run-image, list-models, validate)

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Keep run logic in subcommands.

USAGE:
  Called by main.go.

SELF-HEALING INSTRUCTIONS:
  - If adding new global flags, add them to init().

RELATED FILES:
  - cmd/prompt-runner/main.go

MAINTENANCE:
  - Update when adding new global configuration options.
*/

package cli

import (
	"github.com/spf13/cobra"

	"github.com/promptlab/prompt-runner/internal/output"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile string
	quiet   bool

	rootCmd = &cobra.Command{
		Use:   "prompt-runner",
		Short: "Offline evaluation harness for LLM and image-diffusion models",
		Long: `Runs a fixed set of prompts against a fixed set of models, records
outputs and performance metrics into a timestamped results directory and
writes a run summary. Use 'run-llm --help' or 'run-image --help' for options.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if quiet {
				output.SetQuiet()
			}
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress info-level log output")
}
