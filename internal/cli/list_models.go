/*
PURPOSE:
  Defines the 'list-models' subcommand.
  Helps debug connectivity and model availability before a run.

REQUIREMENTS:
  User-specified:
  - List models available on the Ollama host.

  Implementation-discovered:
  - Useful validation step before a full run.

ARCHITECTURE INTEGRATION:
  - Calls: internal/engine.Client.ListModels()

ERROR HANDLING:
  - Prints error if the host is unreachable.

IMPLEMENTATION RULES:
  - Simple output to stdout.

USAGE:
  prompt-runner list-models --url http://ollama-1:11434

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/engine/client.go

MAINTENANCE:
  - None.
*/

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/promptlab/prompt-runner/internal/config"
	"github.com/promptlab/prompt-runner/internal/engine"
)

var listModelsURL string

var listModelsCmd = &cobra.Command{
	Use:   "list-models",
	Short: "List models available on the Ollama host",
	RunE: func(cmd *cobra.Command, args []string) error {
		url := listModelsURL
		if url == "" {
			// Best effort: fall back to the configured host, then the local default.
			if cfg, err := config.Load(cfgFile); err == nil {
				url = cfg.OllamaURL
			} else {
				url = "http://localhost:11434"
			}
		}

		client := engine.NewClient(url, 30*time.Second)

		fmt.Printf("Querying %s...\n", url)
		models, err := client.ListModels()
		if err != nil {
			return err
		}
		for _, m := range models {
			fmt.Printf("- %s\n", m)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listModelsCmd)
	listModelsCmd.Flags().StringVar(&listModelsURL, "url", "", "Ollama URL (overrides config)")
}
