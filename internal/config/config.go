/*
PURPOSE:
  Defines the main configuration structure and loading logic for
  Prompt Runner (results directory, backend URL, generation defaults).

REQUIREMENTS:
  User-specified:
  - results_dir is mandatory; everything else has sensible defaults.
  - Generation defaults are opaque maps passed verbatim to the backend.

  Implementation-discovered:
  - Needs to support YAML parsing.
  - ${VAR} environment references in config values must expand, so model
    weight paths can live outside the repo.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli, internal/engine
  - Dependencies: gopkg.in/yaml.v3

ERROR HANDLING:
  - Returns explicit error if the config file is missing or invalid.

IMPLEMENTATION RULES:
  - Config struct tags support yaml.
  - Keep defaults maps nil-safe; the option merger treats nil as empty.

USAGE:
  cfg, err := config.Load("config/config.yaml")

SELF-HEALING INSTRUCTIONS:
  - If new fields are needed, add to Config struct and update validation.

RELATED FILES:
  - internal/config/prompts.go
  - internal/config/models.go

MAINTENANCE:
  - Update when adding new tuning parameters.
*/

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where Load looks when no path is given.
const DefaultConfigPath = "config/config.yaml"

// Config represents the main configuration file.
type Config struct {
	ResultsDir              string                 `yaml:"results_dir"`
	OllamaURL               string                 `yaml:"ollama_url"`
	LLMGenerationDefaults   map[string]interface{} `yaml:"llm_generation_defaults"`
	ImageGenerationDefaults map[string]interface{} `yaml:"image_generation_defaults"`
}

// Load reads and validates the main configuration file. path may be empty,
// in which case DefaultConfigPath is used. results_dir is required;
// ollama_url falls back to the local default.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if cfg.ResultsDir == "" {
		return nil, fmt.Errorf("config file %s must contain a 'results_dir' field", path)
	}
	if cfg.OllamaURL == "" {
		cfg.OllamaURL = "http://localhost:11434"
	}

	cfg.ResultsDir = os.ExpandEnv(cfg.ResultsDir)
	cfg.OllamaURL = os.ExpandEnv(cfg.OllamaURL)
	cfg.LLMGenerationDefaults = expandEnvMap(cfg.LLMGenerationDefaults)
	cfg.ImageGenerationDefaults = expandEnvMap(cfg.ImageGenerationDefaults)

	return &cfg, nil
}
