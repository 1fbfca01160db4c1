/*
PURPOSE:
  Loads the LLM and image model lists, and the image prompt list.

REQUIREMENTS:
  User-specified:
  - LLM models: a name plus optional default generation options.
  - Image models: a name, required init_options (backend construction
    parameters) and optional generation_options (per-call defaults).
  - Image prompts: an id, a mode tag and a required options map.

  Implementation-discovered:
  - init_options frequently carry weight-file paths, so ${VAR} references
    in image model entries are expanded at load time.

ARCHITECTURE INTEGRATION:
  - Used by: internal/cli
  - Produces: spec slices for internal/engine

ERROR HANDLING:
  - Schema violations and duplicate image prompt ids are fatal
    configuration errors.

IMPLEMENTATION RULES:
  - Names are not otherwise validated; sanitization for filenames happens
    in the store.

USAGE:
  models, err := config.LoadLLMModels("config/llm_models.yaml")

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/config/schema.go
  - internal/config/env.go

MAINTENANCE:
  - Update alongside the model file formats.
*/

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/promptlab/prompt-runner/internal/model"
)

type llmModelDoc struct {
	Name    string                 `yaml:"name"`
	Options map[string]interface{} `yaml:"options"`
}

type imagePromptDoc struct {
	ID      string                 `yaml:"id"`
	Mode    string                 `yaml:"mode"`
	Options map[string]interface{} `yaml:"options"`
}

type imageModelDoc struct {
	Name              string                 `yaml:"name"`
	InitOptions       map[string]interface{} `yaml:"init_options"`
	GenerationOptions map[string]interface{} `yaml:"generation_options"`
}

// LoadLLMModels reads and validates the LLM model list.
func LoadLLMModels(path string) ([]model.ModelSpec, error) {
	var docs []llmModelDoc
	if err := loadListFile(path, llmModelsSchema, "models file", &docs); err != nil {
		return nil, err
	}

	specs := make([]model.ModelSpec, 0, len(docs))
	for _, doc := range docs {
		specs = append(specs, model.ModelSpec{
			Name:    doc.Name,
			Options: doc.Options,
		})
	}
	return specs, nil
}

// LoadImagePrompts reads and validates the image prompt list.
func LoadImagePrompts(path string) ([]model.ImagePromptSpec, error) {
	var docs []imagePromptDoc
	if err := loadListFile(path, imagePromptsSchema, "image prompts file", &docs); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(docs))
	specs := make([]model.ImagePromptSpec, 0, len(docs))
	for _, doc := range docs {
		if seen[doc.ID] {
			return nil, fmt.Errorf("image prompts file %s: duplicate prompt id %q", path, doc.ID)
		}
		seen[doc.ID] = true
		specs = append(specs, model.ImagePromptSpec{
			ID:      doc.ID,
			Mode:    doc.Mode,
			Options: doc.Options,
		})
	}
	return specs, nil
}

// LoadImageModels reads and validates the image model list. ${VAR}
// references in option values (weight paths, device flags) are expanded.
func LoadImageModels(path string) ([]model.ImageModelSpec, error) {
	var docs []imageModelDoc
	if err := loadListFile(path, imageModelsSchema, "image models file", &docs); err != nil {
		return nil, err
	}

	specs := make([]model.ImageModelSpec, 0, len(docs))
	for _, doc := range docs {
		specs = append(specs, model.ImageModelSpec{
			Name:              doc.Name,
			InitOptions:       expandEnvMap(doc.InitOptions),
			GenerationOptions: expandEnvMap(doc.GenerationOptions),
		})
	}
	return specs, nil
}

// loadListFile reads a YAML list file, schema-validates the raw document
// and then decodes it into the typed slice out.
func loadListFile(path, schema, kind string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", kind, path, err)
	}

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse %s %s: %w", kind, path, err)
	}
	if err := validateDoc(schema, raw, kind+" "+path); err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s %s: %w", kind, path, err)
	}
	return nil
}
