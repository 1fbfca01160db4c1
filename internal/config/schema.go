/*
PURPOSE:
  JSON-schema validation for the prompt and model list files.
  Shape errors are caught here, before any run side effects.

REQUIREMENTS:
  User-specified:
  - Prompt ids match ^[a-z0-9_]+$.
  - An LLM prompt never carries both 'prompt' and 'messages'. An entry
    with neither form still loads; the driver rejects it when reached.
  - Chat roles are limited to system/user/assistant.
  - Image prompts carry a mode (txt2img|img2img) and an options map.

  Implementation-discovered:
  - Duplicate-id detection is not expressible in JSON schema; the loaders
    check it in Go after shape validation passes.

ARCHITECTURE INTEGRATION:
  - Used by: internal/config loaders
  - Dependencies: github.com/xeipuuv/gojsonschema

ERROR HANDLING:
  - All schema violations of a file are collected into one error message.

IMPLEMENTATION RULES:
  - Schemas are embedded constants; no runtime schema files.

USAGE:
  err := validateDoc(llmPromptsSchema, raw, "prompts file x.yaml")

SELF-HEALING INSTRUCTIONS:
  - Keep schemas in sync with the doc structs in prompts.go/models.go.

RELATED FILES:
  - internal/config/prompts.go
  - internal/config/models.go

MAINTENANCE:
  - Update schemas when the config file formats change.
*/

package config

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const llmPromptsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id"],
    "properties": {
      "id": {"type": "string", "pattern": "^[a-z0-9_]+$"},
      "prompt": {"type": "string"},
      "messages": {
        "type": "array",
        "minItems": 1,
        "items": {
          "type": "object",
          "required": ["role", "content"],
          "properties": {
            "role": {"enum": ["system", "user", "assistant"]},
            "content": {"type": "string"}
          }
        }
      },
      "options": {"type": "object"}
    },
    "not": {"required": ["prompt", "messages"]}
  }
}`

const llmModelsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["name"],
    "properties": {
      "name": {"type": "string", "minLength": 1},
      "options": {"type": "object"}
    }
  }
}`

const imagePromptsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "mode", "options"],
    "properties": {
      "id": {"type": "string", "pattern": "^[a-z0-9_]+$"},
      "mode": {"enum": ["txt2img", "img2img"]},
      "options": {"type": "object"}
    }
  }
}`

const imageModelsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["name", "init_options"],
    "properties": {
      "name": {"type": "string", "minLength": 1},
      "init_options": {"type": "object"},
      "generation_options": {"type": "object"}
    }
  }
}`

// validateDoc checks a YAML-decoded document against an embedded schema and
// reports every violation at once.
func validateDoc(schemaJSON string, doc interface{}, label string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("validate %s: %w", label, err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%s is invalid: %s", label, strings.Join(msgs, "; "))
}
