/*
PURPOSE:
  Merges layered generation option maps into the single map handed to a
  backend call.

REQUIREMENTS:
  User-specified:
  - Precedence, lowest to highest: global defaults < model options <
    prompt options.
  - Options are opaque; no key is special-cased or whitelisted.

  Implementation-discovered:
  - Later layers overwrite same-keyed entries entirely. No deep merge of
    nested structures.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine (both drivers)

ERROR HANDLING:
  - None. Nil layers are treated as empty.

IMPLEMENTATION RULES:
  - Always return a fresh map; never mutate a layer.

USAGE:
  opts := options.Merge(globalDefaults, modelOpts, promptOpts)

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/engine/llm.go
  - internal/engine/image.go

MAINTENANCE:
  - Keep this a blind last-writer-wins merge; the backend validates.
*/

package options

// Merge layers the three option maps, lowest to highest priority:
// globalDefaults < modelOptions < promptOptions. The result holds the
// union of all keys with last-writer-wins semantics. Any layer may be nil.
func Merge(globalDefaults, modelOptions, promptOptions map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{})

	for k, v := range globalDefaults {
		merged[k] = v
	}
	for k, v := range modelOptions {
		merged[k] = v
	}
	for k, v := range promptOptions {
		merged[k] = v
	}

	return merged
}
