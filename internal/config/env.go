package config

import "os"

// expandEnvValue recursively expands ${VAR} references in strings, maps and
// lists. Non-string scalars pass through unchanged.
func expandEnvValue(value interface{}) interface{} {
	switch v := value.(type) {
	case string:
		return os.ExpandEnv(v)
	case map[string]interface{}:
		return expandEnvMap(v)
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = expandEnvValue(item)
		}
		return out
	default:
		return value
	}
}

func expandEnvMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = expandEnvValue(v)
	}
	return out
}
