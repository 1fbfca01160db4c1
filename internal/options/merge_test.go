package options

import (
	"reflect"
	"testing"
)

func TestMergePrecedence(t *testing.T) {
	global := map[string]interface{}{"num_ctx": 2048, "temperature": 0.7, "seed": 1}
	model := map[string]interface{}{"temperature": 0.2, "top_p": 0.9}
	prompt := map[string]interface{}{"seed": 42}

	got := Merge(global, model, prompt)
	want := map[string]interface{}{
		"num_ctx":     2048,
		"temperature": 0.2,
		"top_p":       0.9,
		"seed":        42,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Merge = %v, want %v", got, want)
	}
}

func TestMergeNilLayers(t *testing.T) {
	if got := Merge(nil, nil, nil); len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
	if got := Merge(nil, map[string]interface{}{"a": 1}, nil); got["a"] != 1 {
		t.Errorf("expected model layer to survive nil neighbors, got %v", got)
	}
}

func TestMergeUnionOfKeys(t *testing.T) {
	global := map[string]interface{}{"a": 1}
	model := map[string]interface{}{"b": 2}
	prompt := map[string]interface{}{"c": 3}

	got := Merge(global, model, prompt)
	if len(got) != 3 {
		t.Fatalf("expected 3 keys, got %d: %v", len(got), got)
	}
	for k, want := range map[string]interface{}{"a": 1, "b": 2, "c": 3} {
		if got[k] != want {
			t.Errorf("key %q = %v, want %v", k, got[k], want)
		}
	}
}

func TestMergeNoLayerMutation(t *testing.T) {
	global := map[string]interface{}{"a": 1}
	prompt := map[string]interface{}{"a": 2}

	merged := Merge(global, nil, prompt)
	merged["a"] = 99
	merged["new"] = true

	if global["a"] != 1 {
		t.Errorf("global layer mutated: %v", global)
	}
	if prompt["a"] != 2 || len(prompt) != 1 {
		t.Errorf("prompt layer mutated: %v", prompt)
	}
}

func TestMergeNoDeepMerge(t *testing.T) {
	global := map[string]interface{}{"nested": map[string]interface{}{"x": 1, "y": 2}}
	prompt := map[string]interface{}{"nested": map[string]interface{}{"x": 9}}

	got := Merge(global, nil, prompt)
	nested, ok := got["nested"].(map[string]interface{})
	if !ok {
		t.Fatalf("nested value has unexpected type %T", got["nested"])
	}
	// The prompt layer replaces the whole value; "y" must be gone.
	if _, exists := nested["y"]; exists {
		t.Errorf("nested maps were deep-merged: %v", nested)
	}
	if nested["x"] != 9 {
		t.Errorf("nested x = %v, want 9", nested["x"])
	}
}
