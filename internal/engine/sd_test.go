package engine

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewSDBackendRequiresServerURL(t *testing.T) {
	if _, err := NewSDBackend(map[string]interface{}{"cfg_scale": 1.0}); err == nil {
		t.Fatal("expected error for missing server_url")
	}
	if _, err := NewSDBackend(map[string]interface{}{"server_url": 42}); err == nil {
		t.Fatal("expected error for non-string server_url")
	}
}

func TestNewSDBackendAppliesInitOptions(t *testing.T) {
	var gotOptions map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sdapi/v1/options" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotOptions)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewSDBackend(map[string]interface{}{
		"server_url":          srv.URL,
		"timeout_seconds":     30,
		"sd_model_checkpoint": "flux1-schnell.gguf",
	})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	if gotOptions["sd_model_checkpoint"] != "flux1-schnell.gguf" {
		t.Errorf("init options not applied: %v", gotOptions)
	}
	// Transport-level settings must not leak to the server.
	if _, ok := gotOptions["server_url"]; ok {
		t.Errorf("server_url leaked into setup payload: %v", gotOptions)
	}
	if _, ok := gotOptions["timeout_seconds"]; ok {
		t.Errorf("timeout_seconds leaked into setup payload: %v", gotOptions)
	}
}

func TestNewSDBackendConstructionFailsFast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such checkpoint", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	_, err := NewSDBackend(map[string]interface{}{
		"server_url":          srv.URL,
		"sd_model_checkpoint": "missing.gguf",
	})
	if err == nil {
		t.Fatal("expected construction error from server rejection")
	}
}

func TestSDGenerateTxt2Img(t *testing.T) {
	png := []byte{0x89, 0x50, 0x4e, 0x47}
	var gotPath string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		resp := map[string]interface{}{
			"images": []string{
				base64.StdEncoding.EncodeToString(png),
				base64.StdEncoding.EncodeToString([]byte{0x01}),
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	backend, err := NewSDBackend(map[string]interface{}{"server_url": srv.URL})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	images, err := backend.Generate(map[string]interface{}{"prompt": "a castle", "seed": 7})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if gotPath != "/sdapi/v1/txt2img" {
		t.Errorf("path = %s, want txt2img", gotPath)
	}
	if gotBody["prompt"] != "a castle" {
		t.Errorf("options not passed verbatim: %v", gotBody)
	}
	if len(images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(images))
	}
	if images[0][1] != 0x50 {
		t.Errorf("decoded bytes wrong: %v", images[0])
	}
}

func TestSDGenerateRoutesImg2Img(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]interface{}{
			"images": []string{base64.StdEncoding.EncodeToString([]byte{1})},
		})
	}))
	defer srv.Close()

	backend, err := NewSDBackend(map[string]interface{}{"server_url": srv.URL})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	_, err = backend.Generate(map[string]interface{}{
		"prompt":      "variation",
		"init_images": []string{"aGVsbG8="},
		"strength":    0.6,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if gotPath != "/sdapi/v1/img2img" {
		t.Errorf("path = %s, want img2img", gotPath)
	}
}

func TestSDGenerateEmptyBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"images": []}`))
	}))
	defer srv.Close()

	backend, err := NewSDBackend(map[string]interface{}{"server_url": srv.URL})
	if err != nil {
		t.Fatalf("construct: %v", err)
	}
	if _, err := backend.Generate(map[string]interface{}{"prompt": "x"}); err == nil {
		t.Fatal("expected error for empty batch")
	}
}
