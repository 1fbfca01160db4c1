/*
PURPOSE:
  HTTP client for a stable-diffusion server (A1111-compatible API).
  Implements the ImageBackend contract consumed by the image driver.

REQUIREMENTS:
  User-specified:
  - Constructed per model from init_options; generation options pass
    through verbatim.

  Implementation-discovered:
  - init_options must carry 'server_url'; remaining init options are
    applied server-side at construction (checkpoint, devices), so bad
    parameters fail fast before any generation.
  - txt2img vs img2img is routed structurally: an 'init_images' key in
    the merged options selects the img2img endpoint.
  - The server returns base64-encoded PNGs; a batch may hold several.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/image.go (via NewSDBackend as factory)

ERROR HANDLING:
  - Construction errors, non-200 responses and empty batches become
    errors; the driver propagates them.

IMPLEMENTATION RULES:
  - No option whitelisting; the server validates.

USAGE:
  backend, err := engine.NewSDBackend(initOptions)
  images, err := backend.Generate(opts)

SELF-HEALING INSTRUCTIONS:
  - If the server API changes, update the /sdapi/v1 endpoints.

RELATED FILES:
  - internal/engine/image.go

MAINTENANCE:
  - Update for new server endpoints (e.g. upscaling).
*/

package engine

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultSDTimeout = 10 * time.Minute

// SDClient talks to a stable-diffusion server.
type SDClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewSDBackend constructs an SDClient from a model's init_options. It
// requires a 'server_url' string; 'timeout_seconds' optionally overrides
// the HTTP timeout; every other init option is posted to the server's
// options endpoint and validated there.
func NewSDBackend(initOptions map[string]interface{}) (ImageBackend, error) {
	serverURL, ok := initOptions["server_url"].(string)
	if !ok || serverURL == "" {
		return nil, fmt.Errorf("image backend init_options must contain a 'server_url' string")
	}

	timeout := defaultSDTimeout
	switch v := initOptions["timeout_seconds"].(type) {
	case int:
		timeout = time.Duration(v) * time.Second
	case float64:
		timeout = time.Duration(v * float64(time.Second))
	}

	client := &SDClient{
		BaseURL: serverURL,
		HTTP:    &http.Client{Timeout: timeout},
	}

	setup := make(map[string]interface{})
	for k, v := range initOptions {
		if k == "server_url" || k == "timeout_seconds" {
			continue
		}
		setup[k] = v
	}
	if len(setup) > 0 {
		if err := client.applyOptions(setup); err != nil {
			return nil, fmt.Errorf("apply backend init options: %w", err)
		}
	}

	return client, nil
}

// applyOptions posts construction parameters to the server.
func (c *SDClient) applyOptions(opts map[string]interface{}) error {
	_, err := c.post("/sdapi/v1/options", opts)
	return err
}

// Generate runs one generation call and returns the decoded image batch
// in server order. The merged options pass through verbatim; the presence
// of 'init_images' routes the call to the img2img endpoint.
func (c *SDClient) Generate(options map[string]interface{}) ([][]byte, error) {
	endpoint := "/sdapi/v1/txt2img"
	if _, ok := options["init_images"]; ok {
		endpoint = "/sdapi/v1/img2img"
	}

	body, err := c.post(endpoint, options)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Images []string `json:"images"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("image server returned invalid JSON: %w", err)
	}
	if len(payload.Images) == 0 {
		return nil, fmt.Errorf("image server returned no images")
	}

	images := make([][]byte, 0, len(payload.Images))
	for i, enc := range payload.Images {
		raw, err := base64.StdEncoding.DecodeString(enc)
		if err != nil {
			return nil, fmt.Errorf("decode image %d: %w", i, err)
		}
		images = append(images, raw)
	}
	return images, nil
}

func (c *SDClient) post(endpoint string, payload map[string]interface{}) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.HTTP.Post(c.BaseURL+endpoint, "application/json", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("image server request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image server response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image server error (%s): %s", resp.Status, string(body))
	}
	return body, nil
}
