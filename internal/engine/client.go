/*
PURPOSE:
  HTTP client for the Ollama text-generation API.
  Implements the TextGenerator contract consumed by the LLM driver.

REQUIREMENTS:
  User-specified:
  - Non-streaming completion and chat calls.
  - Generation options pass through verbatim; Ollama validates them.

  Implementation-discovered:
  - Needs http.Client with a generous timeout (model loading counts
    against the first call).
  - Every metric field of the response is optional; absent fields must
    decode to nil, not zero.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine/llm.go, internal/cli (list-models)
  - Uses: internal/model (chat messages)

ERROR HANDLING:
  - Non-200 responses and API-side error payloads become errors; the
    driver propagates them without retry.

IMPLEMENTATION RULES:
  - Use net/http.
  - Pointer-typed wire fields for everything optional.

USAGE:
  c := engine.NewClient("http://localhost:11434", 10*time.Minute)
  resp, err := c.Complete("llama3.1:8b", "hello", opts)

SELF-HEALING INSTRUCTIONS:
  - If Ollama API changes, update endpoints (/api/generate, /api/chat,
    /api/tags).

RELATED FILES:
  - internal/engine/llm.go
  - internal/engine/normalize.go

MAINTENANCE:
  - Update for new Ollama API features.
*/

package engine

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/promptlab/prompt-runner/internal/model"
)

// GenerateResponse is the normalized wire response of one generation call.
// Text is always set on success; every metric field is best-effort.
type GenerateResponse struct {
	Text               string
	DoneReason         *string
	PromptEvalCount    *int
	EvalCount          *int
	LoadDuration       *int64 // ns
	PromptEvalDuration *int64 // ns
	EvalDuration       *int64 // ns
	TotalDuration      *int64 // ns
}

// TextGenerator is the contract the LLM driver consumes. The concrete
// implementation is Client; tests substitute fakes.
type TextGenerator interface {
	Complete(modelName, prompt string, options map[string]interface{}) (GenerateResponse, error)
	Chat(modelName string, messages []model.Message, options map[string]interface{}) (GenerateResponse, error)
}

// Client talks to an Ollama server.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a Client. The timeout covers model loading plus
// generation of a single call.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

type generateWire struct {
	Response string `json:"response"`
	Message  *struct {
		Content string `json:"content"`
	} `json:"message"`
	DoneReason         *string `json:"done_reason"`
	PromptEvalCount    *int    `json:"prompt_eval_count"`
	EvalCount          *int    `json:"eval_count"`
	LoadDuration       *int64  `json:"load_duration"`
	PromptEvalDuration *int64  `json:"prompt_eval_duration"`
	EvalDuration       *int64  `json:"eval_duration"`
	TotalDuration      *int64  `json:"total_duration"`
	Error              string  `json:"error"`
}

// Complete runs a single-turn completion via /api/generate.
func (c *Client) Complete(modelName, prompt string, options map[string]interface{}) (GenerateResponse, error) {
	payload := map[string]interface{}{
		"model":   modelName,
		"prompt":  prompt,
		"stream":  false,
		"options": options,
	}

	wire, err := c.post("/api/generate", payload)
	if err != nil {
		return GenerateResponse{}, err
	}
	return wire.toResponse(wire.Response), nil
}

// Chat runs a multi-turn generation via /api/chat.
func (c *Client) Chat(modelName string, messages []model.Message, options map[string]interface{}) (GenerateResponse, error) {
	payload := map[string]interface{}{
		"model":    modelName,
		"messages": messages,
		"stream":   false,
		"options":  options,
	}

	wire, err := c.post("/api/chat", payload)
	if err != nil {
		return GenerateResponse{}, err
	}

	text := ""
	if wire.Message != nil {
		text = wire.Message.Content
	}
	return wire.toResponse(text), nil
}

// ListModels returns the model names available on the server.
func (c *Client) ListModels() ([]string, error) {
	resp, err := c.HTTP.Get(c.BaseURL + "/api/tags")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var payload struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	var names []string
	for _, m := range payload.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

func (c *Client) post(endpoint string, payload map[string]interface{}) (generateWire, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return generateWire{}, fmt.Errorf("marshal request: %w", err)
	}

	resp, err := c.HTTP.Post(c.BaseURL+endpoint, "application/json", bytes.NewReader(reqBody))
	if err != nil {
		return generateWire{}, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return generateWire{}, fmt.Errorf("read ollama response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return generateWire{}, fmt.Errorf("ollama server error (%s): %s", resp.Status, string(body))
	}

	var wire generateWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return generateWire{}, fmt.Errorf("ollama returned invalid JSON: %w (body: %s)", err, string(body))
	}
	if wire.Error != "" {
		return generateWire{}, fmt.Errorf("ollama API error: %s", wire.Error)
	}

	return wire, nil
}

func (w generateWire) toResponse(text string) GenerateResponse {
	return GenerateResponse{
		Text:               text,
		DoneReason:         w.DoneReason,
		PromptEvalCount:    w.PromptEvalCount,
		EvalCount:          w.EvalCount,
		LoadDuration:       w.LoadDuration,
		PromptEvalDuration: w.PromptEvalDuration,
		EvalDuration:       w.EvalDuration,
		TotalDuration:      w.TotalDuration,
	}
}
