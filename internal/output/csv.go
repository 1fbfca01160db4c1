/*
PURPOSE:
  Writes a flat CSV index of LLM results into the run directory.
  One row per (model, prompt, mode), for spreadsheet-friendly comparison
  across a run without walking the per-prompt JSON tree.

REQUIREMENTS:
  User-specified:
  - Output to CSV.
  - Keep file handle open for flushing.

  Implementation-discovered:
  - Flush after every write (crash resilience).
  - Absent metrics render as empty cells, never as zeros.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (LLM driver)
  - Consumes: internal/model.LLMResult

ERROR HANDLING:
  - Returns error on file creation or write failure.

IMPLEMENTATION RULES:
  - Use encoding/csv.
  - Use Mutex in case the driver ever becomes concurrent.

USAGE:
  w, err := output.NewCSVIndexWriter(path)
  w.Write(result)
  w.Close()

SELF-HEALING INSTRUCTIONS:
  - If the metrics block changes, update header and record conversion.

RELATED FILES:
  - internal/model/types.go

MAINTENANCE:
  - Update Write() mapping when LLMMetrics changes.
*/

package output

import (
	"encoding/csv"
	"os"
	"strconv"
	"sync"

	"github.com/promptlab/prompt-runner/internal/model"
)

// CSVIndexWriter appends LLM result rows to a run-level CSV file.
type CSVIndexWriter struct {
	file   *os.File
	writer *csv.Writer
	mu     sync.Mutex
}

// NewCSVIndexWriter creates the index file and writes the header.
// It overwrites the file if it exists.
func NewCSVIndexWriter(path string) (*CSVIndexWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)

	header := []string{
		"model", "prompt_id", "mode", "done_reason",
		"input_tokens", "output_tokens", "total_tokens",
		"load_seconds", "input_seconds", "output_seconds", "total_seconds",
		"output_tokens_per_second",
	}
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	w.Flush()

	return &CSVIndexWriter{
		file:   f,
		writer: w,
	}, nil
}

// Write appends a single result row. It is thread-safe.
func (cw *CSVIndexWriter) Write(r model.LLMResult) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	record := []string{
		r.Model,
		r.PromptID,
		r.Mode,
		strPtrCell(r.Metrics.DoneReason),
		intPtrCell(r.Metrics.InputTokens),
		intPtrCell(r.Metrics.OutputTokens),
		intPtrCell(r.Metrics.TotalTokens),
		floatPtrCell(r.Metrics.LoadSeconds),
		floatPtrCell(r.Metrics.InputSeconds),
		floatPtrCell(r.Metrics.OutputSeconds),
		floatPtrCell(r.Metrics.TotalSeconds),
		floatPtrCell(r.Metrics.OutputTokensPerSecond),
	}

	if err := cw.writer.Write(record); err != nil {
		return err
	}
	cw.writer.Flush()
	return cw.writer.Error()
}

// Close closes the underlying file.
func (cw *CSVIndexWriter) Close() error {
	cw.writer.Flush()
	return cw.file.Close()
}

func strPtrCell(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func intPtrCell(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func floatPtrCell(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
