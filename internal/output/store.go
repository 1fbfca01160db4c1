/*
PURPOSE:
  Persists evaluation results into the run directory layout:

    <results_dir>/<run_dir_name>/
      summary.json
      llm/<prompt_id>/<model>__<mode>.json
      llm/<prompt_id>/markdown/<model>__<mode>.md
      image/<prompt_id>/<model>_<index>.png
      image/<prompt_id>/json/<model>_<index>.json

REQUIREMENTS:
  User-specified:
  - A run directory is created exactly once and never reused; a collision
    must fail loudly, never silently overwrite a prior run.
  - JSON artifacts are UTF-8, 2-space indented.
  - Markdown files hold only the generated text body.

  Implementation-discovered:
  - Per-prompt subdirectories are created on demand and must be idempotent
    (several models write under the same prompt).
  - Every save requires the run directory to already exist; a missing run
    directory signals a caller ordering bug.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine (both drivers)
  - Consumes: internal/model result types
  - Uses: internal/runid for filename sanitization

ERROR HANDLING:
  - Sentinel errors ErrRunDirExists / ErrRunDirMissing so callers can
    branch; all other failures wrap the underlying os error.

IMPLEMENTATION RULES:
  - File-level writes are plain overwrite-if-exists; only the top-level
    run directory has strict create-once semantics.

USAGE:
  st := output.NewStore(resultsDir, runDirName)
  runPath, err := st.CreateResultStructure()
  err = st.SaveLLMResult(res)

SELF-HEALING INSTRUCTIONS:
  - If the layout changes, update the path helpers and the store tests.

RELATED FILES:
  - internal/model/types.go
  - internal/runid/runid.go

MAINTENANCE:
  - Update when new artifact types are added to the run layout.
*/

package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/promptlab/prompt-runner/internal/model"
	"github.com/promptlab/prompt-runner/internal/runid"
)

var (
	// ErrRunDirExists signals a colliding run id at creation time.
	ErrRunDirExists = errors.New("run directory already exists")
	// ErrRunDirMissing signals a save attempted before CreateResultStructure.
	ErrRunDirMissing = errors.New("run directory does not exist")
)

// Store writes all artifacts of a single run.
type Store struct {
	resultsDir string
	runDirName string
}

// NewStore returns a Store rooted at resultsDir/runDirName. Nothing is
// created until CreateResultStructure is called.
func NewStore(resultsDir, runDirName string) *Store {
	return &Store{resultsDir: resultsDir, runDirName: runDirName}
}

// RunPath returns the run directory path (which may not exist yet).
func (s *Store) RunPath() string {
	return filepath.Join(s.resultsDir, s.runDirName)
}

// CreateResultStructure creates the run directory (and parents). It fails
// with ErrRunDirExists if the directory is already present.
func (s *Store) CreateResultStructure() (string, error) {
	runPath := s.RunPath()

	if _, err := os.Stat(runPath); err == nil {
		return "", fmt.Errorf("%w: %s", ErrRunDirExists, runPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat run directory %s: %w", runPath, err)
	}

	if err := os.MkdirAll(runPath, 0755); err != nil {
		return "", fmt.Errorf("create run directory %s: %w", runPath, err)
	}

	return runPath, nil
}

// requireRunDir returns the run path, failing if it does not exist.
func (s *Store) requireRunDir() (string, error) {
	runPath := s.RunPath()
	info, err := os.Stat(runPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrRunDirMissing, runPath)
		}
		return "", fmt.Errorf("stat run directory %s: %w", runPath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrRunDirMissing, runPath)
	}
	return runPath, nil
}

// SaveLLMResult writes the JSON record and the markdown body for one
// (prompt, model, mode) result.
func (s *Store) SaveLLMResult(res model.LLMResult) error {
	runPath, err := s.requireRunDir()
	if err != nil {
		return err
	}

	promptPath := filepath.Join(runPath, "llm", res.PromptID)
	if err := os.MkdirAll(promptPath, 0755); err != nil {
		return fmt.Errorf("create prompt directory %s: %w", promptPath, err)
	}

	base := runid.SanitizeFSName(res.Model) + "__" + res.Mode
	if err := writeJSON(filepath.Join(promptPath, base+".json"), res); err != nil {
		return err
	}

	markdownPath := filepath.Join(promptPath, "markdown")
	if err := os.MkdirAll(markdownPath, 0755); err != nil {
		return fmt.Errorf("create markdown directory %s: %w", markdownPath, err)
	}
	mdFile := filepath.Join(markdownPath, base+".md")
	if err := os.WriteFile(mdFile, []byte(res.Output.Text), 0644); err != nil {
		return fmt.Errorf("write markdown %s: %w", mdFile, err)
	}

	return nil
}

// SaveImageResult writes one generated image and its sibling metadata
// record. Index numbers images within a batch, starting at 0.
func (s *Store) SaveImageResult(promptID, modelName string, index int, image []byte, meta model.ImageResultMeta) error {
	runPath, err := s.requireRunDir()
	if err != nil {
		return err
	}

	promptPath := filepath.Join(runPath, "image", promptID)
	if err := os.MkdirAll(promptPath, 0755); err != nil {
		return fmt.Errorf("create prompt directory %s: %w", promptPath, err)
	}
	jsonPath := filepath.Join(promptPath, "json")
	if err := os.MkdirAll(jsonPath, 0755); err != nil {
		return fmt.Errorf("create json directory %s: %w", jsonPath, err)
	}

	base := runid.SanitizeFSName(modelName) + "_" + strconv.Itoa(index)
	pngFile := filepath.Join(promptPath, base+".png")
	if err := os.WriteFile(pngFile, image, 0644); err != nil {
		return fmt.Errorf("write image %s: %w", pngFile, err)
	}

	return writeJSON(filepath.Join(jsonPath, base+".json"), meta)
}

// SaveSummary writes summary.json for the run.
func (s *Store) SaveSummary(summary model.Summary) error {
	runPath, err := s.requireRunDir()
	if err != nil {
		return err
	}
	return writeJSON(filepath.Join(runPath, "summary.json"), summary)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
