package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/promptlab/prompt-runner/internal/model"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestCSVIndexWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	w, err := NewCSVIndexWriter(path)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}

	full := model.LLMResult{
		Model:    "m1",
		PromptID: "p1",
		Mode:     "completion",
		Metrics: model.LLMMetrics{
			DoneReason:            strPtr("stop"),
			InputTokens:           intPtr(10),
			OutputTokens:          intPtr(20),
			TotalTokens:           intPtr(30),
			OutputSeconds:         floatPtr(2.345),
			OutputTokensPerSecond: floatPtr(8.529),
		},
	}
	sparse := model.LLMResult{Model: "m2", PromptID: "p1", Mode: "chat"}

	if err := w.Write(full); err != nil {
		t.Fatalf("write full: %v", err)
	}
	if err := w.Write(sparse); err != nil {
		t.Fatalf("write sparse: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}

	if rows[1][0] != "m1" || rows[1][3] != "stop" || rows[1][6] != "30" || rows[1][11] != "8.529" {
		t.Errorf("unexpected full row: %v", rows[1])
	}

	// Absent metrics must be empty cells, not zeros.
	for i := 3; i < len(rows[2]); i++ {
		if rows[2][i] != "" {
			t.Errorf("sparse row column %d = %q, want empty", i, rows[2][i])
		}
	}
}
