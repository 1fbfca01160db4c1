package runid

import (
	"regexp"
	"strings"
	"testing"
)

var runIDPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z-[0-9a-f]{6}$`)
var runDirPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}Z-[0-9a-f]{6}$`)

func TestGenerateFormats(t *testing.T) {
	runID, runDirName, createdAt := Generate()

	if !runIDPattern.MatchString(runID) {
		t.Errorf("run id %q does not match expected format", runID)
	}
	if !runDirPattern.MatchString(runDirName) {
		t.Errorf("run dir name %q does not match expected format", runDirName)
	}
	if !strings.HasPrefix(runID, createdAt) {
		t.Errorf("created_at %q is not a prefix of run id %q", createdAt, runID)
	}
}

func TestGenerateSharedSuffixAndInstant(t *testing.T) {
	runID, runDirName, _ := Generate()

	// Both identifiers must carry the same suffix.
	idSuffix := runID[len(runID)-6:]
	dirSuffix := runDirName[len(runDirName)-6:]
	if idSuffix != dirSuffix {
		t.Errorf("suffix mismatch: run id %q vs dir name %q", idSuffix, dirSuffix)
	}

	// Reformatting the dir name timestamp must reproduce the run id timestamp.
	reformatted := strings.NewReplacer("_", "T", "-", ":").Replace(runDirName[:20])
	// The date portion legitimately contains "-"; only positions 10..19 differ.
	want := runID[:20]
	if reformatted[10:] != want[10:] || runDirName[:10] != runID[:10] {
		t.Errorf("timestamp mismatch: dir %q vs id %q", runDirName, runID)
	}
}

func TestGenerateUnique(t *testing.T) {
	id1, _, _ := Generate()
	id2, _, _ := Generate()
	if id1 == id2 {
		t.Errorf("two consecutive run ids are equal: %q", id1)
	}
}

func TestSanitizeFSName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain-name", "plain-name"},
		{"model/name:tag", "model_name_tag"},
		{`a<b>c:d"e/f\g|h?i*j`, "a_b_c_d_e_f_g_h_i_j"},
		{"2026-01-07T12:34:56Z", "2026-01-07T12_34_56Z"},
		{"ünïcødé", "ünïcødé"},
	}
	for _, tc := range cases {
		if got := SanitizeFSName(tc.in); got != tc.want {
			t.Errorf("SanitizeFSName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeFSNameIdempotent(t *testing.T) {
	inputs := []string{"model/name:tag", "already_safe", `x\y?z`}
	for _, in := range inputs {
		once := SanitizeFSName(in)
		twice := SanitizeFSName(once)
		if once != twice {
			t.Errorf("sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
