/*
PURPOSE:
  Generates run identifiers and sanitizes strings for filesystem use.
  Every evaluation run gets a timestamped, collision-resistant identity.

REQUIREMENTS:
  User-specified:
  - Run ids must sort by timestamp and never collide across machines.
  - Model names (which may contain "/" and ":") must be usable as filenames.

  Implementation-discovered:
  - A 3-byte crypto-random suffix (6 hex chars, 2^24 space) is enough to
    make same-second collisions vanishingly unlikely.
  - run_id and run_dir_name must come from the same instant and the same
    entropy draw, or the summary and the directory drift apart.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine (drivers), internal/output (filenames)

ERROR HANDLING:
  - None. crypto/rand.Read does not fail on supported platforms.

IMPLEMENTATION RULES:
  - UTC, second resolution.
  - Replace only <>:"/\|?* when sanitizing; pass everything else through,
    including Unicode.

USAGE:
  id, dirName, createdAt := runid.Generate()
  safe := runid.SanitizeFSName("model/name:tag")

SELF-HEALING INSTRUCTIONS:
  - None.

RELATED FILES:
  - internal/output/store.go

MAINTENANCE:
  - None expected; the formats are part of the persisted layout contract.
*/

package runid

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"
)

// fsUnsafe maps the characters that are invalid in filenames on at least
// one common filesystem to underscores.
var fsUnsafe = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_",
	"/", "_", `\`, "_", "|", "_", "?", "_", "*", "_",
)

// Generate returns the identity triple for a new run:
//
//	runID      "2026-01-08T12:34:56Z-a3f2c1"  (unique, sortable)
//	runDirName "2026-01-08_12-34-56Z-a3f2c1"  (filesystem-safe)
//	createdAt  "2026-01-08T12:34:56Z"         (record metadata)
//
// All three derive from the same UTC instant; runID and runDirName share
// the same random suffix.
func Generate() (runID, runDirName, createdAt string) {
	now := time.Now().UTC()

	suffix := make([]byte, 3)
	if _, err := rand.Read(suffix); err != nil {
		panic(err)
	}
	hexSuffix := hex.EncodeToString(suffix)

	createdAt = now.Format("2006-01-02T15:04:05Z")
	runID = createdAt + "-" + hexSuffix
	runDirName = now.Format("2006-01-02_15-04-05Z") + "-" + hexSuffix

	return runID, runDirName, createdAt
}

// SanitizeFSName replaces every occurrence of <>:"/\|?* with "_" so the
// result is safe as a file or directory name on Windows, macOS and Linux.
func SanitizeFSName(name string) string {
	return fsUnsafe.Replace(name)
}
