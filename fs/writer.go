// Package fs provides file-based storage for preprocessed page text.
package fs

import (
	"encoding/binary"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/lpforge/lpextract"
)

// Ensure Writer implements lpextract.PreprocessedWriter at compile time.
var _ lpextract.PreprocessedWriter = (*Writer)(nil)

// Writer persists preprocessed text as debugging artifacts in a directory.
type Writer struct {
	baseDir string
	now     func() time.Time
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir, now: time.Now}
}

// Write stores the preprocessed text for a URL and returns the path it was
// written to. Files are named by a short content hash so re-runs of the
// same page overwrite rather than accumulate.
func (w *Writer) Write(url string, text string) (string, error) {
	fullPath := filepath.Join(w.baseDir, FileName(url))

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	content := Format(url, text, w.now().UTC())
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		return "", err
	}
	return fullPath, nil
}

// FileName derives the artifact file name from the URL.
// Example: https://example.com/product → preprocessed_a1b2c3d4e5f6.txt
func FileName(url string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(url))
	return "preprocessed_" + hex.EncodeToString(b)[:12] + ".txt"
}

// Format renders the artifact with a source header.
func Format(url, text string, at time.Time) string {
	var b strings.Builder
	b.WriteString("source: ")
	b.WriteString(url)
	b.WriteString("\nwritten: ")
	b.WriteString(at.Format(time.RFC3339))
	b.WriteString("\n\n")
	b.WriteString(text)
	b.WriteString("\n")
	return b.String()
}
