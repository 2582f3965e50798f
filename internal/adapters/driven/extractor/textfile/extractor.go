// Package textfile reads already-extracted document text from local files.
//
// Binary PDF decoding happens upstream of this tool; what reaches us is the
// text layer dumped to a file. The extractor only guards the boundary: file
// existence, size and UTF-8 validity.
package textfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aprova-labs/edital-cli/internal/core/domain"
	"github.com/aprova-labs/edital-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// maxFileSize bounds the input; edital text dumps are tens of KB to low MB.
const maxFileSize = 32 << 20

var supportedExtensions = map[string]bool{
	".txt":  true,
	".text": true,
	".md":   true,
}

// Extractor reads document text from the local filesystem.
type Extractor struct{}

// New creates a new text file extractor.
func New() *Extractor {
	return &Extractor{}
}

// Supports reports whether the file's extension is a known text format.
func (e *Extractor) Supports(uri string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(uri))]
}

// Extract reads the file and returns its content as UTF-8 text. Invalid byte
// sequences are replaced rather than rejected: broken encodings are exactly
// what the downstream pipeline diagnoses.
func (e *Extractor) Extract(ctx context.Context, uri string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !e.Supports(uri) {
		return "", fmt.Errorf("extract %s: %w", uri, domain.ErrUnsupportedInput)
	}

	info, err := os.Stat(uri)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", uri, err)
	}
	if info.Size() > maxFileSize {
		return "", fmt.Errorf("extract %s: file exceeds %d bytes: %w", uri, int64(maxFileSize), domain.ErrInvalidInput)
	}

	data, err := os.ReadFile(uri)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", uri, err)
	}

	return strings.ToValidUTF8(string(data), "�"), nil
}
