package driving

import (
	"context"

	"github.com/aprova-labs/edital-cli/internal/core/domain"
)

// Pipeline runs the full processing pipeline over a document and returns its
// report. All methods are total: pathological input degrades to a terminal
// report, never to an error, except for caller mistakes (nil input) and
// infrastructure failures surfaced by the adapters.
type Pipeline interface {
	// Process extracts the document at uri and processes its text.
	Process(ctx context.Context, uri string) (*domain.Report, error)

	// ProcessText processes already-extracted raw text. uri is recorded on
	// the report when non-empty.
	ProcessText(ctx context.Context, uri, rawText string) (*domain.Report, error)

	// ProcessExtractionError builds the terminal report for a document whose
	// upstream text extraction failed. Partial text, when any was recovered,
	// still runs through the read-only stages.
	ProcessExtractionError(ctx context.Context, uri, partialText string) (*domain.Report, error)
}
