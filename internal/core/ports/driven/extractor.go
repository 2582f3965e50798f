package driven

import "context"

// TextExtractor produces the raw text of a document from its source location.
// Extraction quality is the pipeline's whole problem domain, so failures are
// data, not just errors: a failed extraction still flows through the pipeline
// as an extraction-error report.
type TextExtractor interface {
	// Extract reads the document at uri and returns its raw text.
	Extract(ctx context.Context, uri string) (string, error)

	// Supports reports whether this extractor handles the given uri.
	Supports(uri string) bool
}
