package domain

// Category is the coarse triage of raw extracted text.
type Category int

const (
	// CategoryValidText indicates enough structured text to parse.
	CategoryValidText Category = iota

	// CategoryFragmented indicates partial or shredded extraction.
	CategoryFragmented

	// CategoryScanned indicates a scanned image with no usable text layer.
	CategoryScanned
)

// String returns the wire name of the category.
func (c Category) String() string {
	switch c {
	case CategoryValidText:
		return "valid_text"
	case CategoryFragmented:
		return "fragmented"
	case CategoryScanned:
		return "scanned"
	default:
		return "unknown"
	}
}

// Classification is the classifier's verdict on raw document text.
// It is derived purely from the raw text and never mutated.
type Classification struct {
	// Category is the triage result.
	Category Category

	// Length is the raw text length in runes.
	Length int

	// LineCount is the number of lines (newline count + 1).
	LineCount int

	// Density is Length / LineCount in runes per line.
	Density float64

	// HasAnchorKeyword reports whether the text mentions the syllabus annex
	// or the programme-content phrase anywhere, accent/case-insensitively.
	HasAnchorKeyword bool
}
