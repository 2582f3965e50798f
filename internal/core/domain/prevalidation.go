package domain

// PrevalidationFlags are five independent structural-risk signals computed on
// the ORIGINAL raw text, before any repair. All five are always computed; no
// flag short-circuits another.
type PrevalidationFlags struct {
	// TextInsufficient is set when the text is shorter than 800 runes.
	TextInsufficient bool

	// LowDensity is set when the average line holds fewer than 8 runes.
	LowDensity bool

	// MissingKeywords is set when none of the expected edital vocabulary
	// ("conteudo", "programatico", "disciplina") appears in the text.
	MissingKeywords bool

	// BrokenStructure is set when more than 35% of the non-empty lines have
	// only 1-3 tokens, a signature of shredded column extraction.
	BrokenStructure bool

	// RepetitiveNoise is set when a single short line repeats more than 3
	// times verbatim, a signature of headers/footers bleeding into the text.
	RepetitiveNoise bool
}

// PrevalidationStats are the measurements behind the flags.
type PrevalidationStats struct {
	Length           int
	LineCount        int
	Density          float64
	ShortLineCount   int
	ShortLinePercent float64
}

// Prevalidation bundles the flags with their supporting measurements.
type Prevalidation struct {
	Flags PrevalidationFlags
	Stats PrevalidationStats
}

// Any reports whether at least one risk flag is active.
func (f PrevalidationFlags) Any() bool {
	return f.TextInsufficient || f.LowDensity || f.MissingKeywords ||
		f.BrokenStructure || f.RepetitiveNoise
}
