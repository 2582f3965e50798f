// Package prevalidate detects structural risk in raw extracted text before
// any repair touches it.
//
// It produces five independent boolean flags. Every flag is always computed,
// even when earlier ones already fired: the diagnostic aggregator and the
// policy engine need the full picture, not the first hit.
package prevalidate

import (
	"strings"
	"unicode/utf8"

	"github.com/aprova-labs/edital-cli/internal/core/domain"
	"github.com/aprova-labs/edital-cli/internal/textnorm"
)

// Thresholds tuned against a corpus of real editais. Changing any of them is
// a behaviour change and requires new golden fixtures.
const (
	minTextLength      = 800
	minDensity         = 8.0
	maxShortTokens     = 3
	shortLineThreshold = 35.0
	repeatLineMaxLen   = 100
	repeatLineLimit    = 3
)

// Required vocabulary: a real edital mentions at least one of these.
var requiredKeywords = []string{"conteudo", "programatico", "disciplina"}

// Check computes the five risk flags on the ORIGINAL raw text in one linear
// pass over its lines. It is pure and total.
func Check(raw string) domain.Prevalidation {
	length := utf8.RuneCountInString(raw)
	lines := strings.Split(raw, "\n")
	lineCount := len(lines)
	density := float64(length) / float64(lineCount)

	nonEmpty := 0
	shortLines := 0
	repeats := make(map[string]int)
	repetitiveNoise := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmpty++

		tokens := len(strings.Fields(trimmed))
		if tokens >= 1 && tokens <= maxShortTokens {
			shortLines++
		}

		if utf8.RuneCountInString(trimmed) < repeatLineMaxLen {
			repeats[trimmed]++
			if repeats[trimmed] > repeatLineLimit {
				repetitiveNoise = true
			}
		}
	}

	shortLinePercent := 0.0
	if nonEmpty > 0 {
		shortLinePercent = float64(shortLines) / float64(nonEmpty) * 100
	}

	normalized := textnorm.Normalize(raw)
	missingKeywords := true
	for _, kw := range requiredKeywords {
		if strings.Contains(normalized, kw) {
			missingKeywords = false
			break
		}
	}

	return domain.Prevalidation{
		Flags: domain.PrevalidationFlags{
			TextInsufficient: length < minTextLength,
			LowDensity:       density < minDensity,
			MissingKeywords:  missingKeywords,
			BrokenStructure:  shortLinePercent > shortLineThreshold,
			RepetitiveNoise:  repetitiveNoise,
		},
		Stats: domain.PrevalidationStats{
			Length:           length,
			LineCount:        lineCount,
			Density:          density,
			ShortLineCount:   shortLines,
			ShortLinePercent: shortLinePercent,
		},
	}
}
