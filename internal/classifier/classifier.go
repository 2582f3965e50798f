// Package classifier triages raw extracted text into valid, fragmented or
// scanned before any other stage runs.
//
// The decision is purely size/density based plus one anchor-keyword check:
// a short document that never mentions the syllabus annex or the programme
// content is almost certainly a scanned image whose text layer is empty.
package classifier

import (
	"strings"
	"unicode/utf8"

	"github.com/aprova-labs/edital-cli/internal/core/domain"
	"github.com/aprova-labs/edital-cli/internal/textnorm"
)

// Threshold lengths in runes. Tuned against a corpus of real editais; changing
// them changes behaviour and requires new golden fixtures.
const (
	scannedMaxLength = 1000
	fragmentedMinLen = 500
	fragmentedMaxLen = 2000
)

// Anchor keywords that a real edital text layer always carries somewhere.
var anchorKeywords = []string{"anexo", "conteudo programatico"}

// Classify triages raw text. It is pure, total and linear in the input size:
// any string, including empty, yields exactly one category.
func Classify(raw string) domain.Classification {
	length := utf8.RuneCountInString(raw)
	lineCount := strings.Count(raw, "\n") + 1
	density := float64(length) / float64(lineCount)

	normalized := textnorm.Normalize(raw)
	hasAnchor := false
	for _, kw := range anchorKeywords {
		if strings.Contains(normalized, kw) {
			hasAnchor = true
			break
		}
	}

	category := domain.CategoryValidText
	switch {
	case length < scannedMaxLength && !hasAnchor:
		category = domain.CategoryScanned
	case length >= fragmentedMinLen && length < fragmentedMaxLen:
		category = domain.CategoryFragmented
	}

	return domain.Classification{
		Category:         category,
		Length:           length,
		LineCount:        lineCount,
		Density:          density,
		HasAnchorKeyword: hasAnchor,
	}
}
