package parser

import (
	"regexp"
	"strings"

	"github.com/aprova-labs/edital-cli/internal/textnorm"
)

// Phase C scan bounds, in folded bytes like the Phase A window.
const (
	sectionValidateWindow = 2000
	sectionMarkerWindow   = 800
	headingNumberWindow   = 300
)

// annexMarker opens the syllabus annex; endMarkers close it.
var (
	annexMarker = "anexo ii"
	endMarkers  = []string{"anexo iii", "anexo iv", "anexo v"}

	contentPhrases = []string{"conteudos programaticos", "conteudo programatico"}

	// reNumberedList matches the start of a numbered syllabus list.
	reNumberedList = regexp.MustCompile(`\b\d{1,2}[.)]\s`)
)

// sectionSpan is the located syllabus region in folded offsets.
type sectionSpan struct {
	start, end int
	found      bool
	fallback   bool
}

// locateSection implements Phase C. Editais routinely mention "Anexo II" in a
// table of contents long before the annex itself, so every occurrence is
// validated and candidates are tried from the LAST occurrence backwards; the
// first one that validates wins. When none validates, the last occurrence of
// a programme-content phrase anywhere is used as a degraded fallback.
func locateSection(f *textnorm.Folded, subjects []subjectEntry) sectionSpan {
	candidates := annexOccurrences(f.Text)

	for i := len(candidates) - 1; i >= 0; i-- {
		pos := candidates[i]
		window := f.Window(pos, sectionValidateWindow)
		if validateSectionStart(window, subjects) {
			return sectionSpan{start: pos, end: sectionEnd(f, pos), found: true}
		}
	}

	// Degraded fallback: last mention of the programme content anywhere.
	last := -1
	for _, phrase := range contentPhrases {
		occ := textnorm.FindAll(f.Text, phrase)
		if len(occ) > 0 && occ[len(occ)-1] > last {
			last = occ[len(occ)-1]
		}
	}
	if last >= 0 {
		return sectionSpan{start: last, end: sectionEnd(f, last), found: true, fallback: true}
	}

	return sectionSpan{}
}

// annexOccurrences finds "anexo ii" occurrences that are not actually
// "anexo iii" (or longer roman numerals).
func annexOccurrences(folded string) []int {
	var out []int
	for _, pos := range textnorm.FindAll(folded, annexMarker) {
		end := pos + len(annexMarker)
		if end < len(folded) && folded[end] == 'i' {
			continue
		}
		out = append(out, pos)
	}
	return out
}

// validateSectionStart applies the three checks on a candidate's first 2,000
// characters: the marker sits in the first 800, a programme-content phrase
// appears, and at least one official subject heading is followed by a
// numbered list within 300 characters.
func validateSectionStart(window string, subjects []subjectEntry) bool {
	head := window
	if len(head) > sectionMarkerWindow {
		head = head[:sectionMarkerWindow]
	}
	if !strings.Contains(head, annexMarker) {
		return false
	}

	hasPhrase := false
	for _, phrase := range contentPhrases {
		if strings.Contains(window, phrase) {
			hasPhrase = true
			break
		}
	}
	if !hasPhrase {
		return false
	}

	for _, e := range subjects {
		for _, alias := range e.Aliases {
			for _, pos := range aliasOccurrences(window, alias) {
				tail := window[pos+len(alias):]
				if len(tail) > headingNumberWindow {
					tail = tail[:headingNumberWindow]
				}
				if reNumberedList.MatchString(tail) {
					return true
				}
			}
		}
	}
	return false
}

// sectionEnd finds where the syllabus region stops: the next closing annex
// marker after start, or the end of the document.
func sectionEnd(f *textnorm.Folded, start int) int {
	end := f.Len()
	for _, marker := range endMarkers {
		for _, pos := range textnorm.FindAll(f.Text, marker) {
			if pos > start && pos < end {
				end = pos
			}
		}
	}
	return end
}
