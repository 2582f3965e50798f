package parser

import (
	"sort"

	"github.com/aprova-labs/edital-cli/internal/textnorm"
)

// Phase A scan bounds. Windows here and in the other phases are byte
// offsets into the folded text, where pt-BR letters fold to single ASCII
// bytes, so a byte window and a character window coincide.
const (
	subjectScanWindow   = 5000
	minOfficialSubjects = 3
)

// tableMarkers announce the weighting table ("Quadro 1" and equivalents).
var tableMarkers = []string{
	"quadro 1",
	"estrutura da prova",
	"estrutura das provas",
	"quadro de provas",
}

// findTableMarker returns the folded offset just past the earliest weighting
// table marker, or -1 when no marker exists.
func findTableMarker(f *textnorm.Folded) int {
	best := -1
	for _, marker := range tableMarkers {
		occ := textnorm.FindAll(f.Text, marker)
		if len(occ) == 0 {
			continue
		}
		end := occ[0] + len(marker)
		if best == -1 || occ[0]+len(marker) < best {
			best = end
		}
	}
	return best
}

// aliasOccurrences returns boundary-checked occurrences of a folded alias:
// matches embedded inside a longer word do not count ("etica" inside
// "matematica").
func aliasOccurrences(hay, alias string) []int {
	var out []int
	for _, pos := range textnorm.FindAll(hay, alias) {
		if pos > 0 && isFoldedLetter(hay[pos-1]) {
			continue
		}
		end := pos + len(alias)
		if end < len(hay) && isFoldedLetter(hay[end]) {
			continue
		}
		out = append(out, pos)
	}
	return out
}

// isFoldedLetter reports whether b is a letter byte in folded text. Folded
// text is lowercase and diacritic-free, so ASCII covers the exam vocabulary.
func isFoldedLetter(b byte) bool {
	return b >= 'a' && b <= 'z'
}

// firstAlias returns the earliest boundary-checked occurrence of any of the
// entry's aliases in hay, or -1.
func firstAlias(hay string, e subjectEntry) int {
	best := -1
	for _, alias := range e.Aliases {
		for _, pos := range aliasOccurrences(hay, alias) {
			if best == -1 || pos < best {
				best = pos
			}
			break // occurrences are ordered; the first is the earliest
		}
	}
	return best
}

// fallbackEntries resolves fallback subject names to vocabulary entries.
// Unknown names still participate, with the folded name as the only alias.
// Empty input means the built-in list.
func fallbackEntries(names []string) []subjectEntry {
	if len(names) == 0 {
		names = fallbackSubjects
	}
	out := make([]subjectEntry, 0, len(names))
	for _, name := range names {
		if e, ok := entryByCanonical(name); ok {
			out = append(out, e)
			continue
		}
		out = append(out, subjectEntry{
			Canonical: name,
			Aliases:   []string{textnorm.Normalize(name)},
		})
	}
	return out
}

// resolveOfficialSubjects implements Phase A: the official subject list comes
// from the weighting table when at least 3 canonical subjects appear near its
// marker; otherwise the fallback list stands in, so that a single missing
// marker never produces zero subjects.
func resolveOfficialSubjects(f *textnorm.Folded, fallback []subjectEntry) (subjects []subjectEntry, markerPos int, fromFallback bool) {
	markerPos = findTableMarker(f)
	if markerPos >= 0 {
		window := f.Window(markerPos, subjectScanWindow)

		type hit struct {
			entry subjectEntry
			pos   int
		}
		var hits []hit
		for _, e := range vocabulary {
			if pos := firstAlias(window, e); pos >= 0 {
				hits = append(hits, hit{entry: e, pos: pos})
			}
		}

		if len(hits) >= minOfficialSubjects {
			sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
			for _, h := range hits {
				subjects = append(subjects, h.entry)
			}
			return subjects, markerPos, false
		}
	}

	return fallback, markerPos, true
}
