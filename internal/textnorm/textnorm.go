// Package textnorm provides accent- and case-insensitive text folding used by
// every stage of the parsing pipeline.
//
// All positional work (locating markers, headings, scan windows) happens on the
// folded form; the original text is never modified here, so anything shown to
// the user keeps its accents. Folded byte offsets can be mapped back to the
// source string through Folded.Source.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Folded is a lowercased, diacritic-free copy of a source string together with
// a byte-offset map back into the source.
type Folded struct {
	// Text is the folded text. Whitespace and line structure are preserved.
	Text string

	// idx[i] is the byte offset in the source string of the source rune that
	// produced folded byte i. idx has one extra sentinel entry equal to
	// len(source) so that Source(len(Text)) is valid.
	idx []int
}

// Fold produces the folded form of s: Unicode canonical decomposition (NFD),
// combining marks removed, remaining runes lowercased. Line breaks and
// whitespace are kept as-is.
func Fold(s string) *Folded {
	var b strings.Builder
	b.Grow(len(s))
	idx := make([]int, 0, len(s)+1)

	for srcOff, r := range s {
		decomposed := norm.NFD.String(string(r))
		for _, d := range decomposed {
			if unicode.Is(unicode.Mn, d) {
				continue
			}
			lower := unicode.ToLower(d)
			start := b.Len()
			b.WriteRune(lower)
			for i := start; i < b.Len(); i++ {
				idx = append(idx, srcOff)
			}
		}
	}
	idx = append(idx, len(s))

	return &Folded{Text: b.String(), idx: idx}
}

// Source maps a byte offset in the folded text back to the byte offset in the
// source string. Offsets past the end clamp to len(source).
func (f *Folded) Source(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(f.idx) {
		return f.idx[len(f.idx)-1]
	}
	return f.idx[i]
}

// Len returns the length of the folded text in bytes.
func (f *Folded) Len() int {
	return len(f.Text)
}

// Window returns f.Text[start:start+size], clamped to the folded text bounds.
func (f *Folded) Window(start, size int) string {
	if start < 0 {
		start = 0
	}
	if start >= len(f.Text) {
		return ""
	}
	end := start + size
	if end > len(f.Text) {
		end = len(f.Text)
	}
	return f.Text[start:end]
}

// Normalize folds s and additionally collapses every whitespace run to a
// single space and trims the result. Use it for keyword checks where position
// does not matter.
func Normalize(s string) string {
	folded := Fold(s).Text
	return strings.Join(strings.Fields(folded), " ")
}

// FindAll returns the start offsets of every non-overlapping occurrence of
// needle in haystack. The needle is folded before searching; the haystack is
// expected to be folded already.
func FindAll(haystack, needle string) []int {
	needle = Fold(needle).Text
	if needle == "" {
		return nil
	}

	var out []int
	for from := 0; ; {
		i := strings.Index(haystack[from:], needle)
		if i < 0 {
			break
		}
		out = append(out, from+i)
		from += i + len(needle)
	}
	return out
}

// Contains reports whether the folded haystack contains the needle, folding
// the needle first.
func Contains(haystack, needle string) bool {
	return strings.Contains(haystack, Fold(needle).Text)
}
