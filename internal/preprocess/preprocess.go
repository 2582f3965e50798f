// Package preprocess repairs extracted PDF text before parsing.
//
// Every transformation is deterministic, conservative and idempotent as a
// whole: line endings are normalised, invisible spacing characters become
// ordinary spaces, hyphen-broken words are rejoined and narrow line-join
// rules remove breaks left by the PDF text layer. Words are never reordered,
// rewritten or dropped; only separators change.
package preprocess

import (
	"regexp"
	"strings"
	"unicode"
)

// joinMaxTokens bounds how long a fragment may be and still be glued onto a
// comma-ending line.
const joinMaxTokens = 3

// Preprocessor holds the precompiled patterns. Safe for concurrent use.
type Preprocessor struct {
	lineEndings    *strings.Replacer
	invisibles     *strings.Replacer
	hyphenBreak    *regexp.Regexp
	hspaceRuns     *regexp.Regexp
	blankLineRuns  *regexp.Regexp
	numberedMarker *regexp.Regexp
}

// New creates a Preprocessor with all patterns compiled.
func New() *Preprocessor {
	return &Preprocessor{
		lineEndings: strings.NewReplacer("\r\n", "\n", "\r", "\n"),

		// Invisible spacing characters become an ordinary space: NBSP,
		// figure/narrow spaces, zero-width spaces/joiners, word joiner, BOM.
		invisibles: strings.NewReplacer(
			"\u00a0", " ",
			"\u2007", " ",
			"\u202f", " ",
			"\u200b", " ",
			"\u200c", " ",
			"\u200d", " ",
			"\u2060", " ",
			"\ufeff", " ",
		),

		// A letter, a hyphen, a newline and a letter, with optional spaces
		// around the hyphen and after the break: the word was split by the
		// line break. Extractors often leave a trailing space between the
		// hyphen and the newline.
		hyphenBreak: regexp.MustCompile(`(\p{L})[ \t]*-[ \t]*\n[ \t]*(\p{L})`),

		hspaceRuns:    regexp.MustCompile(`[ \t]{2,}`),
		blankLineRuns: regexp.MustCompile(`\n{3,}`),

		numberedMarker: regexp.MustCompile(`^\d{1,3}[.)]`),
	}
}

// defaultPreprocessor backs the package-level Run.
var defaultPreprocessor = New()

// Run repairs s with the default preprocessor.
func Run(s string) string {
	return defaultPreprocessor.Run(s)
}

// Run applies the repair sequence in its fixed order. Running the output
// through Run again produces the same string.
func (p *Preprocessor) Run(s string) string {
	s = p.lineEndings.Replace(s)
	s = p.invisibles.Replace(s)
	s = p.hyphenBreak.ReplaceAllString(s, "${1}${2}")
	s = p.hspaceRuns.ReplaceAllString(s, " ")
	s = p.blankLineRuns.ReplaceAllString(s, "\n\n")
	s = p.joinLines(s)
	return s
}

// joinLines removes line breaks under two narrow conditions: a line ending in
// ";" or ":" continues on the next non-empty line, and a line ending in ","
// continues on the next line when that line is a short fragment rather than a
// heading. Lines are never reordered and no token is dropped.
func (p *Preprocessor) joinLines(s string) string {
	lines := strings.Split(s, "\n")

	for i := 0; i < len(lines); i++ {
		cur := strings.TrimRight(p.invisibles.Replace(lines[i]), " \t")

		for {
			if strings.HasSuffix(cur, ";") || strings.HasSuffix(cur, ":") {
				j := i + 1
				for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
					j++
				}
				if j >= len(lines) {
					break
				}
				next := strings.TrimSpace(p.invisibles.Replace(lines[j]))
				cur = cur + " " + next
				lines = append(lines[:i+1], lines[j+1:]...)
				continue
			}

			if strings.HasSuffix(cur, ",") && i+1 < len(lines) {
				next := strings.TrimSpace(p.invisibles.Replace(lines[i+1]))
				if p.joinableFragment(next) {
					cur = cur + " " + next
					lines = append(lines[:i+1], lines[i+2:]...)
					continue
				}
			}

			break
		}

		lines[i] = cur
	}

	return strings.Join(lines, "\n")
}

// joinableFragment reports whether a line may be glued onto a comma-ending
// predecessor: 1-3 tokens and not heading-like.
func (p *Preprocessor) joinableFragment(line string) bool {
	if line == "" {
		return false
	}
	tokens := len(strings.Fields(line))
	if tokens < 1 || tokens > joinMaxTokens {
		return false
	}
	return !p.looksLikeHeading(line)
}

// looksLikeHeading reports whether a line is all-caps or starts with a
// numbered-list marker.
func (p *Preprocessor) looksLikeHeading(line string) bool {
	if p.numberedMarker.MatchString(line) {
		return true
	}

	hasLetter := false
	for _, r := range line {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
