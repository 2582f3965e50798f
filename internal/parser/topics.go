package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/aprova-labs/edital-cli/internal/textnorm"
)

// Phase D bounds.
const (
	maxTopicsPerSubject   = 120
	topicMinLen           = 3
	topicMaxLen           = 240
	signatureWindow       = 100
	signatureNumberWindow = 200
	longBlockThreshold    = 180
)

var (
	// reInlineItem finds "N. text" / "N) text" item markers inside a line.
	reInlineItem = regexp.MustCompile(`(^|\s)\d{1,3}[.)]\s+`)

	// reLeadingItem matches a line that IS a single numbered item.
	reLeadingItem = regexp.MustCompile(`^\s*\d{1,3}[.)]\s*(.+)$`)

	// reEnumSplit finds implicit enumerations: digits, roman numerals or a
	// single letter followed by a separator.
	reEnumSplit = regexp.MustCompile(`\b(?:\d{1,2}|[ivxl]{1,4}|[a-z])[.)]\s+`)

	// reEdictNumber matches edict references like "nº 12/2024".
	reEdictNumber = regexp.MustCompile(`n[º°o.]?\s*\d+\s*/\s*\d{4}`)

	// reNumberStart matches lines starting with a bare number.
	reNumberStart = regexp.MustCompile(`^\s*\d`)
)

// headingMatch is an official subject heading located inside the syllabus
// section, in folded section offsets.
type headingMatch struct {
	entry subjectEntry
	pos   int
	exact bool
}

// findHeading locates one subject inside the folded section text: exact
// alias match first, then a token-signature match that tolerates headings
// with extra words ("NOÇÕES BÁSICAS DE INFORMÁTICA"). The signature match
// must be confirmed by a numbered list shortly after, or it is discarded.
func findHeading(section string, e subjectEntry) (headingMatch, bool) {
	if pos := firstAlias(section, e); pos >= 0 {
		return headingMatch{entry: e, pos: pos, exact: true}, true
	}

	tokens := contentTokens(e)
	if len(tokens) == 0 {
		return headingMatch{}, false
	}

	for _, pos := range aliasOccurrences(section, tokens[0]) {
		window := section[pos:]
		if len(window) > signatureWindow {
			window = window[:signatureWindow]
		}

		all := true
		for _, tok := range tokens[1:] {
			if len(aliasOccurrences(window, tok)) == 0 {
				all = false
				break
			}
		}
		if !all {
			continue
		}

		confirm := section[pos:]
		if len(confirm) > signatureWindow+signatureNumberWindow {
			confirm = confirm[:signatureWindow+signatureNumberWindow]
		}
		if reNumberedList.MatchString(confirm) {
			return headingMatch{entry: e, pos: pos}, true
		}
	}

	return headingMatch{}, false
}

// extractTopics pulls topic strings out of one subject's section text (source
// text, accents preserved). Per line, in precedence order: multiple inline
// numbered items, a single numbered item, free-text segmentation, then the
// whole line. Candidates matching one of the subject's own name aliases are
// dropped, as are boilerplate and out-of-bounds strings; at most 120 topics
// survive.
func extractTopics(sectionText string, exclude []string) []string {
	var topics []string
	seen := make(map[string]bool)

	add := func(candidate string) {
		if len(topics) >= maxTopicsPerSubject {
			return
		}
		cleaned, ok := cleanTopic(candidate)
		if !ok {
			return
		}
		key := textnorm.Normalize(cleaned)
		for _, alias := range exclude {
			if key == alias {
				return
			}
		}
		if seen[key] {
			return
		}
		seen[key] = true
		topics = append(topics, cleaned)
	}

	for _, line := range strings.Split(sectionText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isAllCapsHeading(line) {
			continue
		}

		if items := splitInlineItems(line); len(items) > 1 {
			for _, it := range items {
				add(it)
			}
			continue
		}

		if m := reLeadingItem.FindStringSubmatch(line); m != nil {
			add(m[1])
			continue
		}

		if !reNumberStart.MatchString(line) {
			if parts := segmentFreeText(line); len(parts) > 1 {
				for _, p := range parts {
					add(p)
				}
				continue
			}
		}

		add(line)
	}

	return topics
}

// splitInlineItems splits a line holding several "N. text" items. Fewer than
// two markers means the line is not an inline enumeration.
func splitInlineItems(line string) []string {
	locs := reInlineItem.FindAllStringIndex(line, -1)
	if len(locs) < 2 {
		return nil
	}

	var items []string
	for i, loc := range locs {
		start := loc[1]
		end := len(line)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		items = append(items, line[start:end])
	}
	return items
}

// segmentFreeText splits a non-numbered line into topic parts: semicolons
// first, then implicit enumerations, then sentence/clause splitting for long
// blocks.
func segmentFreeText(line string) []string {
	if parts := nonEmptyParts(strings.Split(line, ";")); len(parts) > 1 {
		return parts
	}

	if parts := nonEmptyParts(reEnumSplit.Split(line, -1)); len(parts) > 1 {
		return parts
	}

	if len([]rune(line)) > longBlockThreshold {
		if parts := splitSentences(line); len(parts) > 1 {
			return parts
		}
		if parts := splitCommaBeforeCapital(line); len(parts) > 1 {
			return parts
		}
	}

	return nil
}

// splitSentences splits on ". " followed by a capital letter.
func splitSentences(s string) []string {
	var parts []string
	start := 0
	runes := []rune(s)
	for i := 0; i < len(runes)-1; i++ {
		if runes[i] != '.' {
			continue
		}
		j := i + 1
		for j < len(runes) && runes[j] == ' ' {
			j++
		}
		if j == i+1 || j >= len(runes) || !unicode.IsUpper(runes[j]) {
			continue
		}
		parts = append(parts, string(runes[start:i]))
		start = j
		i = j - 1
	}
	parts = append(parts, string(runes[start:]))
	return nonEmptyParts(parts)
}

// splitCommaBeforeCapital splits on ", " when the next rune is a capital.
func splitCommaBeforeCapital(s string) []string {
	var parts []string
	start := 0
	runes := []rune(s)
	for i := 0; i < len(runes)-1; i++ {
		if runes[i] != ',' {
			continue
		}
		j := i + 1
		for j < len(runes) && runes[j] == ' ' {
			j++
		}
		if j == i+1 || j >= len(runes) || !unicode.IsUpper(runes[j]) {
			continue
		}
		parts = append(parts, string(runes[start:i]))
		start = j
		i = j - 1
	}
	parts = append(parts, string(runes[start:]))
	return nonEmptyParts(parts)
}

// nonEmptyParts trims every part and drops empties.
func nonEmptyParts(parts []string) []string {
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// cleanTopic trims a candidate, strips trailing punctuation and applies the
// boilerplate and length filters.
func cleanTopic(s string) (string, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, " .,;:-")
	if s == "" {
		return "", false
	}

	n := len([]rune(s))
	if n < topicMinLen || n > topicMaxLen {
		return "", false
	}

	folded := textnorm.Fold(s).Text
	for _, term := range boilerplateTerms {
		if strings.Contains(folded, term) {
			return "", false
		}
	}
	if reEdictNumber.MatchString(folded) {
		return "", false
	}

	return s, true
}

// isAllCapsHeading reports whether a line is an all-caps heading: it has
// letters and none of them lowercase.
func isAllCapsHeading(line string) bool {
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
