// Package parser is the canonical structural extractor of the pipeline.
//
// It runs four phases over the preprocessed text, with no backtracking across
// phases: (A) resolve the official subject list from the weighting table or a
// fixed fallback; (B) extract per-subject exam weights when a weighting table
// exists; (C) locate and validate the syllabus section; (D) partition the
// section into per-subject spans and extract topics. The finalizer then
// canonicalises names, merges duplicates and computes confidence statistics.
//
// Every phase works on a folded (lowercase, diacritic-free) copy of the text
// and maps matches back to the original through the fold's index, so topics
// keep their accents. The parser is pure and total: any input string yields a
// result, possibly empty and low-confidence, never an error.
package parser

import (
	"sort"
	"strings"

	"github.com/aprova-labs/edital-cli/internal/core/domain"
	"github.com/aprova-labs/edital-cli/internal/textnorm"
)

// Result is the raw parser output before diagnostics aggregation.
type Result struct {
	Disciplines []domain.Discipline
	Weights     *domain.WeightTable
	Debug       domain.ParseDebug
	Stats       domain.ParseStats
}

// rawDiscipline is a subject with topics before finalisation.
type rawDiscipline struct {
	entry        subjectEntry
	originalName string
	topics       []string
	start, end   int
	found        bool
	failure      string
}

// Options tune a parse run. The zero value matches the default behaviour.
type Options struct {
	// FallbackSubjects overrides the built-in subject list used when the
	// document names no usable weighting table.
	FallbackSubjects []string
}

// Parse extracts the structured syllabus from preprocessed document text.
func Parse(processed string) *Result {
	return ParseWith(processed, Options{})
}

// ParseWith is Parse with explicit options.
func ParseWith(processed string, opts Options) *Result {
	f := textnorm.Fold(processed)

	subjects, markerPos, fromFallback := resolveOfficialSubjects(f, fallbackEntries(opts.FallbackSubjects))
	weights := extractWeights(f, markerPos, subjects)
	span := locateSection(f, subjects)

	raw := make([]rawDiscipline, 0, len(subjects))
	if span.found {
		raw = partitionSection(f, processed, span, subjects)
	} else {
		for _, e := range subjects {
			raw = append(raw, rawDiscipline{
				entry:        e,
				originalName: e.Canonical,
				failure:      "syllabus section not found",
			})
		}
	}

	disciplines, stats := finalize(raw, subjects, span.found)

	debug := domain.ParseDebug{
		MarkerFound:          markerPos >= 0,
		WeightTableFound:     weights != nil,
		OfficialFromFallback: fromFallback,
		SectionFound:         span.found,
		SectionFallback:      span.fallback,
		SectionStart:         span.start,
		SectionEnd:           span.end,
		Subjects:             subjectDebug(raw, disciplines),
	}

	return &Result{
		Disciplines: disciplines,
		Weights:     weights,
		Debug:       debug,
		Stats:       stats,
	}
}

// partitionSection implements Phase D's partition: every located heading
// starts a span that runs to the next heading (or the section end), and
// topics are extracted from the source text of each span.
func partitionSection(f *textnorm.Folded, processed string, span sectionSpan, subjects []subjectEntry) []rawDiscipline {
	section := f.Text[span.start:span.end]

	var matches []headingMatch
	missing := make(map[string]string)
	for _, e := range subjects {
		m, ok := findHeading(section, e)
		if !ok {
			missing[e.Canonical] = "heading not found in syllabus section"
			continue
		}
		matches = append(matches, m)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })

	spanOf := make(map[string]rawDiscipline, len(subjects))
	for i, m := range matches {
		start := span.start + m.pos
		end := span.end
		if i+1 < len(matches) {
			end = span.start + matches[i+1].pos
		}

		srcStart := f.Source(start)
		srcEnd := f.Source(end)
		topics := extractTopics(processed[srcStart:srcEnd], m.entry.Aliases)

		spanOf[m.entry.Canonical] = rawDiscipline{
			entry:        m.entry,
			originalName: strings.TrimSpace(firstLine(processed[srcStart:srcEnd])),
			topics:       topics,
			start:        start,
			end:          end,
			found:        true,
		}
	}

	out := make([]rawDiscipline, 0, len(subjects))
	for _, e := range subjects {
		if d, ok := spanOf[e.Canonical]; ok {
			out = append(out, d)
			continue
		}
		out = append(out, rawDiscipline{
			entry:        e,
			originalName: e.Canonical,
			failure:      missing[e.Canonical],
		})
	}
	return out
}

// firstLine returns the first non-empty line of s.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return s
}

// subjectDebug builds the per-subject debug records in official order.
func subjectDebug(raw []rawDiscipline, disciplines []domain.Discipline) []domain.SubjectDebug {
	topicCount := make(map[string]int, len(disciplines))
	for _, d := range disciplines {
		topicCount[d.Name] = len(d.Topics)
	}

	out := make([]domain.SubjectDebug, 0, len(raw))
	for _, r := range raw {
		name := canonicalName(r.entry.Canonical)
		out = append(out, domain.SubjectDebug{
			Name:       name,
			Found:      r.found,
			Start:      r.start,
			End:        r.end,
			TopicCount: topicCount[name],
			Failure:    r.failure,
		})
	}
	return out
}
