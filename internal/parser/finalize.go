package parser

import (
	"math"
	"strings"

	"github.com/aprova-labs/edital-cli/internal/core/domain"
	"github.com/aprova-labs/edital-cli/internal/textnorm"
)

// Confidence weights: section presence, completeness and topic density each
// contribute a capped share of the 0-100 score.
const (
	confidenceSectionShare = 30.0
	confidenceCompleteness = 40.0
	confidenceDensityShare = 30.0
	confidenceDensityScale = 20.0
)

// canonicalName maps a name onto its canonical form via the equivalence
// table. Names without an equivalence pass through unchanged.
func canonicalName(name string) string {
	if canonical, ok := nameEquivalences[textnorm.Normalize(name)]; ok {
		return canonical
	}
	return name
}

// finalize post-processes raw parser output: canonicalise subject names,
// merge duplicates, clean and re-deduplicate topics, force every official
// subject into the output and compute the aggregate statistics. The output
// always holds exactly one Discipline per official subject.
func finalize(raw []rawDiscipline, official []subjectEntry, sectionFound bool) ([]domain.Discipline, domain.ParseStats) {
	merged := make(map[string]*domain.Discipline)
	var order []string

	for _, r := range raw {
		name := canonicalName(r.entry.Canonical)
		d, ok := merged[name]
		if !ok {
			d = &domain.Discipline{Name: name, OriginalName: r.originalName}
			merged[name] = d
			order = append(order, name)
		}
		d.Topics = append(d.Topics, r.topics...)
	}

	// Guarantee the full official set, even when a subject vanished during
	// canonicalisation or was never found.
	for _, e := range official {
		name := canonicalName(e.Canonical)
		if _, ok := merged[name]; !ok {
			merged[name] = &domain.Discipline{Name: name, OriginalName: e.Canonical}
			order = append(order, name)
		}
	}

	disciplines := make([]domain.Discipline, 0, len(order))
	totalTopics := 0
	withTopics := 0
	for _, name := range order {
		d := *merged[name]
		d.Topics = cleanTopics(d.Topics)
		if len(d.Topics) > 0 {
			withTopics++
		}
		totalTopics += len(d.Topics)
		disciplines = append(disciplines, d)
	}

	stats := computeStats(len(disciplines), totalTopics, withTopics, sectionFound)
	return disciplines, stats
}

// cleanTopics trims, strips trailing punctuation, drops length-invalid
// entries and deduplicates, preserving first-seen order.
func cleanTopics(topics []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range topics {
		t = strings.TrimSpace(t)
		t = strings.TrimRight(t, " .,;:-")
		n := len([]rune(t))
		if n < topicMinLen || n > topicMaxLen {
			continue
		}
		key := textnorm.Normalize(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

// computeStats derives the aggregate statistics and the confidence score.
func computeStats(subjects, topics, withTopics int, sectionFound bool) domain.ParseStats {
	stats := domain.ParseStats{
		TotalSubjects: subjects,
		TotalTopics:   topics,
	}
	if subjects == 0 {
		return stats
	}

	stats.Density = float64(topics) / float64(subjects)
	stats.Completeness = float64(withTopics) / float64(subjects) * 100

	score := 0.0
	if sectionFound {
		score += confidenceSectionShare
	}
	score += math.Min(confidenceCompleteness*stats.Completeness/100, confidenceCompleteness)
	score += math.Min(confidenceDensityShare*stats.Density/confidenceDensityScale, confidenceDensityShare)
	stats.Confidence = int(math.Round(score))

	return stats
}
