package domain

import "math"

// Discipline is one subject of the exam with its extracted syllabus topics.
// A Discipline with zero topics is a valid result: extraction failed for that
// subject and the failure is recorded in the parse debug info, not hidden.
type Discipline struct {
	// Name is the canonical subject name (e.g. "Língua Portuguesa").
	Name string `json:"name"`

	// OriginalName is the name as matched in the document, before
	// canonicalisation.
	OriginalName string `json:"originalName"`

	// Topics are deduplicated, trimmed syllabus entries, each 3-240 runes.
	Topics []string `json:"topics"`
}

// WeightMethod says how the weighting table expresses subject weight.
type WeightMethod string

const (
	// WeightQuestions means weights are question counts.
	WeightQuestions WeightMethod = "questions"

	// WeightPoints means weights are point totals.
	WeightPoints WeightMethod = "points"
)

// SubjectWeight is one row of the weighting table: a subject and its numeric
// weight. Depending on the table's method the number is a question count or a
// point total; only the field matching the method is meaningful.
type SubjectWeight struct {
	SubjectName   string `json:"subjectName"`
	QuestionCount int    `json:"questionCount,omitempty"`
	PointCount    int    `json:"pointCount,omitempty"`
}

// Value returns the meaningful weight number regardless of method.
func (w SubjectWeight) Value() int {
	if w.QuestionCount > 0 {
		return w.QuestionCount
	}
	return w.PointCount
}

// WeightTable is the resolved weighting table of the document. It is only
// present when at least 3 subjects had a resolvable number; otherwise
// downstream scoring falls back to content-length weighting.
type WeightTable struct {
	Method  WeightMethod    `json:"method"`
	Weights []SubjectWeight `json:"weights"`
}

// Percentages returns each subject's share of the total weight, in percent,
// keyed by subject name. Shares are rounded to two decimals and sum to 100
// modulo rounding.
func (t *WeightTable) Percentages() map[string]float64 {
	total := 0
	for _, w := range t.Weights {
		total += w.Value()
	}
	out := make(map[string]float64, len(t.Weights))
	if total == 0 {
		return out
	}
	for _, w := range t.Weights {
		pct := float64(w.Value()) / float64(total) * 100
		out[w.SubjectName] = math.Round(pct*100) / 100
	}
	return out
}
