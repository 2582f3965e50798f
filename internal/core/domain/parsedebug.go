package domain

// SubjectDebug records how heading detection went for one official subject.
type SubjectDebug struct {
	// Name is the canonical subject name.
	Name string `json:"name"`

	// Found reports whether a heading was located inside the syllabus section.
	Found bool `json:"found"`

	// Start and End are the rune offsets of the subject's section within the
	// folded processed text. Zero when not found.
	Start int `json:"start"`
	End   int `json:"end"`

	// TopicCount is the number of topics extracted for the subject.
	TopicCount int `json:"topicCount"`

	// Failure names why the heading was not found. Empty when Found.
	Failure string `json:"failure,omitempty"`
}

// ParseDebug carries per-phase diagnostics of the canonical parser. It exists
// for observability only; correctness never depends on it.
type ParseDebug struct {
	// MarkerFound reports whether the weighting-table marker was located.
	MarkerFound bool `json:"markerFound"`

	// WeightTableFound reports whether enough subjects resolved a number for
	// the weighting table to count as present.
	WeightTableFound bool `json:"weightTableFound"`

	// OfficialFromFallback reports that the official subject list came from
	// the fixed fallback list rather than the document itself.
	OfficialFromFallback bool `json:"officialFromFallback"`

	// SectionFound reports whether the syllabus section was located.
	SectionFound bool `json:"sectionFound"`

	// SectionFallback reports that the section was located by the degraded
	// last-occurrence heuristic rather than validated annex matching.
	SectionFallback bool `json:"sectionFallback"`

	// SectionStart and SectionEnd are offsets of the syllabus section within
	// the folded processed text.
	SectionStart int `json:"sectionStart"`
	SectionEnd   int `json:"sectionEnd"`

	// Subjects holds one entry per official subject, in official order.
	Subjects []SubjectDebug `json:"subjects"`
}

// FoundSubjects counts the subjects whose heading was located.
func (d ParseDebug) FoundSubjects() int {
	n := 0
	for _, s := range d.Subjects {
		if s.Found {
			n++
		}
	}
	return n
}

// ParseStats are the finalizer's aggregate statistics.
type ParseStats struct {
	// TotalSubjects is the number of disciplines in the output (always equal
	// to the official subject count).
	TotalSubjects int `json:"totalSubjects"`

	// TotalTopics is the number of topics across all disciplines.
	TotalTopics int `json:"totalTopics"`

	// Density is TotalTopics / TotalSubjects.
	Density float64 `json:"density"`

	// Completeness is the percentage of official subjects that ended up with
	// at least one topic.
	Completeness float64 `json:"completeness"`

	// Confidence is the aggregate extraction confidence in [0,100].
	Confidence int `json:"confidence"`
}
