// Package diagnose consolidates the signals of a pipeline run into a single
// read-only snapshot. It adds two cross-stage flags of its own but introduces
// no new thresholds beyond the lost-annex length floor.
package diagnose

import (
	"unicode/utf8"

	"github.com/aprova-labs/edital-cli/internal/core/domain"
	"github.com/aprova-labs/edital-cli/internal/parser"
)

// lostAnnexMinLength is the raw length (in runes) above which a missing
// syllabus section suggests the annex was lost during extraction rather than
// the document simply being short.
const lostAnnexMinLength = 2000

// minOfficialForBroken guards the broken-headings flag: losing headings only
// means something when there were at least this many subjects to find.
const minOfficialForBroken = 3

// Aggregate merges the classifier verdict, the pre-validation flags and the
// parser output into one Diagnostic. res may be nil when the parser was never
// invoked (scanned documents, extraction errors with no text).
func Aggregate(status domain.Status, cls domain.Classification, pre domain.Prevalidation, res *parser.Result, rawText string) domain.Diagnostic {
	d := domain.Diagnostic{
		Status:         status,
		Classification: cls,
		Prevalidation:  pre,
	}

	rawLen := utf8.RuneCountInString(rawText)

	if res == nil {
		d.PossibleLostAnnex = rawLen >= lostAnnexMinLength
		return d
	}

	d.SubjectCount = res.Stats.TotalSubjects
	d.TopicCount = res.Stats.TotalTopics
	d.Completeness = res.Stats.Completeness
	d.Confidence = res.Stats.Confidence

	d.PossibleLostAnnex = rawLen >= lostAnnexMinLength && !res.Debug.SectionFound
	d.BrokenHeadings = res.Debug.FoundSubjects() <= 1 &&
		len(res.Debug.Subjects) >= minOfficialForBroken

	return d
}
