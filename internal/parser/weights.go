package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/aprova-labs/edital-cli/internal/core/domain"
	"github.com/aprova-labs/edital-cli/internal/textnorm"
)

// Phase B scan bounds, in folded bytes like the Phase A window.
const (
	weightScanWindow    = 8000
	weightNumberWindow  = 200
	weightMin           = 1
	weightMax           = 200
	minWeightedSubjects = 3
)

// reWeightNumber finds standalone 1-3 digit numbers.
var reWeightNumber = regexp.MustCompile(`\b\d{1,3}\b`)

// extractWeights implements Phase B: when the weighting-table marker exists,
// each official subject is located in an 8,000-character window after it and
// the next 200 characters are inspected for its question/point count. The
// table only counts as found when at least 3 subjects resolve a number.
func extractWeights(f *textnorm.Folded, markerPos int, subjects []subjectEntry) *domain.WeightTable {
	if markerPos < 0 {
		return nil
	}

	window := f.Window(markerPos, weightScanWindow)
	method := weightMethod(window)

	var weights []domain.SubjectWeight
	for _, e := range subjects {
		pos, matched := locateSubjectInWindow(window, e)
		if pos < 0 {
			continue
		}

		numWindow := window[pos+len(matched):]
		if len(numWindow) > weightNumberWindow {
			numWindow = numWindow[:weightNumberWindow]
		}

		value, ok := firstWeightNumber(numWindow)
		if !ok {
			continue
		}

		w := domain.SubjectWeight{SubjectName: e.Canonical}
		if method == domain.WeightPoints {
			w.PointCount = value
		} else {
			w.QuestionCount = value
		}
		weights = append(weights, w)
	}

	if len(weights) < minWeightedSubjects {
		return nil
	}
	return &domain.WeightTable{Method: method, Weights: weights}
}

// locateSubjectInWindow finds the subject by full alias first, then by any
// single content token of at least 4 runes. Returns the match offset and the
// matched text, or -1.
func locateSubjectInWindow(window string, e subjectEntry) (int, string) {
	for _, alias := range e.Aliases {
		if occ := aliasOccurrences(window, alias); len(occ) > 0 {
			return occ[0], alias
		}
	}
	for _, tok := range contentTokens(e) {
		if occ := aliasOccurrences(window, tok); len(occ) > 0 {
			return occ[0], tok
		}
	}
	return -1, ""
}

// firstWeightNumber returns the first standalone 1-3 digit number in [1,200].
func firstWeightNumber(s string) (int, bool) {
	for _, m := range reWeightNumber.FindAllString(s, -1) {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if n >= weightMin && n <= weightMax {
			return n, true
		}
	}
	return 0, false
}

// weightMethod classifies the table unit. Questions win over points and are
// the default when neither word appears.
func weightMethod(window string) domain.WeightMethod {
	if strings.Contains(window, "questoes") || strings.Contains(window, "questao") {
		return domain.WeightQuestions
	}
	if strings.Contains(window, "pontos") || strings.Contains(window, "ponto") {
		return domain.WeightPoints
	}
	return domain.WeightQuestions
}
