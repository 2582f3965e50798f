package diagnose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aprova-labs/edital-cli/internal/core/domain"
	"github.com/aprova-labs/edital-cli/internal/parser"
)

func debugWith(found, total int, sectionFound bool) domain.ParseDebug {
	subjects := make([]domain.SubjectDebug, 0, total)
	for i := 0; i < total; i++ {
		subjects = append(subjects, domain.SubjectDebug{Found: i < found})
	}
	return domain.ParseDebug{SectionFound: sectionFound, Subjects: subjects}
}

func TestAggregate_CopiesParserStats(t *testing.T) {
	res := &parser.Result{
		Debug: debugWith(5, 5, true),
		Stats: domain.ParseStats{
			TotalSubjects: 5,
			TotalTopics:   42,
			Completeness:  100,
			Confidence:    93,
		},
	}

	d := Aggregate(domain.StatusOK, domain.Classification{}, domain.Prevalidation{}, res, strings.Repeat("a", 3000))

	assert.Equal(t, domain.StatusOK, d.Status)
	assert.Equal(t, 5, d.SubjectCount)
	assert.Equal(t, 42, d.TopicCount)
	assert.InDelta(t, 100.0, d.Completeness, 1e-9)
	assert.Equal(t, 93, d.Confidence)
	assert.False(t, d.PossibleLostAnnex)
	assert.False(t, d.BrokenHeadings)
}

func TestAggregate_PossibleLostAnnex(t *testing.T) {
	long := strings.Repeat("texto ", 500) // 3000 runes

	res := &parser.Result{Debug: debugWith(0, 5, false)}
	d := Aggregate(domain.StatusOK, domain.Classification{}, domain.Prevalidation{}, res, long)
	assert.True(t, d.PossibleLostAnnex)

	// Short documents never raise the flag: there was nothing to lose.
	d = Aggregate(domain.StatusOK, domain.Classification{}, domain.Prevalidation{}, res, "texto curto")
	assert.False(t, d.PossibleLostAnnex)

	// A found section clears it regardless of length.
	res = &parser.Result{Debug: debugWith(5, 5, true)}
	d = Aggregate(domain.StatusOK, domain.Classification{}, domain.Prevalidation{}, res, long)
	assert.False(t, d.PossibleLostAnnex)
}

func TestAggregate_BrokenHeadings(t *testing.T) {
	cases := []struct {
		name         string
		found, total int
		want         bool
	}{
		{"none found of five", 0, 5, true},
		{"one found of five", 1, 5, true},
		{"two found of five", 2, 5, false},
		{"one found of two", 1, 2, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := &parser.Result{Debug: debugWith(tc.found, tc.total, true)}
			d := Aggregate(domain.StatusOK, domain.Classification{}, domain.Prevalidation{}, res, "x")
			assert.Equal(t, tc.want, d.BrokenHeadings)
		})
	}
}

func TestAggregate_NilResult(t *testing.T) {
	pre := domain.Prevalidation{
		Flags: domain.PrevalidationFlags{TextInsufficient: true},
	}
	d := Aggregate(domain.StatusScanned, domain.Classification{Category: domain.CategoryScanned}, pre, nil, strings.Repeat("a", 2500))

	assert.Equal(t, domain.StatusScanned, d.Status)
	assert.Equal(t, 0, d.SubjectCount)
	assert.True(t, d.PossibleLostAnnex)
	assert.True(t, d.Prevalidation.Flags.TextInsufficient)
	assert.False(t, d.BrokenHeadings)
}
