package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aprova-labs/edital-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func sampleReport() *domain.Report {
	return &domain.Report{
		URI:    "edital.txt",
		Status: domain.StatusOK,
		Disciplines: []domain.Discipline{
			{
				Name:         "Língua Portuguesa",
				OriginalName: "LÍNGUA PORTUGUESA",
				Topics:       []string{"Fonologia", "Morfologia"},
			},
			{
				Name:         "Matemática",
				OriginalName: "MATEMÁTICA",
				Topics:       []string{"Conjuntos numéricos"},
			},
		},
		Weights: &domain.WeightTable{
			Method: domain.WeightQuestions,
			Weights: []domain.SubjectWeight{
				{SubjectName: "Língua Portuguesa", QuestionCount: 10},
				{SubjectName: "Matemática", QuestionCount: 10},
			},
		},
		Stats: domain.ParseStats{
			TotalSubjects: 2,
			TotalTopics:   3,
			Completeness:  100,
			Confidence:    85,
		},
		Diagnostic: domain.Diagnostic{
			Status:       domain.StatusOK,
			SubjectCount: 2,
			TopicCount:   3,
			Completeness: 100,
			Confidence:   85,
		},
	}
}

func TestSaveReport_AssignsIDAndTimestamp(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	report := sampleReport()
	require.NoError(t, store.SaveReport(ctx, report))

	assert.NotEmpty(t, report.ID)
	assert.False(t, report.CreatedAt.IsZero())
}

func TestSaveReport_NilReport(t *testing.T) {
	store := setupTestStore(t)
	err := store.SaveReport(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetReport_RoundTrip(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	saved := sampleReport()
	require.NoError(t, store.SaveReport(ctx, saved))

	got, err := store.GetReport(ctx, saved.ID)
	require.NoError(t, err)

	assert.Equal(t, saved.URI, got.URI)
	assert.Equal(t, domain.StatusOK, got.Status)
	require.Len(t, got.Disciplines, 2)
	assert.Equal(t, "Língua Portuguesa", got.Disciplines[0].Name)
	assert.Equal(t, []string{"Fonologia", "Morfologia"}, got.Disciplines[0].Topics)
	assert.Equal(t, []string{"Conjuntos numéricos"}, got.Disciplines[1].Topics)

	require.NotNil(t, got.Weights)
	assert.Equal(t, domain.WeightQuestions, got.Weights.Method)
	assert.Len(t, got.Weights.Weights, 2)

	assert.Equal(t, 85, got.Diagnostic.Confidence)
	assert.Equal(t, 3, got.Stats.TotalTopics)
}

func TestGetReport_NotFound(t *testing.T) {
	store := setupTestStore(t)
	_, err := store.GetReport(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaveReport_UpdateReplacesSyllabus(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	report := sampleReport()
	require.NoError(t, store.SaveReport(ctx, report))

	report.Disciplines = []domain.Discipline{
		{Name: "Direito Constitucional", Topics: []string{"Princípios fundamentais"}},
	}
	report.Weights = nil
	require.NoError(t, store.SaveReport(ctx, report))

	got, err := store.GetReport(ctx, report.ID)
	require.NoError(t, err)
	require.Len(t, got.Disciplines, 1)
	assert.Equal(t, "Direito Constitucional", got.Disciplines[0].Name)
	assert.Nil(t, got.Weights)
}

func TestListReports_NewestFirst(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	old := sampleReport()
	old.URI = "old.txt"
	old.CreatedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, store.SaveReport(ctx, old))

	recent := sampleReport()
	recent.URI = "recent.txt"
	require.NoError(t, store.SaveReport(ctx, recent))

	summaries, err := store.ListReports(ctx, 10)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "recent.txt", summaries[0].URI)
	assert.Equal(t, "old.txt", summaries[1].URI)
	assert.Equal(t, 85, summaries[0].Confidence)
}

func TestListReports_Limit(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		r := sampleReport()
		r.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Second)
		require.NoError(t, store.SaveReport(ctx, r))
	}

	summaries, err := store.ListReports(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, summaries, 3)
}

func TestDeleteReport(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	report := sampleReport()
	require.NoError(t, store.SaveReport(ctx, report))
	require.NoError(t, store.DeleteReport(ctx, report.ID))

	_, err := store.GetReport(ctx, report.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = store.DeleteReport(ctx, report.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
