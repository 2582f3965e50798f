package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aprova-labs/edital-cli/internal/core/domain"
)

// fakePipeline returns canned reports.
type fakePipeline struct {
	report *domain.Report
	err    error
}

func (f *fakePipeline) Process(_ context.Context, uri string) (*domain.Report, error) {
	if f.report != nil {
		f.report.URI = uri
	}
	return f.report, f.err
}

func (f *fakePipeline) ProcessText(_ context.Context, _, _ string) (*domain.Report, error) {
	return f.report, f.err
}

func (f *fakePipeline) ProcessExtractionError(_ context.Context, _, _ string) (*domain.Report, error) {
	return f.report, f.err
}

// fakeReportStore records saves and serves canned reports.
type fakeReportStore struct {
	saved     []*domain.Report
	report    *domain.Report
	summaries []domain.ReportSummary
}

func (f *fakeReportStore) SaveReport(_ context.Context, r *domain.Report) error {
	if r.ID == "" {
		r.ID = "fake-id"
	}
	f.saved = append(f.saved, r)
	return nil
}

func (f *fakeReportStore) GetReport(_ context.Context, id string) (*domain.Report, error) {
	if f.report == nil || f.report.ID != id {
		return nil, domain.ErrNotFound
	}
	return f.report, nil
}

func (f *fakeReportStore) ListReports(_ context.Context, _ int) ([]domain.ReportSummary, error) {
	return f.summaries, nil
}

func (f *fakeReportStore) DeleteReport(_ context.Context, id string) error {
	if f.report == nil || f.report.ID != id {
		return domain.ErrNotFound
	}
	return nil
}

func (f *fakeReportStore) Close() error { return nil }

func okReport() *domain.Report {
	return &domain.Report{
		Status: domain.StatusOK,
		Disciplines: []domain.Discipline{
			{Name: "Língua Portuguesa", Topics: []string{"Fonologia", "Morfologia"}},
		},
		Stats: domain.ParseStats{
			TotalSubjects: 1,
			TotalTopics:   2,
			Completeness:  100,
			Confidence:    70,
		},
	}
}

// execute runs the root command with args and captures combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		SetServices(Services{})
		parseJSON = false
		parseSave = false
		parseExtractionFailed = false
		reportsJSON = false
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "edital version")
}

func TestParseCommand_TextOutput(t *testing.T) {
	SetServices(Services{Pipeline: &fakePipeline{report: okReport()}})

	out, err := execute(t, "parse", "edital.txt")
	require.NoError(t, err)

	assert.Contains(t, out, "Status: ok")
	assert.Contains(t, out, "Língua Portuguesa: 2 tópicos")
	assert.Contains(t, out, "Confidence: 70/100")
}

func TestParseCommand_JSONOutput(t *testing.T) {
	report := okReport()
	report.Decision = domain.Info{Title: "t", Message: "m", ReasonKey: "low_confidence"}
	SetServices(Services{Pipeline: &fakePipeline{report: report}})

	out, err := execute(t, "parse", "edital.txt", "--json")
	require.NoError(t, err)

	assert.Contains(t, out, `"status": "ok"`)
	assert.Contains(t, out, `"mode": "info"`)
	assert.Contains(t, out, `"reason": "low_confidence"`)
	assert.Contains(t, out, "Língua Portuguesa")
}

func TestParseCommand_Save(t *testing.T) {
	store := &fakeReportStore{}
	SetServices(Services{Pipeline: &fakePipeline{report: okReport()}, Reports: store})

	_, err := execute(t, "parse", "edital.txt", "--save")
	require.NoError(t, err)
	assert.Len(t, store.saved, 1)
}

func TestParseCommand_SaveWithoutStore(t *testing.T) {
	SetServices(Services{Pipeline: &fakePipeline{report: okReport()}})

	_, err := execute(t, "parse", "edital.txt", "--save")
	assert.Error(t, err)
}

func TestParseCommand_NoPipeline(t *testing.T) {
	_, err := execute(t, "parse", "edital.txt")
	assert.Error(t, err)
}

func TestParseCommand_BlockDecisionRendered(t *testing.T) {
	report := &domain.Report{
		Status:  domain.StatusScanned,
		Message: "Documento sem camada de texto aproveitável.",
		Decision: domain.Block{
			Title:     "Documento escaneado",
			Message:   "Este edital parece ser uma imagem escaneada.",
			Primary:   domain.ActionUploadOther,
			ReasonKey: "scanned_status",
		},
	}
	SetServices(Services{Pipeline: &fakePipeline{report: report}})

	out, err := execute(t, "parse", "edital.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "[BLOQUEIO] Documento escaneado")
	assert.Contains(t, out, "enviar outro arquivo")
}

func TestReportsList_Empty(t *testing.T) {
	SetServices(Services{Reports: &fakeReportStore{}})

	out, err := execute(t, "reports", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved reports")
}

func TestReportsList(t *testing.T) {
	store := &fakeReportStore{
		summaries: []domain.ReportSummary{
			{
				ID: "abc", URI: "edital.txt", Status: domain.StatusOK,
				Confidence: 88, SubjectCount: 5, TopicCount: 40,
				CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
			},
		},
	}
	SetServices(Services{Reports: store})

	out, err := execute(t, "reports", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "abc")
	assert.Contains(t, out, "edital.txt")
	assert.Contains(t, out, "conf=88")
}

func TestReportsShow_NotFound(t *testing.T) {
	SetServices(Services{Reports: &fakeReportStore{}})

	_, err := execute(t, "reports", "show", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportsDelete(t *testing.T) {
	report := okReport()
	report.ID = "abc"
	SetServices(Services{Reports: &fakeReportStore{report: report}})

	out, err := execute(t, "reports", "delete", "abc")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted abc")
}

func TestWatchable(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "edital.txt")
	require.NoError(t, os.WriteFile(file, []byte("conteudo"), 0o644))
	subdir := filepath.Join(dir, "pasta.txt")
	require.NoError(t, os.Mkdir(subdir, 0o755))

	cases := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"create txt", fsnotify.Event{Name: file, Op: fsnotify.Create}, true},
		{"write txt", fsnotify.Event{Name: file, Op: fsnotify.Write}, true},
		{"chmod ignored", fsnotify.Event{Name: file, Op: fsnotify.Chmod}, false},
		{"remove ignored", fsnotify.Event{Name: file, Op: fsnotify.Remove}, false},
		{"unsupported extension", fsnotify.Event{Name: filepath.Join(dir, "doc.pdf"), Op: fsnotify.Create}, false},
		{"hidden file", fsnotify.Event{Name: filepath.Join(dir, ".edital.txt"), Op: fsnotify.Create}, false},
		{"missing file", fsnotify.Event{Name: filepath.Join(dir, "gone.txt"), Op: fsnotify.Create}, false},
		{"directory", fsnotify.Event{Name: subdir, Op: fsnotify.Create}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, watchable(tc.event))
		})
	}
}

func TestDebouncer_CoalescesBursts(t *testing.T) {
	deb := newDebouncer(30 * time.Millisecond)

	runs := make(chan string, 10)
	for i := 0; i < 5; i++ {
		deb.trigger("same-path", func() { runs <- "same-path" })
	}

	select {
	case <-runs:
	case <-time.After(time.Second):
		t.Fatal("debounced function never ran")
	}

	select {
	case <-runs:
		t.Fatal("burst should collapse into a single run")
	case <-time.After(100 * time.Millisecond):
	}
}
