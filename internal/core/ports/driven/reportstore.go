package driven

import (
	"context"

	"github.com/aprova-labs/edital-cli/internal/core/domain"
)

// ReportStore persists pipeline reports.
// Backed by SQLite for local storage.
type ReportStore interface {
	// SaveReport stores a report, assigning its ID and CreatedAt.
	SaveReport(ctx context.Context, report *domain.Report) error

	// GetReport retrieves a report by ID.
	GetReport(ctx context.Context, id string) (*domain.Report, error)

	// ListReports returns the most recent report summaries, newest first.
	ListReports(ctx context.Context, limit int) ([]domain.ReportSummary, error)

	// DeleteReport removes a report and its disciplines.
	DeleteReport(ctx context.Context, id string) error

	// Close releases the underlying storage.
	Close() error
}
