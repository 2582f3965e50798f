package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/aprova-labs/edital-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/aprova-labs/edital-cli/internal/core/domain"
	"github.com/aprova-labs/edital-cli/internal/core/ports/driven"
)

// Store is the SQLite-backed report store.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.ReportStore = (*Store)(nil)

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.edital/data/reports.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".edital", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "reports.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveReport stores a report and its syllabus in one transaction, assigning
// ID and CreatedAt on first save.
func (s *Store) SaveReport(ctx context.Context, report *domain.Report) error {
	if report == nil {
		return domain.ErrInvalidInput
	}

	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	diagnosticJSON, err := json.Marshal(report.Diagnostic)
	if err != nil {
		return fmt.Errorf("marshalling diagnostic: %w", err)
	}
	debugJSON, err := json.Marshal(report.Debug)
	if err != nil {
		return fmt.Errorf("marshalling debug: %w", err)
	}
	statsJSON, err := json.Marshal(report.Stats)
	if err != nil {
		return fmt.Errorf("marshalling stats: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reports (id, uri, status, message, confidence, subject_count,
			topic_count, completeness, diagnostic, debug, stats, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			uri = excluded.uri,
			status = excluded.status,
			message = excluded.message,
			confidence = excluded.confidence,
			subject_count = excluded.subject_count,
			topic_count = excluded.topic_count,
			completeness = excluded.completeness,
			diagnostic = excluded.diagnostic,
			debug = excluded.debug,
			stats = excluded.stats
	`, report.ID, report.URI, string(report.Status), report.Message,
		report.Diagnostic.Confidence, report.Stats.TotalSubjects,
		report.Stats.TotalTopics, report.Stats.Completeness,
		string(diagnosticJSON), string(debugJSON), string(statsJSON),
		report.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving report: %w", err)
	}

	// Re-saving replaces the syllabus wholesale.
	if _, err := tx.ExecContext(ctx, "DELETE FROM disciplines WHERE report_id = ?", report.ID); err != nil {
		return fmt.Errorf("clearing disciplines: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM weights WHERE report_id = ?", report.ID); err != nil {
		return fmt.Errorf("clearing weights: %w", err)
	}

	for i, d := range report.Disciplines {
		disciplineID := uuid.New().String()
		_, err := tx.ExecContext(ctx, `
			INSERT INTO disciplines (id, report_id, position, name, original_name)
			VALUES (?, ?, ?, ?, ?)
		`, disciplineID, report.ID, i, d.Name, d.OriginalName)
		if err != nil {
			return fmt.Errorf("saving discipline %q: %w", d.Name, err)
		}

		for j, topic := range d.Topics {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO topics (id, discipline_id, position, content)
				VALUES (?, ?, ?, ?)
			`, uuid.New().String(), disciplineID, j, topic)
			if err != nil {
				return fmt.Errorf("saving topic: %w", err)
			}
		}
	}

	if report.Weights != nil {
		for _, w := range report.Weights.Weights {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO weights (report_id, subject_name, method, question_count, point_count)
				VALUES (?, ?, ?, ?, ?)
			`, report.ID, w.SubjectName, string(report.Weights.Method),
				w.QuestionCount, w.PointCount)
			if err != nil {
				return fmt.Errorf("saving weight %q: %w", w.SubjectName, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing report: %w", err)
	}
	return nil
}

// GetReport retrieves a report by ID, reassembling its syllabus.
func (s *Store) GetReport(ctx context.Context, id string) (*domain.Report, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, uri, status, message, diagnostic, debug, stats, created_at
		FROM reports WHERE id = ?
	`, id)

	var report domain.Report
	var status, diagnosticJSON, debugJSON, statsJSON string
	if err := row.Scan(&report.ID, &report.URI, &status, &report.Message,
		&diagnosticJSON, &debugJSON, &statsJSON, &report.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning report: %w", err)
	}
	report.Status = domain.Status(status)

	if err := json.Unmarshal([]byte(diagnosticJSON), &report.Diagnostic); err != nil {
		return nil, fmt.Errorf("unmarshalling diagnostic: %w", err)
	}
	if err := json.Unmarshal([]byte(debugJSON), &report.Debug); err != nil {
		return nil, fmt.Errorf("unmarshalling debug: %w", err)
	}
	if err := json.Unmarshal([]byte(statsJSON), &report.Stats); err != nil {
		return nil, fmt.Errorf("unmarshalling stats: %w", err)
	}

	disciplines, err := s.loadDisciplines(ctx, id)
	if err != nil {
		return nil, err
	}
	report.Disciplines = disciplines

	weights, err := s.loadWeights(ctx, id)
	if err != nil {
		return nil, err
	}
	report.Weights = weights

	return &report, nil
}

// ListReports returns the most recent report summaries, newest first.
func (s *Store) ListReports(ctx context.Context, limit int) ([]domain.ReportSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, uri, status, confidence, subject_count, topic_count, created_at
		FROM reports
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var out []domain.ReportSummary
	for rows.Next() {
		var s domain.ReportSummary
		var status string
		if err := rows.Scan(&s.ID, &s.URI, &status, &s.Confidence,
			&s.SubjectCount, &s.TopicCount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning summary: %w", err)
		}
		s.Status = domain.Status(status)
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteReport removes a report; disciplines, topics and weights cascade.
func (s *Store) DeleteReport(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting report: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// loadDisciplines loads the syllabus rows of one report, in stored order.
func (s *Store) loadDisciplines(ctx context.Context, reportID string) ([]domain.Discipline, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, original_name
		FROM disciplines WHERE report_id = ?
		ORDER BY position
	`, reportID)
	if err != nil {
		return nil, fmt.Errorf("loading disciplines: %w", err)
	}
	defer rows.Close()

	var disciplines []domain.Discipline
	var ids []string
	for rows.Next() {
		var id string
		var d domain.Discipline
		if err := rows.Scan(&id, &d.Name, &d.OriginalName); err != nil {
			return nil, fmt.Errorf("scanning discipline: %w", err)
		}
		disciplines = append(disciplines, d)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, id := range ids {
		topics, err := s.loadTopics(ctx, id)
		if err != nil {
			return nil, err
		}
		disciplines[i].Topics = topics
	}
	return disciplines, nil
}

// loadTopics loads one discipline's topics, in stored order.
func (s *Store) loadTopics(ctx context.Context, disciplineID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT content FROM topics WHERE discipline_id = ? ORDER BY position
	`, disciplineID)
	if err != nil {
		return nil, fmt.Errorf("loading topics: %w", err)
	}
	defer rows.Close()

	var topics []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scanning topic: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// loadWeights loads one report's weighting table, or nil when none was saved.
func (s *Store) loadWeights(ctx context.Context, reportID string) (*domain.WeightTable, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT subject_name, method, question_count, point_count
		FROM weights WHERE report_id = ?
		ORDER BY rowid
	`, reportID)
	if err != nil {
		return nil, fmt.Errorf("loading weights: %w", err)
	}
	defer rows.Close()

	var table *domain.WeightTable
	for rows.Next() {
		var w domain.SubjectWeight
		var method string
		if err := rows.Scan(&w.SubjectName, &method, &w.QuestionCount, &w.PointCount); err != nil {
			return nil, fmt.Errorf("scanning weight: %w", err)
		}
		if table == nil {
			table = &domain.WeightTable{Method: domain.WeightMethod(method)}
		}
		table.Weights = append(table.Weights, w)
	}
	return table, rows.Err()
}
