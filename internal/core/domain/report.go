package domain

import "time"

// Report is the full pipeline output for one document. It is created fresh
// per processing call; ID and CreatedAt are assigned by the store on save.
type Report struct {
	// ID is the storage identifier. Empty until the report is saved.
	ID string `json:"id,omitempty"`

	// URI is the source location of the extracted text, when known.
	URI string `json:"uri,omitempty"`

	// Status is the terminal pipeline status.
	Status Status `json:"status"`

	// RawText is the input text. Populated on scanned/extractionError
	// results so the caller can retry or inspect.
	RawText string `json:"rawText,omitempty"`

	// ProcessedText is the repaired text the parser ran on. Empty unless
	// Status is StatusOK.
	ProcessedText string `json:"processedText,omitempty"`

	// Disciplines is the extracted syllabus, one entry per official subject.
	Disciplines []Discipline `json:"disciplines,omitempty"`

	// Weights is the resolved weighting table, when one was found.
	Weights *WeightTable `json:"weights,omitempty"`

	// Debug carries parser-phase diagnostics.
	Debug ParseDebug `json:"debug"`

	// Stats carries the finalizer's aggregate statistics.
	Stats ParseStats `json:"stats"`

	// Diagnostic is the consolidated flag snapshot.
	Diagnostic Diagnostic `json:"diagnostic"`

	// Decision is the UX decision, or nil when nothing needs surfacing.
	Decision Decision `json:"-"`

	// Message is a human-readable status line for terminal results.
	Message string `json:"message,omitempty"`

	// CreatedAt is when the report was saved. Zero until saved.
	CreatedAt time.Time `json:"createdAt"`
}

// ReportSummary is the listing projection of a stored report.
type ReportSummary struct {
	ID           string    `json:"id"`
	URI          string    `json:"uri"`
	Status       Status    `json:"status"`
	Confidence   int       `json:"confidence"`
	SubjectCount int       `json:"subjectCount"`
	TopicCount   int       `json:"topicCount"`
	CreatedAt    time.Time `json:"createdAt"`
}
