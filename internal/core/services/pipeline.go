package services

import (
	"context"
	"fmt"

	"github.com/aprova-labs/edital-cli/internal/classifier"
	"github.com/aprova-labs/edital-cli/internal/core/domain"
	"github.com/aprova-labs/edital-cli/internal/core/ports/driven"
	"github.com/aprova-labs/edital-cli/internal/core/ports/driving"
	"github.com/aprova-labs/edital-cli/internal/diagnose"
	"github.com/aprova-labs/edital-cli/internal/logger"
	"github.com/aprova-labs/edital-cli/internal/parser"
	"github.com/aprova-labs/edital-cli/internal/policy"
	"github.com/aprova-labs/edital-cli/internal/preprocess"
	"github.com/aprova-labs/edital-cli/internal/prevalidate"
)

// Ensure PipelineService implements the interface.
var _ driving.Pipeline = (*PipelineService)(nil)

// Terminal status lines shown to the user.
const (
	msgScanned         = "Documento sem camada de texto aproveitável; o conteúdo não pôde ser processado."
	msgExtractionError = "A extração de texto falhou; o documento não pôde ser processado."
)

// PipelineService runs the processing pipeline. The stages themselves are
// pure functions; the service owns sequencing, the scanned short-circuit and
// the extraction boundary.
type PipelineService struct {
	extractor    driven.TextExtractor
	preprocessor *preprocess.Preprocessor
	parserOpts   parser.Options
}

// NewPipelineService creates a pipeline service. The extractor may be nil
// when the caller only uses ProcessText.
func NewPipelineService(extractor driven.TextExtractor) *PipelineService {
	return &PipelineService{
		extractor:    extractor,
		preprocessor: preprocess.New(),
	}
}

// SetFallbackSubjects overrides the parser's built-in fallback subject list,
// typically from the parser.fallback_subjects configuration key.
func (s *PipelineService) SetFallbackSubjects(names []string) {
	s.parserOpts.FallbackSubjects = names
}

// Process extracts the document at uri and processes its text. An extraction
// failure is not an error: it degrades to an extraction-error report.
func (s *PipelineService) Process(ctx context.Context, uri string) (*domain.Report, error) {
	if s.extractor == nil || !s.extractor.Supports(uri) {
		return nil, fmt.Errorf("extract %s: %w", uri, domain.ErrUnsupportedInput)
	}

	logger.Section("Extraction")
	logger.Debug("Source: %s", uri)

	raw, err := s.extractor.Extract(ctx, uri)
	if err != nil {
		logger.Warn("Extraction failed: %v", err)
		return s.ProcessExtractionError(ctx, uri, raw)
	}
	return s.ProcessText(ctx, uri, raw)
}

// ProcessText runs the full pipeline on already-extracted raw text.
func (s *PipelineService) ProcessText(ctx context.Context, uri, rawText string) (*domain.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Section("Pipeline")
	logger.Debug("Raw length: %d bytes", len(rawText))

	cls := classifier.Classify(rawText)
	pre := prevalidate.Check(rawText)
	logger.Info("Classification: %s (density %.1f)", cls.Category, cls.Density)

	if cls.Category == domain.CategoryScanned {
		logger.Warn("Scanned document, skipping parse")
		return terminalReport(uri, domain.StatusScanned, rawText, cls, pre, msgScanned), nil
	}

	processed := s.preprocessor.Run(rawText)
	res := parser.ParseWith(processed, s.parserOpts)
	logger.Info("Parsed %d subjects, %d topics, confidence %d",
		res.Stats.TotalSubjects, res.Stats.TotalTopics, res.Stats.Confidence)

	diag := diagnose.Aggregate(domain.StatusOK, cls, pre, res, rawText)

	return &domain.Report{
		URI:           uri,
		Status:        domain.StatusOK,
		ProcessedText: processed,
		Disciplines:   res.Disciplines,
		Weights:       res.Weights,
		Debug:         res.Debug,
		Stats:         res.Stats,
		Diagnostic:    diag,
		Decision:      policy.Build(diag),
	}, nil
}

// ProcessExtractionError builds the terminal report for a failed extraction.
// The classifier and pre-validator still run on whatever partial text exists,
// so the diagnostic explains HOW the extraction went wrong.
func (s *PipelineService) ProcessExtractionError(ctx context.Context, uri, partialText string) (*domain.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cls := classifier.Classify(partialText)
	pre := prevalidate.Check(partialText)

	return terminalReport(uri, domain.StatusExtractionError, partialText, cls, pre, msgExtractionError), nil
}

// terminalReport assembles a report for a run where the parser never ran.
func terminalReport(uri string, status domain.Status, rawText string, cls domain.Classification, pre domain.Prevalidation, msg string) *domain.Report {
	diag := diagnose.Aggregate(status, cls, pre, nil, rawText)
	return &domain.Report{
		URI:        uri,
		Status:     status,
		RawText:    rawText,
		Diagnostic: diag,
		Decision:   policy.Build(diag),
		Message:    msg,
	}
}
