package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aprova-labs/edital-cli/internal/core/domain"
	"github.com/aprova-labs/edital-cli/internal/policy"
)

// stubExtractor is a canned driven.TextExtractor for service tests.
type stubExtractor struct {
	text string
	err  error
}

func (s *stubExtractor) Extract(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

func (s *stubExtractor) Supports(uri string) bool {
	return strings.HasSuffix(uri, ".txt")
}

func TestProcessText_ScannedShortCircuit(t *testing.T) {
	// ~600 runes, no anchor vocabulary anywhere: classified as scanned, the
	// parser never runs and the user gets a blocking decision.
	raw := strings.Repeat("um texto qualquer sem marcadores uteis para nada aqui. ", 11)

	svc := NewPipelineService(nil)
	report, err := svc.ProcessText(context.Background(), "doc.txt", raw)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusScanned, report.Status)
	assert.Equal(t, domain.CategoryScanned, report.Diagnostic.Classification.Category)
	assert.Empty(t, report.Disciplines)
	assert.Empty(t, report.ProcessedText)
	assert.Equal(t, raw, report.RawText)
	assert.NotEmpty(t, report.Message)

	require.NotNil(t, report.Decision)
	assert.Equal(t, domain.ModeBlock, report.Decision.Mode())
	assert.Equal(t, policy.ReasonScannedStatus, report.Decision.Reason())
}

func TestProcessText_SingleSubjectSyllabus(t *testing.T) {
	// Long document whose only structure is the syllabus annex with one
	// subject and two numbered topics.
	raw := strings.Repeat("linha de enchimento com texto variado e neutro aqui\n", 40) +
		"ANEXO II - CONTEÚDO PROGRAMÁTICO\n" +
		"LÍNGUA PORTUGUESA: 1. Fonologia do português. 2. Morfologia aplicada.\n"

	svc := NewPipelineService(nil)
	report, err := svc.ProcessText(context.Background(), "doc.txt", raw)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusOK, report.Status)
	assert.NotEmpty(t, report.ProcessedText)

	var lp *domain.Discipline
	for i := range report.Disciplines {
		if report.Disciplines[i].Name == "Língua Portuguesa" {
			lp = &report.Disciplines[i]
		}
	}
	require.NotNil(t, lp)
	assert.Len(t, lp.Topics, 2)
	assert.Greater(t, report.Stats.Confidence, 0)

	// Only one of the fallback subjects was found: the decision asks for
	// confirmation about the broken headings.
	require.NotNil(t, report.Decision)
	assert.Equal(t, domain.ModeConfirm, report.Decision.Mode())
	assert.Equal(t, policy.ReasonBrokenHeadings, report.Decision.Reason())
}

func TestProcessText_WeightedDocument(t *testing.T) {
	raw := `EDITAL DE CONCURSO PÚBLICO

Quadro 1 - Estrutura da prova objetiva
Língua Portuguesa 10 questões
Matemática 10 questões
Noções de Informática 5 questões
Direito Constitucional 10 questões
Conhecimentos Específicos 15 questões

ANEXO II - CONTEÚDO PROGRAMÁTICO
LÍNGUA PORTUGUESA: 1. Fonologia. 2. Morfologia. 3. Sintaxe.
MATEMÁTICA: 1. Conjuntos numéricos. 2. Funções do primeiro grau.
NOÇÕES DE INFORMÁTICA: 1. Componentes de hardware. 2. Softwares aplicativos.
DIREITO CONSTITUCIONAL: 1. Princípios fundamentais da Constituição.
CONHECIMENTOS ESPECÍFICOS: 1. Rotinas administrativas. 2. Atendimento ao cidadão.
`

	svc := NewPipelineService(nil)
	report, err := svc.ProcessText(context.Background(), "doc.txt", raw)
	require.NoError(t, err)

	require.NotNil(t, report.Weights)
	assert.Equal(t, domain.WeightQuestions, report.Weights.Method)
	require.Len(t, report.Weights.Weights, 5)

	total := 0.0
	for _, pct := range report.Weights.Percentages() {
		total += pct
	}
	assert.InDelta(t, 100.0, total, 0.1)
}

func TestProcessExtractionError(t *testing.T) {
	svc := NewPipelineService(nil)
	report, err := svc.ProcessExtractionError(context.Background(), "doc.txt", "")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusExtractionError, report.Status)
	assert.NotEmpty(t, report.Message)
	assert.Empty(t, report.Disciplines)

	require.NotNil(t, report.Decision)
	assert.Equal(t, domain.ModeBlock, report.Decision.Mode())
	assert.Equal(t, policy.ReasonExtractionError, report.Decision.Reason())
}

func TestProcess_ExtractorFailureDegrades(t *testing.T) {
	svc := NewPipelineService(&stubExtractor{err: errors.New("boom")})
	report, err := svc.Process(context.Background(), "doc.txt")
	require.NoError(t, err, "extraction failure is a report, not an error")

	assert.Equal(t, domain.StatusExtractionError, report.Status)
}

func TestProcess_UnsupportedInput(t *testing.T) {
	svc := NewPipelineService(&stubExtractor{})
	_, err := svc.Process(context.Background(), "doc.pdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedInput)

	svc = NewPipelineService(nil)
	_, err = svc.Process(context.Background(), "doc.txt")
	assert.ErrorIs(t, err, domain.ErrUnsupportedInput)
}

func TestProcessText_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewPipelineService(nil)
	_, err := svc.ProcessText(ctx, "doc.txt", "qualquer texto")
	assert.ErrorIs(t, err, context.Canceled)
}
