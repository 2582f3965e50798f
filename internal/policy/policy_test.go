package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aprova-labs/edital-cli/internal/core/domain"
)

func cleanDiagnostic() domain.Diagnostic {
	return domain.Diagnostic{
		Status:       domain.StatusOK,
		SubjectCount: 5,
		TopicCount:   40,
		Completeness: 100,
		Confidence:   90,
	}
}

func TestBuild_CleanRunYieldsNoDecision(t *testing.T) {
	assert.Nil(t, Build(cleanDiagnostic()))
}

func TestBuild_ScannedStatusBlocks(t *testing.T) {
	d := domain.Diagnostic{
		Status:         domain.StatusScanned,
		Classification: domain.Classification{Category: domain.CategoryScanned},
		Prevalidation: domain.Prevalidation{
			Flags: domain.PrevalidationFlags{TextInsufficient: true},
		},
	}

	dec := Build(d)
	require.NotNil(t, dec)
	block, ok := dec.(domain.Block)
	require.True(t, ok)

	assert.Equal(t, ReasonScannedStatus, block.ReasonKey)
	assert.Equal(t, domain.ActionUploadOther, block.Primary)
	assert.Contains(t, block.Message, "Não é possível extrair")

	// The other high flags ride along as secondary alerts.
	require.Len(t, block.OtherAlerts, 2)
	assert.Equal(t, ReasonScanned, block.OtherAlerts[0].ReasonKey)
	assert.Equal(t, ReasonTextInsufficient, block.OtherAlerts[1].ReasonKey)
}

func TestBuild_BrokenStructureOutranksTerminalStatus(t *testing.T) {
	d := domain.Diagnostic{
		Status: domain.StatusExtractionError,
		Prevalidation: domain.Prevalidation{
			Flags: domain.PrevalidationFlags{BrokenStructure: true},
		},
	}

	dec := Build(d)
	block, ok := dec.(domain.Block)
	require.True(t, ok)
	assert.Equal(t, ReasonBrokenStructure, block.ReasonKey)
}

func TestBuild_HighOutranksMedium(t *testing.T) {
	d := cleanDiagnostic()
	d.Prevalidation.Flags.BrokenStructure = true
	d.Prevalidation.Flags.LowDensity = true
	d.Prevalidation.Flags.MissingKeywords = true
	d.PossibleLostAnnex = true

	dec := Build(d)
	require.NotNil(t, dec)
	assert.Equal(t, domain.ModeBlock, dec.Mode())
	assert.Equal(t, ReasonBrokenStructure, dec.Reason())
}

func TestBuild_MediumPriorityOrder(t *testing.T) {
	d := cleanDiagnostic()
	d.Classification.Category = domain.CategoryFragmented
	d.PossibleLostAnnex = true
	d.BrokenHeadings = true

	dec := Build(d)
	confirm, ok := dec.(domain.Confirm)
	require.True(t, ok)

	assert.Equal(t, ReasonFragmented, confirm.ReasonKey)
	assert.Equal(t, domain.ActionContinue, confirm.Primary)
	assert.Contains(t, confirm.Message, "Você pode continuar")

	require.Len(t, confirm.OtherAlerts, 2)
	assert.Equal(t, ReasonLostAnnex, confirm.OtherAlerts[0].ReasonKey)
	assert.Equal(t, ReasonBrokenHeadings, confirm.OtherAlerts[1].ReasonKey)
}

func TestBuild_OtherAlertsCappedAtTwo(t *testing.T) {
	d := cleanDiagnostic()
	d.Classification.Category = domain.CategoryFragmented
	d.PossibleLostAnnex = true
	d.BrokenHeadings = true
	d.Prevalidation.Flags.LowDensity = true
	d.Prevalidation.Flags.MissingKeywords = true

	confirm, ok := Build(d).(domain.Confirm)
	require.True(t, ok)
	assert.Len(t, confirm.OtherAlerts, 2)
}

func TestBuild_LowOnlyYieldsInfo(t *testing.T) {
	d := cleanDiagnostic()
	d.Prevalidation.Flags.RepetitiveNoise = true

	dec := Build(d)
	info, ok := dec.(domain.Info)
	require.True(t, ok)

	assert.Equal(t, ReasonRepetitiveNoise, info.ReasonKey)
	assert.Equal(t, domain.ModeInfo, dec.Mode())
	// Info copy carries no preamble.
	assert.NotContains(t, info.Message, "Você pode continuar")
}

func TestBuild_LowConfidenceIsInformational(t *testing.T) {
	d := cleanDiagnostic()
	d.Confidence = 25

	dec := Build(d)
	info, ok := dec.(domain.Info)
	require.True(t, ok)
	assert.Equal(t, ReasonLowConfidence, info.ReasonKey)

	// At or above the floor no flag fires.
	d.Confidence = 40
	assert.Nil(t, Build(d))
}

func TestBuild_LowConfidenceOnlyForOKStatus(t *testing.T) {
	d := domain.Diagnostic{
		Status:     domain.StatusExtractionError,
		Confidence: 0,
	}
	dec := Build(d)
	block, ok := dec.(domain.Block)
	require.True(t, ok)
	assert.Equal(t, ReasonExtractionError, block.ReasonKey)
	assert.Empty(t, block.OtherAlerts)
}

func TestBuild_Deterministic(t *testing.T) {
	d := cleanDiagnostic()
	d.Classification.Category = domain.CategoryFragmented
	d.Prevalidation.Flags.LowDensity = true
	d.PossibleLostAnnex = true

	first := Build(d)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Build(d))
	}
}
