// Package policy maps a Diagnostic onto the UX decision the caller must
// render. The mapping is deterministic and total: structurally equal
// diagnostics always yield structurally equal decisions, and a clean run
// yields none at all.
package policy

import "github.com/aprova-labs/edital-cli/internal/core/domain"

// lowConfidenceFloor is the confidence score below which a successful run
// still earns an informational alert.
const lowConfidenceFloor = 40

// maxOtherAlerts bounds the secondary alerts attached to a decision.
const maxOtherAlerts = 2

// Reason keys, stable across releases: callers key analytics and copy
// overrides on them.
const (
	ReasonBrokenStructure  = "broken_structure"
	ReasonScannedStatus    = "scanned_status"
	ReasonExtractionError  = "extraction_error_status"
	ReasonScanned          = "scanned"
	ReasonTextInsufficient = "text_insufficient"
	ReasonFragmented       = "fragmented"
	ReasonBrokenHeadings   = "broken_headings"
	ReasonLostAnnex        = "possible_lost_annex"
	ReasonLowDensity       = "low_density"
	ReasonMissingKeywords  = "missing_keywords"
	ReasonRepetitiveNoise  = "repetitive_noise"
	ReasonLowConfidence    = "low_confidence"
)

// Message preambles per interaction mode. Info messages go out verbatim.
const (
	blockPreamble   = "Não é possível extrair o conteúdo deste edital com segurança. "
	confirmPreamble = "Você pode continuar, mas o resultado pode ficar incompleto. "
)

// flagRecord is the fixed decision material of one diagnostic flag.
type flagRecord struct {
	key       string
	severity  domain.Severity
	title     string
	message   string
	primary   domain.Action
	secondary domain.Action
}

// records holds one fixed record per flag. User-facing copy is pt-BR, the
// language of the documents and of the product.
var records = map[string]flagRecord{
	ReasonBrokenStructure: {
		key:      ReasonBrokenStructure,
		severity: domain.SeverityHigh,
		title:    "Estrutura do texto comprometida",
		message: "O texto extraído está fragmentado em colunas ou tabelas quebradas " +
			"e não pode ser interpretado com segurança.",
		primary:   domain.ActionUploadOther,
		secondary: domain.ActionRetry,
	},
	ReasonScannedStatus: {
		key:       ReasonScannedStatus,
		severity:  domain.SeverityHigh,
		title:     "Documento escaneado",
		message:   "Este edital parece ser uma imagem escaneada, sem camada de texto aproveitável.",
		primary:   domain.ActionUploadOther,
		secondary: domain.ActionRetry,
	},
	ReasonExtractionError: {
		key:       ReasonExtractionError,
		severity:  domain.SeverityHigh,
		title:     "Falha na extração do texto",
		message:   "Não foi possível extrair o texto deste arquivo.",
		primary:   domain.ActionRetry,
		secondary: domain.ActionUploadOther,
	},
	ReasonScanned: {
		key:       ReasonScanned,
		severity:  domain.SeverityHigh,
		title:     "Documento sem texto aproveitável",
		message:   "O conteúdo deste edital parece ser uma imagem, sem texto selecionável.",
		primary:   domain.ActionUploadOther,
		secondary: domain.ActionRetry,
	},
	ReasonTextInsufficient: {
		key:       ReasonTextInsufficient,
		severity:  domain.SeverityHigh,
		title:     "Texto insuficiente",
		message:   "O texto extraído é curto demais para conter um conteúdo programático.",
		primary:   domain.ActionUploadOther,
		secondary: domain.ActionRetry,
	},
	ReasonFragmented: {
		key:       ReasonFragmented,
		severity:  domain.SeverityMedium,
		title:     "Extração parcial do texto",
		message:   "Parte do texto do edital pode ter sido perdida durante a extração.",
		primary:   domain.ActionContinue,
		secondary: domain.ActionUploadOther,
	},
	ReasonBrokenHeadings: {
		key:       ReasonBrokenHeadings,
		severity:  domain.SeverityMedium,
		title:     "Disciplinas não localizadas",
		message:   "Os títulos das disciplinas não foram localizados no conteúdo programático.",
		primary:   domain.ActionContinue,
		secondary: domain.ActionUploadOther,
	},
	ReasonLostAnnex: {
		key:       ReasonLostAnnex,
		severity:  domain.SeverityMedium,
		title:     "Anexo de conteúdo não encontrado",
		message:   "O anexo com o conteúdo programático não foi encontrado no texto extraído.",
		primary:   domain.ActionContinue,
		secondary: domain.ActionUploadOther,
	},
	ReasonLowDensity: {
		key:      ReasonLowDensity,
		severity: domain.SeverityMedium,
		title:    "Texto com baixa densidade",
		message: "As linhas do texto extraído estão curtas demais, o que costuma " +
			"indicar perda de conteúdo.",
		primary:   domain.ActionContinue,
		secondary: domain.ActionUploadOther,
	},
	ReasonMissingKeywords: {
		key:       ReasonMissingKeywords,
		severity:  domain.SeverityMedium,
		title:     "Vocabulário de edital ausente",
		message:   "O texto não menciona conteúdo programático nem disciplinas.",
		primary:   domain.ActionContinue,
		secondary: domain.ActionUploadOther,
	},
	ReasonRepetitiveNoise: {
		key:      ReasonRepetitiveNoise,
		severity: domain.SeverityLow,
		title:    "Cabeçalhos repetidos no texto",
		message: "Trechos repetidos de cabeçalho ou rodapé foram detectados e podem " +
			"poluir os tópicos extraídos.",
	},
	ReasonLowConfidence: {
		key:      ReasonLowConfidence,
		severity: domain.SeverityLow,
		title:    "Confiança baixa na extração",
		message: "A extração foi concluída, mas com confiança reduzida. Revise as " +
			"disciplinas e os tópicos antes de usar o resultado.",
	},
}

// Priority orders within a severity tier. A flag missing from its order list
// falls back to collection order.
var (
	highPriority = []string{
		ReasonBrokenStructure,
		ReasonScannedStatus,
		ReasonExtractionError,
		ReasonScanned,
		ReasonTextInsufficient,
	}
	mediumPriority = []string{
		ReasonFragmented,
		ReasonBrokenHeadings,
		ReasonLostAnnex,
		ReasonLowDensity,
		ReasonMissingKeywords,
	}
)

// Build derives the UX decision for one diagnostic. It returns nil when the
// status is ok and no flag is active.
func Build(d domain.Diagnostic) domain.Decision {
	active := collect(d)
	if len(active) == 0 {
		return nil
	}

	var highs, mediums, lows []flagRecord
	for _, r := range active {
		switch r.severity {
		case domain.SeverityHigh:
			highs = append(highs, r)
		case domain.SeverityMedium:
			mediums = append(mediums, r)
		default:
			lows = append(lows, r)
		}
	}

	if len(highs) > 0 {
		chosen := pick(highs, highPriority)
		return domain.Block{
			Title:       chosen.title,
			Message:     blockPreamble + chosen.message,
			Primary:     chosen.primary,
			Secondary:   chosen.secondary,
			OtherAlerts: otherAlerts(highs, chosen),
			ReasonKey:   chosen.key,
		}
	}

	if len(mediums) > 0 {
		chosen, ok := pickListed(mediums, mediumPriority)
		if !ok {
			// A medium flag outside the priority list has no copy of its
			// own; degrade to the generic continue-with-risk decision.
			return domain.Confirm{
				Title:     "Resultado possivelmente incompleto",
				Message:   confirmPreamble + "Revise o resultado antes de usar.",
				Primary:   domain.ActionContinue,
				Secondary: domain.ActionUploadOther,
				ReasonKey: "continue_with_risk",
			}
		}
		return domain.Confirm{
			Title:       chosen.title,
			Message:     confirmPreamble + chosen.message,
			Primary:     chosen.primary,
			Secondary:   chosen.secondary,
			OtherAlerts: otherAlerts(mediums, chosen),
			ReasonKey:   chosen.key,
		}
	}

	chosen := lows[0]
	return domain.Info{
		Title:     chosen.title,
		Message:   chosen.message,
		ReasonKey: chosen.key,
	}
}

// collect gathers the active flag records in a fixed order: terminal status
// first, then classifier, pre-validator and parser flags, then informational
// flags.
func collect(d domain.Diagnostic) []flagRecord {
	var out []flagRecord
	add := func(key string) { out = append(out, records[key]) }

	switch d.Status {
	case domain.StatusScanned:
		add(ReasonScannedStatus)
	case domain.StatusExtractionError:
		add(ReasonExtractionError)
	}

	switch d.Classification.Category {
	case domain.CategoryScanned:
		add(ReasonScanned)
	case domain.CategoryFragmented:
		add(ReasonFragmented)
	}

	f := d.Prevalidation.Flags
	if f.BrokenStructure {
		add(ReasonBrokenStructure)
	}
	if f.TextInsufficient {
		add(ReasonTextInsufficient)
	}
	if f.LowDensity {
		add(ReasonLowDensity)
	}
	if f.MissingKeywords {
		add(ReasonMissingKeywords)
	}
	if f.RepetitiveNoise {
		add(ReasonRepetitiveNoise)
	}

	if d.PossibleLostAnnex {
		add(ReasonLostAnnex)
	}
	if d.BrokenHeadings {
		add(ReasonBrokenHeadings)
	}

	if d.Status == domain.StatusOK && d.Confidence < lowConfidenceFloor {
		add(ReasonLowConfidence)
	}

	return out
}

// pick returns the first record matching the priority order, falling back to
// collection order.
func pick(set []flagRecord, order []string) flagRecord {
	if r, ok := pickListed(set, order); ok {
		return r
	}
	return set[0]
}

// pickListed returns the first record matching the priority order.
func pickListed(set []flagRecord, order []string) (flagRecord, bool) {
	for _, key := range order {
		for _, r := range set {
			if r.key == key {
				return r, true
			}
		}
	}
	return flagRecord{}, false
}

// otherAlerts converts up to two remaining same-severity records into
// secondary alerts.
func otherAlerts(set []flagRecord, chosen flagRecord) []domain.Alert {
	var out []domain.Alert
	for _, r := range set {
		if r.key == chosen.key || len(out) >= maxOtherAlerts {
			continue
		}
		out = append(out, domain.Alert{
			ReasonKey: r.key,
			Title:     r.title,
			Message:   r.message,
			Severity:  r.severity,
		})
	}
	return out
}
