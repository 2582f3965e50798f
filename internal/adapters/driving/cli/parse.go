package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/aprova-labs/edital-cli/internal/core/domain"
)

var (
	parseJSON             bool
	parseSave             bool
	parseExtractionFailed bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an edital text file into subjects, topics and weights",
	Long: `Runs the full processing pipeline over the extracted text of one
edital: classification, structural pre-validation, text repair, syllabus
parsing and the final UX decision.

With --extraction-failed the file is treated as the partial output of a
FAILED upstream extraction: the parser is skipped and the report explains
what the partial text reveals about the failure.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "output the report as JSON")
	parseCmd.Flags().BoolVar(&parseSave, "save", false, "persist the report to the local database")
	parseCmd.Flags().BoolVar(&parseExtractionFailed, "extraction-failed", false, "treat the file as partial text from a failed extraction")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	uri := args[0]

	if services.Pipeline == nil {
		return errors.New("pipeline not configured")
	}

	ctx := cmd.Context()

	var report *domain.Report
	var err error
	if parseExtractionFailed {
		// The file content IS the partial text of the failed extraction. A
		// missing or unreadable file just means no text was recovered.
		partial := readPartialText(uri)
		report, err = services.Pipeline.ProcessExtractionError(ctx, uri, partial)
	} else {
		report, err = services.Pipeline.Process(ctx, uri)
	}
	if err != nil {
		return fmt.Errorf("processing %s: %w", uri, err)
	}

	if parseSave {
		if services.Reports == nil {
			return errors.New("report store not configured")
		}
		if err := services.Reports.SaveReport(ctx, report); err != nil {
			return fmt.Errorf("saving report: %w", err)
		}
	}

	if jsonOutput(cmd) {
		return outputReportJSON(cmd, report)
	}
	outputReportText(cmd, report)
	return nil
}

// jsonOutput resolves the output format: the --json flag when given,
// otherwise the output.json configuration key.
func jsonOutput(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("json") {
		return parseJSON
	}
	return parseJSON || (services.Config != nil && services.Config.GetBool("output.json"))
}

// readPartialText reads whatever text a failed extraction left behind.
func readPartialText(uri string) string {
	data, err := os.ReadFile(uri)
	if err != nil {
		return ""
	}
	return strings.ToValidUTF8(string(data), "�")
}

// jsonDecision is the serialisable projection of the decision variant.
type jsonDecision struct {
	Mode   domain.Mode     `json:"mode"`
	Reason string          `json:"reason"`
	Detail domain.Decision `json:"detail"`
}

// jsonReport pairs the report with its decision, which the domain type keeps
// out of plain marshalling because it is an interface.
type jsonReport struct {
	*domain.Report
	Decision *jsonDecision `json:"decision,omitempty"`
}

func outputReportJSON(cmd *cobra.Command, report *domain.Report) error {
	out := jsonReport{Report: report}
	if report.Decision != nil {
		out.Decision = &jsonDecision{
			Mode:   report.Decision.Mode(),
			Reason: report.Decision.Reason(),
			Detail: report.Decision,
		}
	}

	data, err := sonic.ConfigDefault.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling report: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputReportText(cmd *cobra.Command, report *domain.Report) {
	if report.ID != "" {
		cmd.Printf("Report: %s\n", report.ID)
	}
	cmd.Printf("Status: %s\n", report.Status)
	if report.Message != "" {
		cmd.Printf("%s\n", report.Message)
	}

	if report.Status == domain.StatusOK {
		cmd.Printf("Confidence: %d/100  Completeness: %.0f%%\n",
			report.Stats.Confidence, report.Stats.Completeness)
		cmd.Println()
		outputDisciplines(cmd, report)
	}

	if report.Decision != nil {
		cmd.Println()
		outputDecision(cmd, report.Decision)
	}
}

func outputDisciplines(cmd *cobra.Command, report *domain.Report) {
	var pct map[string]float64
	if report.Weights != nil {
		pct = report.Weights.Percentages()
	}

	for _, d := range report.Disciplines {
		line := fmt.Sprintf("  %s: %d tópicos", d.Name, len(d.Topics))
		if share, ok := pct[d.Name]; ok {
			line += fmt.Sprintf(" (peso %.1f%%)", share)
		}
		cmd.Println(line)
	}

	if report.Weights != nil {
		cmd.Println()
		cmd.Printf("Tabela de pesos (%s):\n", weightMethodLabel(report.Weights.Method))
		names := make([]string, 0, len(pct))
		for name := range pct {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			cmd.Printf("  %s: %.1f%%\n", name, pct[name])
		}
	}
}

func outputDecision(cmd *cobra.Command, decision domain.Decision) {
	switch d := decision.(type) {
	case domain.Block:
		cmd.Printf("[BLOQUEIO] %s\n%s\n", d.Title, d.Message)
		cmd.Printf("Ação sugerida: %s\n", actionLabel(d.Primary))
		outputAlerts(cmd, d.OtherAlerts)
	case domain.Confirm:
		cmd.Printf("[ATENÇÃO] %s\n%s\n", d.Title, d.Message)
		cmd.Printf("Ação sugerida: %s\n", actionLabel(d.Primary))
		outputAlerts(cmd, d.OtherAlerts)
	case domain.Info:
		cmd.Printf("[AVISO] %s\n%s\n", d.Title, d.Message)
	}
}

func outputAlerts(cmd *cobra.Command, alerts []domain.Alert) {
	for _, a := range alerts {
		cmd.Printf("  também: %s\n", a.Title)
	}
}

func actionLabel(a domain.Action) string {
	switch a {
	case domain.ActionUploadOther:
		return "enviar outro arquivo"
	case domain.ActionRetry:
		return "tentar novamente"
	case domain.ActionContinue:
		return "continuar mesmo assim"
	default:
		return string(a)
	}
}

func weightMethodLabel(m domain.WeightMethod) string {
	if m == domain.WeightPoints {
		return "pontos"
	}
	return "questões"
}
