package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	reportsLimit int
	reportsJSON  bool
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Manage saved reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reports, newest first",
	RunE:  runReportsList,
}

var reportsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one saved report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportsShow,
}

var reportsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete one saved report",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportsDelete,
}

func init() {
	reportsListCmd.Flags().IntVarP(&reportsLimit, "limit", "n", 20, "maximum number of reports")
	reportsShowCmd.Flags().BoolVar(&reportsJSON, "json", false, "output the report as JSON")
	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsShowCmd)
	reportsCmd.AddCommand(reportsDeleteCmd)
	rootCmd.AddCommand(reportsCmd)
}

func runReportsList(cmd *cobra.Command, _ []string) error {
	if services.Reports == nil {
		return errors.New("report store not configured")
	}

	summaries, err := services.Reports.ListReports(cmd.Context(), reportsLimit)
	if err != nil {
		return fmt.Errorf("listing reports: %w", err)
	}

	if len(summaries) == 0 {
		cmd.Println("No saved reports.")
		return nil
	}

	for _, s := range summaries {
		cmd.Printf("%s  %-16s  %s  conf=%d  %d/%d\n",
			s.CreatedAt.Format("2006-01-02 15:04"), s.Status, s.ID,
			s.Confidence, s.SubjectCount, s.TopicCount)
		if s.URI != "" {
			cmd.Printf("    %s\n", s.URI)
		}
	}
	return nil
}

func runReportsShow(cmd *cobra.Command, args []string) error {
	if services.Reports == nil {
		return errors.New("report store not configured")
	}

	report, err := services.Reports.GetReport(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("loading report %s: %w", args[0], err)
	}

	if reportsJSON {
		return outputReportJSON(cmd, report)
	}
	outputReportText(cmd, report)
	return nil
}

func runReportsDelete(cmd *cobra.Command, args []string) error {
	if services.Reports == nil {
		return errors.New("report store not configured")
	}

	if err := services.Reports.DeleteReport(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deleting report %s: %w", args[0], err)
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}
