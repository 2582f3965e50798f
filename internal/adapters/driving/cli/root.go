// Package cli implements the cobra command tree of the edital tool.
//
// Commands receive their collaborators through SetServices; they never build
// adapters themselves, so tests can inject fakes and the composition root in
// cmd/edital stays the single place that wires the application.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aprova-labs/edital-cli/internal/core/ports/driven"
	"github.com/aprova-labs/edital-cli/internal/core/ports/driving"
	"github.com/aprova-labs/edital-cli/internal/logger"
)

var verboseFlag bool

// Services holds the application services the commands depend on.
type Services struct {
	Pipeline driving.Pipeline
	Reports  driven.ReportStore
	Config   driven.ConfigStore
}

var services Services

// SetServices injects the application services into the command tree.
func SetServices(s Services) {
	services = s
}

var rootCmd = &cobra.Command{
	Use:   "edital",
	Short: "Extract syllabus structure from exam notice text",
	Long: `edital parses the extracted text of Brazilian public exam notices
(editais) into subjects, topics and exam weights, with diagnostics
explaining how trustworthy the extraction is.

The input is a text file produced by an upstream PDF text extractor;
this tool never reads binary documents.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a cancellation context, so that
// long-running commands like watch stop on interrupt.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
