package commands

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/JeremyMcCormick/genaialogy/internal/biography"
	"github.com/JeremyMcCormick/genaialogy/internal/printer"
	"github.com/JeremyMcCormick/genaialogy/internal/report"
	"github.com/JeremyMcCormick/genaialogy/pkg/familytree"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	reportDryRun      bool
	reportOutFile     string
	reportConcurrency int
)

var reportCmd = &cobra.Command{
	Use:   "report ANCESTOR DESCENDANT",
	Short: "Write a biographical report for each generation of a lineage",
	Long: `Find the lineage from ANCESTOR to DESCENDANT and write a report with one
short biography per person, ancestor first.

Biographies are written by an OpenAI chat model from the facts recorded in the
GEDCOM file. The API key is read from $OPENAI_API_KEY; the model, temperature
and prompt come from the 'biography' section of genaialogy.yml.

With --dry-run no model is called: each section shows the facts that would
have been sent instead.

Examples:
  # Preview the report without calling the API
  genaialogy report "William McCormick" "Jeremy Isaac McCormick" --dry-run

  # Write the report to a file
  genaialogy report "William McCormick" "Jeremy Isaac McCormick" --out report.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportDryRun, "dry-run", false, "Show the facts for each person instead of calling the model")
	reportCmd.Flags().StringVar(&reportOutFile, "out", "", "Write the report to FILE instead of stdout")
	reportCmd.Flags().IntVar(&reportConcurrency, "concurrency", 0, "Biographies requested at once (default from config)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	ancestor, descendant := args[0], args[1]

	if reportConcurrency < 0 {
		return printer.Error(
			"invalid --concurrency",
			fmt.Sprintf("Concurrency must be at least 1, got %d", reportConcurrency),
			nil,
		)
	}

	tree, err := loadTree()
	if err != nil {
		return err
	}

	bio, err := newBiographer()
	if err != nil {
		return err
	}

	concurrency := cfg.Biography.Concurrency
	if reportConcurrency > 0 {
		concurrency = reportConcurrency
	}
	writer := report.New(tree, bio,
		report.WithConcurrency(concurrency),
		report.WithLogger(logger))

	// Render in memory so a failed biography never leaves a partial file
	var buf bytes.Buffer
	if err := writer.WriteLineage(cmd.Context(), &buf, ancestor, descendant); err != nil {
		if ctxErr := cmd.Context().Err(); ctxErr != nil {
			return fmt.Errorf("report cancelled: %w", ctxErr)
		}
		if familytree.IsNotFound(err) || familytree.IsPathNotFound(err) {
			return lookupError(err)
		}
		return printer.Error(
			"failed to generate report",
			err.Error(),
			[]string{"Retry, or preview the report with --dry-run"},
		)
	}

	if reportOutFile == "" {
		_, err := printer.Out().Write(buf.Bytes())
		return err
	}

	if err := os.WriteFile(reportOutFile, buf.Bytes(), 0o644); err != nil {
		return printer.Error(
			"failed to write report",
			err.Error(),
			[]string{"Check that the directory exists and is writable"},
		)
	}
	logger.Debug("Report written", zap.String("file", reportOutFile), zap.Int("bytes", buf.Len()))
	printer.Success("Report written to %s\n", reportOutFile)
	return nil
}

func newBiographer() (report.Biographer, error) {
	if reportDryRun {
		return biography.DryRun{}, nil
	}

	bio, err := biography.NewOpenAI(cfg.Biography, biography.APIKeyFromEnv(), logger)
	if errors.Is(err, biography.ErrMissingAPIKey) {
		return nil, printer.Error(
			"OpenAI API key not set",
			err.Error(),
			[]string{
				fmt.Sprintf("Export your key:\n  export %s=sk-...", biography.APIKeyEnv),
				"Preview without the API:\n  genaialogy report ANCESTOR DESCENDANT --dry-run",
			},
		)
	}
	if err != nil {
		return nil, err
	}
	return bio, nil
}
