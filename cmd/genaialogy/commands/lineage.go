package commands

import (
	"errors"
	"fmt"

	"github.com/JeremyMcCormick/genaialogy/internal/filter"
	"github.com/JeremyMcCormick/genaialogy/internal/listing"
	"github.com/JeremyMcCormick/genaialogy/internal/printer"
	"github.com/JeremyMcCormick/genaialogy/internal/resolver"
	"github.com/JeremyMcCormick/genaialogy/internal/timespec"
	"github.com/JeremyMcCormick/genaialogy/pkg/archive"
	"github.com/spf13/cobra"
)

var (
	lineageOutputFormat string
	lineageSince        string
	lineageUntil        string
	lineageName         string
	lineageSource       string
	lineageDelete       bool
)

var lineageCmd = &cobra.Command{
	Use:   "lineage [LINEAGE_ID]",
	Short: "Inspect archived lineages with filtering",
	Long: `Inspect lineages saved with 'genaialogy path --save'.

List Mode (no LINEAGE_ID):
  Displays archived lineages matching filters as a table or JSONL stream.

Get Mode (with LINEAGE_ID):
  Displays the full chain of a single lineage. Supports short IDs
  (e.g., "abc123" instead of the full UUID).

Output Formats:
  default - Human-readable table, or the chain of names in get mode
  jsonl   - Line-delimited JSON, one lineage per line

Time Filters (list mode only):
  --since  - Show lineages saved after this time
  --until  - Show lineages saved before this time

Content Filters (list mode only):
  --name   - Lineages passing through a matching person (glob: "*McCormick")
  --source - Lineages read from this GEDCOM file (exact match)

Examples:
  # List everything archived in the default instance
  genaialogy lineage

  # Lineages through a McCormick saved in the last day
  genaialogy lineage --name="*McCormick" --since=24h

  # Pipe to jq
  genaialogy lineage --output=jsonl | jq -r '.names | join(" > ")'

  # Show, then delete, one lineage by short ID
  genaialogy lineage 3f2a9c
  genaialogy lineage 3f2a9c --delete`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLineage,
}

func init() {
	lineageCmd.Flags().StringVarP(&lineageOutputFormat, "output", "o", "default", "Output format: default or jsonl")

	// Time-based filters
	lineageCmd.Flags().StringVar(&lineageSince, "since", "", "Show lineages saved after time (duration, date or RFC3339)")
	lineageCmd.Flags().StringVar(&lineageUntil, "until", "", "Show lineages saved before time (duration, date or RFC3339)")

	// Content-based filters
	lineageCmd.Flags().StringVar(&lineageName, "name", "", "Filter by a person on the lineage (glob pattern)")
	lineageCmd.Flags().StringVar(&lineageSource, "source", "", "Filter by GEDCOM source file (exact match)")

	lineageCmd.Flags().BoolVar(&lineageDelete, "delete", false, "Delete the lineage instead of showing it (get mode only)")

	rootCmd.AddCommand(lineageCmd)
}

func runLineage(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	isGetMode := len(args) > 0

	outputFormat, err := listing.ParseOutputFormat(lineageOutputFormat)
	if err != nil {
		return printer.Error(
			"invalid output format",
			fmt.Sprintf("Unknown format: %s", lineageOutputFormat),
			[]string{"Valid formats: default, jsonl"},
		)
	}

	if lineageDelete && !isGetMode {
		return printer.Error(
			"--delete needs a lineage ID",
			"Deleting is done one lineage at a time.",
			[]string{"Find the ID first:\n  genaialogy lineage"},
		)
	}

	// Validate list filters before touching Redis
	var criteria *filter.Criteria
	if !isGetMode {
		sinceMS, untilMS, err := timespec.ParseRange(lineageSince, lineageUntil)
		if err != nil {
			return printer.Error(
				"invalid time filter",
				err.Error(),
				[]string{"Use a duration like '1h30m', a date like '2025-10-29' or RFC3339 like '2025-10-29T13:00:00Z'"},
			)
		}
		if err := filter.ValidateGlob(lineageName); err != nil {
			return printer.Error(
				"invalid name filter",
				err.Error(),
				[]string{"Use * and ? wildcards, e.g. --name=\"*McCormick\""},
			)
		}
		criteria = &filter.Criteria{
			SinceTimestampMs: sinceMS,
			UntilTimestampMs: untilMS,
			NameGlob:         lineageName,
			SourceFile:       lineageSource,
		}
	}

	client, err := openArchive(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if !isGetMode {
		if err := listing.List(ctx, client, outputFormat, criteria, printer.Out()); err != nil {
			return fmt.Errorf("failed to list lineages: %w", err)
		}
		return nil
	}

	shortID := args[0]
	fullID, err := resolver.ResolveLineageID(ctx, client, shortID)
	if err != nil {
		if resolver.IsNotFoundError(err) {
			return printer.Error(
				fmt.Sprintf("lineage with ID '%s' not found", shortID),
				fmt.Sprintf("No lineage with that ID is archived in instance '%s'.", client.InstanceName()),
				[]string{
					"List all lineages:\n  genaialogy lineage",
					"Check the instance:\n  genaialogy lineage --instance <name>",
				},
			)
		}
		var ambigErr *resolver.AmbiguousError
		if errors.As(err, &ambigErr) {
			fmt.Fprintln(printer.ErrOut(), resolver.FormatAmbiguousError(ambigErr))
			return fmt.Errorf("ambiguous short ID")
		}
		return printer.Error("invalid lineage ID", err.Error(), nil)
	}

	if lineageDelete {
		if err := client.Delete(ctx, fullID); err != nil {
			if archive.IsNotFound(err) {
				return printer.Error(
					fmt.Sprintf("lineage with ID '%s' not found", fullID),
					"The lineage was resolved but had already been deleted.",
					nil,
				)
			}
			return fmt.Errorf("failed to delete lineage: %w", err)
		}
		printer.Success("Deleted lineage %s\n", fullID)
		return nil
	}

	if err := listing.Get(ctx, client, fullID, outputFormat, printer.Out()); err != nil {
		if listing.IsNotFound(err) {
			return printer.Error(
				fmt.Sprintf("lineage with ID '%s' not found", fullID),
				"The lineage was resolved but could not be fetched.",
				[]string{"It may have been deleted in the meantime. Try again."},
			)
		}
		return fmt.Errorf("failed to get lineage: %w", err)
	}
	return nil
}
