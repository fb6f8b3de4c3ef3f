// Package listing renders saved lineages for the `lineage` command.
package listing

import (
	"context"
	"fmt"
	"io"

	"github.com/JeremyMcCormick/genaialogy/internal/filter"
	"github.com/JeremyMcCormick/genaialogy/pkg/archive"
)

// OutputFormat specifies how to format the lineage list output.
type OutputFormat string

const (
	// OutputFormatDefault uses a table with truncated names
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSONL outputs complete lineages as line-delimited JSON
	OutputFormatJSONL OutputFormat = "jsonl"
)

// ParseOutputFormat validates a --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case OutputFormatDefault, OutputFormatJSONL:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format: %s (must be 'default' or 'jsonl')", s)
	}
}

// List retrieves all lineages for the client's instance, applies the filter
// criteria and writes them oldest first.
func List(ctx context.Context, client *archive.Client, format OutputFormat, criteria *filter.Criteria, w io.Writer) error {
	lineages, err := client.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list lineages: %w", err)
	}
	lineages = criteria.Apply(lineages)

	switch format {
	case OutputFormatDefault:
		FormatTable(w, lineages, client.InstanceName())
	case OutputFormatJSONL:
		if err := FormatJSONL(w, lineages); err != nil {
			return fmt.Errorf("failed to format JSONL output: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}

	return nil
}
