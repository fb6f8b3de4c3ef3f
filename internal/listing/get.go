package listing

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/JeremyMcCormick/genaialogy/pkg/archive"
	"github.com/google/uuid"
)

// Get retrieves a single lineage by full ID and writes it in the requested
// format: the default shows the chain of names, jsonl a compact record.
func Get(ctx context.Context, client *archive.Client, lineageID string, format OutputFormat, w io.Writer) error {
	if _, err := uuid.Parse(lineageID); err != nil {
		return fmt.Errorf("invalid lineage ID format: must be a valid UUID")
	}

	lineage, err := client.Get(ctx, lineageID)
	if err != nil {
		if archive.IsNotFound(err) {
			return &LineageNotFoundError{LineageID: lineageID}
		}
		return fmt.Errorf("failed to fetch lineage: %w", err)
	}

	switch format {
	case OutputFormatDefault:
		FormatDetail(w, lineage)
		return nil
	case OutputFormatJSONL:
		return FormatJSONL(w, []*archive.Lineage{lineage})
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

// LineageNotFoundError represents a specific "lineage not found" error.
type LineageNotFoundError struct {
	LineageID string
}

func (e *LineageNotFoundError) Error() string {
	return fmt.Sprintf("lineage with ID '%s' not found", e.LineageID)
}

// IsNotFound reports whether err is, or wraps, a LineageNotFoundError.
func IsNotFound(err error) bool {
	var target *LineageNotFoundError
	return errors.As(err, &target)
}
