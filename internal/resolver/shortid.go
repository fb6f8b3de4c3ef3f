package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JeremyMcCormick/genaialogy/pkg/archive"
)

// MinShortIDLength is the minimum required length for short ID prefixes.
const MinShortIDLength = 6

// maxListedMatches caps the IDs shown for an ambiguous prefix.
const maxListedMatches = 10

// ResolveLineageID resolves a short ID prefix to a full lineage UUID.
//
// The function handles three cases:
//  1. Input is already a full UUID (36 chars, 4 hyphens) - validates existence
//  2. Input is too short (< 6 chars) - returns validation error
//  3. Input is a short prefix - scans for matches and returns the unique result
func ResolveLineageID(ctx context.Context, client *archive.Client, shortID string) (string, error) {
	shortID = strings.ToLower(strings.TrimSpace(shortID))

	if len(shortID) == 36 && strings.Count(shortID, "-") == 4 {
		ok, err := client.Exists(ctx, shortID)
		if err != nil {
			return "", fmt.Errorf("failed to verify lineage existence: %w", err)
		}
		if !ok {
			return "", &NotFoundError{ShortID: shortID}
		}
		return shortID, nil
	}

	if len(shortID) < MinShortIDLength {
		return "", fmt.Errorf("short ID must be at least %d characters (got %d)", MinShortIDLength, len(shortID))
	}

	// SCAN patterns treat these as wildcards.
	if strings.ContainsAny(shortID, `*?[]\`) {
		return "", fmt.Errorf("short ID may only contain hex digits and hyphens: %s", shortID)
	}

	matches, err := client.ScanIDs(ctx, shortID)
	if err != nil {
		return "", fmt.Errorf("failed to search for lineage: %w", err)
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{ShortID: shortID}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguousError{ShortID: shortID, Matches: matches}
	}
}

// NotFoundError indicates no lineages matched the short ID.
type NotFoundError struct {
	ShortID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no lineages found matching '%s'", e.ShortID)
}

// AmbiguousError indicates multiple lineages matched the short ID.
type AmbiguousError struct {
	ShortID string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous short ID '%s' matches %d lineages", e.ShortID, len(e.Matches))
}

// FormatAmbiguousError lists the matching IDs (up to 10, then "...and N more").
func FormatAmbiguousError(err *AmbiguousError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Short ID '%s' matches %d lineages:\n", err.ShortID, len(err.Matches))

	shown := err.Matches
	if len(shown) > maxListedMatches {
		shown = shown[:maxListedMatches]
	}
	for _, id := range shown {
		fmt.Fprintf(&b, "  %s\n", id)
	}
	if rest := len(err.Matches) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "  ...and %d more\n", rest)
	}

	b.WriteString("\nUse a longer prefix to uniquely identify the lineage.")
	return b.String()
}

// IsNotFoundError checks if an error is a NotFoundError.
func IsNotFoundError(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsAmbiguousError checks if an error is an AmbiguousError.
func IsAmbiguousError(err error) bool {
	var amb *AmbiguousError
	return errors.As(err, &amb)
}
