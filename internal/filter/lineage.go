package filter

import (
	"path/filepath"

	"github.com/JeremyMcCormick/genaialogy/pkg/archive"
)

// Criteria defines filtering criteria for saved lineages.
// All filters are ANDed together - a lineage must match ALL criteria to pass.
type Criteria struct {
	SinceTimestampMs int64  // Unix timestamp in milliseconds, 0 = no filter
	UntilTimestampMs int64  // Unix timestamp in milliseconds, 0 = no filter
	NameGlob         string // Glob matched against every name on the path, empty = no filter
	SourceFile       string // Exact match for source_file, empty = no filter
}

// Matches returns true if the lineage matches all filter criteria.
// Empty/zero criteria values are treated as "match all" for that criterion.
func (c *Criteria) Matches(l *archive.Lineage) bool {
	if c.SinceTimestampMs > 0 && l.CreatedAtMs < c.SinceTimestampMs {
		return false
	}
	if c.UntilTimestampMs > 0 && l.CreatedAtMs > c.UntilTimestampMs {
		return false
	}

	if c.NameGlob != "" && !anyNameMatches(c.NameGlob, l.Names) {
		return false
	}

	if c.SourceFile != "" && l.SourceFile != c.SourceFile {
		return false
	}

	return true
}

// HasFilters returns true if any filters are active.
func (c *Criteria) HasFilters() bool {
	return c.SinceTimestampMs > 0 ||
		c.UntilTimestampMs > 0 ||
		c.NameGlob != "" ||
		c.SourceFile != ""
}

// Apply returns the lineages that match, preserving order.
func (c *Criteria) Apply(lineages []*archive.Lineage) []*archive.Lineage {
	if c == nil || !c.HasFilters() {
		return lineages
	}
	out := make([]*archive.Lineage, 0, len(lineages))
	for _, l := range lineages {
		if c.Matches(l) {
			out = append(out, l)
		}
	}
	return out
}

// anyNameMatches reports whether glob matches at least one name. A malformed
// glob matches nothing.
func anyNameMatches(glob string, names []string) bool {
	for _, name := range names {
		if matched, err := filepath.Match(glob, name); err == nil && matched {
			return true
		}
	}
	return false
}

// ValidateGlob reports a malformed pattern up front so the user is not
// silently shown an empty list.
func ValidateGlob(glob string) error {
	_, err := filepath.Match(glob, "")
	return err
}
