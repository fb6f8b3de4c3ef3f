package archive

import (
	"fmt"
	"time"

	"github.com/JeremyMcCormick/genaialogy/pkg/familytree"
	"github.com/google/uuid"
)

// Lineage is a saved ancestor-to-descendant path. Lineages are immutable
// once saved: re-running a query produces a new record with a new ID.
type Lineage struct {
	ID          string   `json:"id"`            // UUID - unique identifier for this lineage
	Ancestor    string   `json:"ancestor"`      // Name the search started from, as queried
	Descendant  string   `json:"descendant"`    // Name the search ended at, as queried
	Names       []string `json:"names"`         // Display names along the path, ancestor first
	Pointers    []string `json:"pointers"`      // GEDCOM cross-reference ids, parallel to Names
	SourceFile  string   `json:"source_file"`   // GEDCOM file the path was computed from
	CreatedAtMs int64    `json:"created_at_ms"` // Unix timestamp in milliseconds when the lineage was saved
}

// NewLineage captures a computed path for archiving. ancestor and descendant
// are the names the caller searched for.
func NewLineage(path familytree.Path, ancestor, descendant, sourceFile string) *Lineage {
	return &Lineage{
		ID:          uuid.New().String(),
		Ancestor:    ancestor,
		Descendant:  descendant,
		Names:       path.Names(),
		Pointers:    path.Pointers(),
		SourceFile:  sourceFile,
		CreatedAtMs: time.Now().UnixMilli(),
	}
}

// Generations returns the number of parent-to-child steps in the lineage.
func (l *Lineage) Generations() int {
	if len(l.Names) == 0 {
		return 0
	}
	return len(l.Names) - 1
}

// CreatedAt returns the save time.
func (l *Lineage) CreatedAt() time.Time {
	return time.UnixMilli(l.CreatedAtMs)
}

// Validate checks if the Lineage has valid field values.
// Returns an error if any validation fails.
func (l *Lineage) Validate() error {
	if !isValidUUID(l.ID) {
		return fmt.Errorf("invalid lineage ID: not a valid UUID")
	}

	if l.Ancestor == "" {
		return fmt.Errorf("ancestor cannot be empty")
	}

	if l.Descendant == "" {
		return fmt.Errorf("descendant cannot be empty")
	}

	if len(l.Names) == 0 {
		return fmt.Errorf("lineage path cannot be empty")
	}

	if len(l.Names) != len(l.Pointers) {
		return fmt.Errorf("lineage has %d names but %d pointers", len(l.Names), len(l.Pointers))
	}

	for i, ptr := range l.Pointers {
		if ptr == "" {
			return fmt.Errorf("empty pointer at index %d", i)
		}
	}

	return nil
}

// isValidUUID checks if a string is a valid UUID format.
func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
