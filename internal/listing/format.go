package listing

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/JeremyMcCormick/genaialogy/pkg/archive"
	"github.com/JeremyMcCormick/genaialogy/pkg/familytree"
)

const nameColumnWidth = 24

// FormatTable writes lineages as a table with columns ID, AGE, GEN, ANCESTOR
// and DESCENDANT. Returns the number of lineages formatted.
func FormatTable(w io.Writer, lineages []*archive.Lineage, instanceName string) int {
	if len(lineages) == 0 {
		fmt.Fprintf(w, "No lineages found for instance '%s'\n", instanceName)
		return 0
	}

	fmt.Fprintf(w, "Lineages for instance '%s':\n\n", instanceName)

	fmt.Fprintf(w, "%-8s  %-8s  %-3s  %-24s  %s\n", "ID", "AGE", "GEN", "ANCESTOR", "DESCENDANT")
	fmt.Fprintf(w, "%-8s  %-8s  %-3s  %-24s  %s\n",
		"--------", "--------", "---", strings.Repeat("-", nameColumnWidth), strings.Repeat("-", nameColumnWidth))

	for _, l := range lineages {
		fmt.Fprintf(w, "%-8s  %-8s  %3d  %s  %s\n",
			formatID(l.ID),
			formatTimestamp(l.CreatedAtMs),
			l.Generations(),
			padName(l.Ancestor),
			truncateName(l.Descendant),
		)
	}

	noun := "lineage"
	if len(lineages) != 1 {
		noun = "lineages"
	}
	fmt.Fprintf(w, "\n%d %s found\n", len(lineages), noun)

	return len(lineages)
}

// FormatJSONL writes lineages as line-delimited JSON, one object per line.
func FormatJSONL(w io.Writer, lineages []*archive.Lineage) error {
	for _, l := range lineages {
		data, err := json.Marshal(l)
		if err != nil {
			return fmt.Errorf("failed to marshal lineage to JSON: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}
	return nil
}

// FormatDetail writes one lineage with its full chain of names.
func FormatDetail(w io.Writer, l *archive.Lineage) {
	fmt.Fprintf(w, "Lineage %s\n\n", l.ID)
	fmt.Fprintf(w, "  From:    %s\n", l.Ancestor)
	fmt.Fprintf(w, "  To:      %s\n", l.Descendant)
	if l.SourceFile != "" {
		fmt.Fprintf(w, "  Source:  %s\n", l.SourceFile)
	}
	fmt.Fprintf(w, "  Saved:   %s\n", l.CreatedAt().UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "\n%s\n", strings.Join(l.Names, familytree.PathSeparator))
}

// formatID truncates a lineage ID to its first 8 characters.
func formatID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// truncateName shortens a name to the column width, counting runes so
// accented names are not cut mid-character.
func truncateName(name string) string {
	if name == "" {
		return "-"
	}
	runes := []rune(name)
	if len(runes) > nameColumnWidth {
		return string(runes[:nameColumnWidth-3]) + "..."
	}
	return name
}

// padName truncates and then right-pads to the column width.
func padName(name string) string {
	name = truncateName(name)
	if n := len([]rune(name)); n < nameColumnWidth {
		name += strings.Repeat(" ", nameColumnWidth-n)
	}
	return name
}

// formatTimestamp shows a Unix millisecond timestamp as a relative age.
func formatTimestamp(timestampMs int64) string {
	if timestampMs == 0 {
		return "-"
	}

	diff := time.Since(time.UnixMilli(timestampMs))
	switch {
	case diff < time.Minute:
		return fmt.Sprintf("%ds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
}
