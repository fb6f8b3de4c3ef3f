package commands

import (
	"github.com/JeremyMcCormick/genaialogy/internal/printer"
	"github.com/JeremyMcCormick/genaialogy/pkg/archive"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var pathSave bool

var pathCmd = &cobra.Command{
	Use:   "path ANCESTOR DESCENDANT",
	Short: "Find a line of descent from an ancestor to a descendant",
	Long: `Find a chain of parent-to-child links from ANCESTOR to DESCENDANT.

The search is depth first and follows each person's families and children in
the order the GEDCOM file lists them. The first chain found is printed; it is
not necessarily the shortest.

Examples:
  # Print the lineage
  genaialogy path "William McCormick" "Jeremy Isaac McCormick" --file family.ged

  # Print it and archive it for later
  genaialogy path "William McCormick" "Jeremy Isaac McCormick" --save`,
	Args: cobra.ExactArgs(2),
	RunE: runPath,
}

func init() {
	pathCmd.Flags().BoolVar(&pathSave, "save", false, "Archive the lineage in Redis")
	rootCmd.AddCommand(pathCmd)
}

func runPath(cmd *cobra.Command, args []string) error {
	ancestor, descendant := args[0], args[1]

	tree, err := loadTree()
	if err != nil {
		return err
	}

	path, err := tree.Lineage(ancestor, descendant)
	if err != nil {
		return lookupError(err)
	}
	printer.Chain(path.Names())

	if !pathSave {
		return nil
	}

	client, err := openArchive(cmd.Context())
	if err != nil {
		return err
	}
	defer client.Close()

	lineage := archive.NewLineage(path, ancestor, descendant, cfg.Gedcom)
	if err := client.Save(cmd.Context(), lineage); err != nil {
		return printer.Error(
			"failed to save lineage",
			err.Error(),
			[]string{"Check that the Redis server accepts writes"},
		)
	}
	logger.Debug("Lineage archived", zap.String("id", lineage.ID))
	printer.Success("Saved lineage %s (%d generations)\n", lineage.ID, lineage.Generations())
	return nil
}
