package commands

import (
	"github.com/JeremyMcCormick/genaialogy/internal/printer"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info NAME",
	Short: "Show everything recorded about one individual",
	Long: `Show the facts recorded for NAME: sex, birth and death, occupation,
children, parents, notes, siblings and spouses. Facts that are not recorded
are left out.

Example:
  genaialogy info "James McCormick" --file family.ged`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	tree, err := loadTree()
	if err != nil {
		return err
	}

	info, err := tree.Describe(args[0])
	if err != nil {
		return lookupError(err)
	}

	for _, f := range info.Fields() {
		printer.Field(f.Key, f.Value)
	}
	return nil
}
