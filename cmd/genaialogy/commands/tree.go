package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/JeremyMcCormick/genaialogy/internal/gedcom"
	"github.com/JeremyMcCormick/genaialogy/internal/printer"
	"github.com/JeremyMcCormick/genaialogy/pkg/familytree"
)

// loadTree reads the configured GEDCOM file. Dangling references are
// reported as a warning; the tree treats them as absent.
func loadTree() (*familytree.Tree, error) {
	if cfg.Gedcom == "" {
		return nil, printer.Error(
			"no GEDCOM file specified",
			"Tell genaialogy which family tree to read.",
			[]string{
				"Pass it on the command line:\n  genaialogy --file family.ged ...",
				fmt.Sprintf("Set it in %s:\n  gedcom: family.ged", configFileName()),
			},
		)
	}

	tree, err := gedcom.Load(cfg.Gedcom, familytree.WithLogger(logger))
	if err != nil {
		var syntaxErr *gedcom.SyntaxError
		switch {
		case errors.Is(err, os.ErrNotExist):
			return nil, printer.Error(
				"GEDCOM file not found",
				fmt.Sprintf("Could not open %s", cfg.Gedcom),
				[]string{"Check the path passed with --file or set in the config"},
			)
		case errors.As(err, &syntaxErr):
			return nil, printer.ErrorWithContext(
				"GEDCOM file could not be parsed",
				syntaxErr.Msg,
				map[string]string{
					"File": cfg.Gedcom,
					"Line": fmt.Sprintf("%d", syntaxErr.Line),
				},
				[]string{"Re-export the tree from your genealogy program"},
			)
		default:
			return nil, fmt.Errorf("failed to load GEDCOM file: %w", err)
		}
	}

	if n := len(tree.MalformedReferences()); n > 0 {
		printer.Warning("%d dangling reference(s) in %s were ignored (run with --debug for details)\n", n, cfg.Gedcom)
	}
	return tree, nil
}

// lookupError turns familytree lookup failures into user-facing errors.
func lookupError(err error) error {
	var nf *familytree.NotFoundError
	var pnf *familytree.PathNotFoundError
	switch {
	case errors.As(err, &nf):
		return printer.Error(
			fmt.Sprintf("%s '%s' not found", nf.Role, nf.Name),
			fmt.Sprintf("No individual in %s has that exact name.", cfg.Gedcom),
			[]string{"Names are matched exactly, including case and middle names, e.g. \"Harry Glenn McCormick\""},
		)
	case errors.As(err, &pnf):
		return printer.Error(
			"no lineage found",
			fmt.Sprintf("'%s' is not recorded as a descendant of '%s'.", pnf.Descendant, pnf.Ancestor),
			[]string{"Lineages run from parent to child; check the order of the arguments"},
		)
	default:
		return err
	}
}

func configFileName() string {
	if configPath != "" {
		return configPath
	}
	return "genaialogy.yml"
}
