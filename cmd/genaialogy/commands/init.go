package commands

import (
	"fmt"

	"github.com/JeremyMcCormick/genaialogy/internal/config"
	"github.com/JeremyMcCormick/genaialogy/internal/printer"
	"github.com/JeremyMcCormick/genaialogy/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	forceInit       bool
	initModel       string
	initTemperature float32
	initConcurrency int
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter genaialogy.yml",
	Long: `Write a genaialogy.yml with every setting and its default.

The file is written to ./genaialogy.yml, or to the path given with --config.
--file and --instance are recorded in the new file, as are the biography
settings given with --model, --temperature and --concurrency.

Use --force to replace an existing file.

Example:
  genaialogy init --file family.ged

  # Deterministic biographies from a smaller model
  genaialogy init --model gpt-4o-mini --temperature 0`,
	Args: cobra.NoArgs,
	// An existing config may be the reason for running init, so it is not loaded
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(debug)
		return err
	},
	RunE: runInit,
}

func init() {
	// Note: -f is taken by the global --file flag
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Replace an existing config file")
	initCmd.Flags().StringVar(&initModel, "model", "", "Biography model (default "+config.DefaultModel+")")
	initCmd.Flags().Float32Var(&initTemperature, "temperature", config.DefaultTemperature, "Biography temperature, 0 to 2")
	initCmd.Flags().IntVar(&initConcurrency, "concurrency", 0, "Biographies requested at once per report")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultFile
	}
	opts := scaffold.Options{
		Gedcom:      gedcomPath,
		Instance:    instanceName,
		Model:       initModel,
		Concurrency: initConcurrency,
	}
	if cmd.Flags().Changed("temperature") {
		opts.Temperature = &initTemperature
	}

	if err := scaffold.Initialize(path, opts, forceInit); err != nil {
		if scaffold.IsExisting(err) {
			return printer.Error(
				"config already exists",
				fmt.Sprintf("Found existing %s", path),
				[]string{"Use 'genaialogy init --force' to replace it"},
			)
		}
		return printer.Error("initialization failed", err.Error(), nil)
	}

	scaffold.PrintSuccess(path, opts)
	return nil
}
