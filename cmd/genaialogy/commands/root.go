package commands

import (
	"context"
	"fmt"

	"github.com/JeremyMcCormick/genaialogy/internal/config"
	"github.com/JeremyMcCormick/genaialogy/internal/printer"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version string
	commit  string
	date    string
)

// Global flags
var (
	configPath   string
	gedcomPath   string
	debug        bool
	instanceName string
	redisURL     string
)

// Per-invocation state, set by setup before any command runs
var (
	cfg    *config.Config
	logger = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "genaialogy",
	Short: "genaialogy - Explore lines of descent in GEDCOM family trees",
	Long: `genaialogy reads a GEDCOM family tree and answers questions about it:
who a person's relatives are, and how an ancestor connects to a descendant
through a chain of parent-to-child links.

Lineages can be archived in Redis for later review, and turned into a
biographical report with one short biography per generation.`,
	Version: version,
	// Show help instead of silently succeeding without a subcommand
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	// Enable strict flag parsing - unknown flags will cause an error
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute runs the root command. Cancelling ctx aborts in-flight work.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	// Silence Cobra's default error and usage printing
	// We print formatted colored errors directly in the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.ExecuteContext(ctx)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().StringVarP(&gedcomPath, "file", "f", "", "GEDCOM file to read (overrides the config's gedcom setting)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Log tree construction and path search details to stderr")
	rootCmd.PersistentFlags().StringVarP(&instanceName, "instance", "n", "", "Archive instance name (overrides the config)")
	rootCmd.PersistentFlags().StringVar(&redisURL, "redis-url", "", "Archive Redis URL (overrides the config's redis_url, which overrides $GENAIALOGY_REDIS_URL)")
}

// setup loads configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	path, explicit := configPath, configPath != ""
	if !explicit {
		path = config.DefaultFile
	}

	loaded, err := config.LoadOptional(path, explicit)
	if err != nil {
		return printer.ErrorWithContext(
			"invalid configuration",
			err.Error(),
			map[string]string{"Config": path},
			[]string{fmt.Sprintf("Fix %s or pass another file with --config", path)},
		)
	}

	if gedcomPath != "" {
		loaded.Gedcom = gedcomPath
	}
	if debug {
		loaded.Debug = true
	}
	if instanceName != "" || redisURL != "" {
		if instanceName != "" {
			loaded.Archive.Instance = instanceName
		}
		if redisURL != "" {
			loaded.Archive.RedisURL = redisURL
		}
		if err := loaded.Archive.Validate(); err != nil {
			return printer.Error(
				"invalid archive settings",
				err.Error(),
				[]string{"Instance names are lowercase letters, digits and hyphens; Redis URLs start with redis:// or rediss://"},
			)
		}
	}

	logger, err = newLogger(loaded.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	cfg = loaded

	logger.Debug("Configuration loaded",
		zap.String("config", path),
		zap.String("gedcom", cfg.Gedcom),
		zap.String("instance", cfg.Archive.Instance))
	return nil
}

// newLogger returns a development logger writing to stderr when debug is
// set, and a no-op logger otherwise.
func newLogger(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}
