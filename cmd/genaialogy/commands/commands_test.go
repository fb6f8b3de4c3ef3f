package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JeremyMcCormick/genaialogy/internal/config"
	"github.com/JeremyMcCormick/genaialogy/internal/printer"
	"github.com/JeremyMcCormick/genaialogy/pkg/archive"
	"github.com/alicebob/miniredis/v2"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var testGedcom = filepath.Join("..", "..", "..", "internal", "gedcom", "testdata", "mccormick.ged")

const (
	william = "William McCormick"
	jeremy  = "Jeremy Isaac McCormick"
)

type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs the CLI with fresh flag state and captured output.
func execute(t *testing.T, args ...string) result {
	t.Helper()

	resetFlags(rootCmd)
	cfg, logger = nil, zap.NewNop()

	prevNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prevNoColor })

	var stdout, stderr bytes.Buffer
	restore := printer.SetOutput(&stdout, &stderr)
	defer restore()
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)

	rootCmd.SetArgs(args)
	err := Execute(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// resetFlags restores every flag on cmd and its subcommands to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func startRedis(t *testing.T) string {
	t.Helper()
	mr := miniredis.RunT(t)
	return "redis://" + mr.Addr()
}

func savedIDs(t *testing.T, url, inst string) []string {
	t.Helper()
	client, err := archive.NewClientFromURL(url, inst)
	require.NoError(t, err)
	defer client.Close()
	ids, err := client.ScanIDs(context.Background(), "")
	require.NoError(t, err)
	return ids
}

func TestPathCommand(t *testing.T) {
	t.Run("prints the chain", func(t *testing.T) {
		res := execute(t, "path", william, jeremy, "--file", testGedcom)
		require.NoError(t, res.err)
		assert.Equal(t,
			"William McCormick → James McCormick → Harry Glenn McCormick → Jeremy Isaac McCormick\n",
			res.stdout)
	})

	t.Run("reversed arguments find nothing", func(t *testing.T) {
		res := execute(t, "path", jeremy, william, "--file", testGedcom)
		require.Error(t, res.err)
		assert.Equal(t, "no lineage found", res.err.Error())
		assert.Contains(t, res.stderr, "check the order of the arguments")
	})

	t.Run("unknown ancestor", func(t *testing.T) {
		res := execute(t, "path", "Nobody", jeremy, "--file", testGedcom)
		require.Error(t, res.err)
		assert.Equal(t, "ancestor 'Nobody' not found", res.err.Error())
	})

	t.Run("requires two arguments", func(t *testing.T) {
		res := execute(t, "path", william, "--file", testGedcom)
		require.Error(t, res.err)
		assert.Contains(t, res.err.Error(), "accepts 2 arg(s)")
	})

	t.Run("no GEDCOM file", func(t *testing.T) {
		res := execute(t, "path", william, jeremy)
		require.Error(t, res.err)
		assert.Equal(t, "no GEDCOM file specified", res.err.Error())
		assert.Contains(t, res.stderr, "--file family.ged")
	})

	t.Run("missing GEDCOM file", func(t *testing.T) {
		res := execute(t, "path", william, jeremy, "--file", filepath.Join(t.TempDir(), "missing.ged"))
		require.Error(t, res.err)
		assert.Equal(t, "GEDCOM file not found", res.err.Error())
	})

	t.Run("syntax error reports the line", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.ged")
		require.NoError(t, os.WriteFile(bad, []byte("0 HEAD\n2 VERS 5.5\n"), 0o644))

		res := execute(t, "path", william, jeremy, "--file", bad)
		require.Error(t, res.err)
		assert.Equal(t, "GEDCOM file could not be parsed", res.err.Error())
		assert.Contains(t, res.stderr, "Line: 2")
		assert.Contains(t, res.stderr, "level 2 follows level 0")
	})

	t.Run("dangling references produce a warning", func(t *testing.T) {
		dangling := filepath.Join(t.TempDir(), "dangling.ged")
		data := "0 @I1@ INDI\n1 NAME Ann /Lee/\n1 FAMS @F9@\n0 TRLR\n"
		require.NoError(t, os.WriteFile(dangling, []byte(data), 0o644))

		res := execute(t, "path", "Ann Lee", "Ann Lee", "--file", dangling)
		require.NoError(t, res.err)
		assert.Equal(t, "Ann Lee\n", res.stdout)
		assert.Contains(t, res.stderr, "1 dangling reference(s)")
	})
}

func TestInfoCommand(t *testing.T) {
	res := execute(t, "info", william, "--file", testGedcom)
	require.NoError(t, res.err)

	lines := strings.Split(strings.TrimRight(res.stdout, "\n"), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "Name: William McCormick", lines[0])
	assert.Contains(t, lines, "Occupation: Weaver")
	assert.Contains(t, lines, "Children: James McCormick, Ellen McCormick")
	assert.Contains(t, lines, "Spouses: Margaret Boyd")

	res = execute(t, "info", "Nobody", "--file", testGedcom)
	require.Error(t, res.err)
	assert.Equal(t, "individual 'Nobody' not found", res.err.Error())
}

func TestReportCommand(t *testing.T) {
	t.Run("dry run to stdout", func(t *testing.T) {
		res := execute(t, "report", william, jeremy, "--file", testGedcom, "--dry-run")
		require.NoError(t, res.err)
		assert.True(t, strings.HasPrefix(res.stdout,
			"Biographical Lineage Report for Jeremy Isaac McCormick from William McCormick\n\n"))

		first := strings.Index(res.stdout, "William McCormick\n-----------------\n")
		last := strings.Index(res.stdout, "Jeremy Isaac McCormick\n----------------------\n")
		require.NotEqual(t, -1, first)
		require.NotEqual(t, -1, last)
		assert.Less(t, first, last, "sections follow the lineage order")
		assert.Contains(t, res.stdout, "Occupation: Weaver")
	})

	t.Run("dry run to file", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "report.txt")
		res := execute(t, "report", william, jeremy, "--file", testGedcom, "--dry-run", "--out", out, "--concurrency", "1")
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "Report written to "+out)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Harry Glenn McCormick")
	})

	t.Run("missing API key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		res := execute(t, "report", william, jeremy, "--file", testGedcom)
		require.Error(t, res.err)
		assert.Equal(t, "OpenAI API key not set", res.err.Error())
		assert.Contains(t, res.stderr, "--dry-run")
	})

	t.Run("no path writes nothing", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "report.txt")
		res := execute(t, "report", jeremy, william, "--file", testGedcom, "--dry-run", "--out", out)
		require.Error(t, res.err)
		assert.Equal(t, "no lineage found", res.err.Error())
		assert.NoFileExists(t, out)
	})

	t.Run("negative concurrency", func(t *testing.T) {
		res := execute(t, "report", william, jeremy, "--file", testGedcom, "--dry-run", "--concurrency", "-1")
		require.Error(t, res.err)
		assert.Equal(t, "invalid --concurrency", res.err.Error())
	})
}

func TestSaveAndInspectLineage(t *testing.T) {
	url := startRedis(t)

	res := execute(t, "path", william, jeremy, "--file", testGedcom, "--save", "--redis-url", url)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Saved lineage ")
	assert.Contains(t, res.stdout, "(3 generations)")

	ids := savedIDs(t, url, "default")
	require.Len(t, ids, 1)
	id := ids[0]

	t.Run("list", func(t *testing.T) {
		res := execute(t, "lineage", "--redis-url", url)
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, id[:8])
		assert.Contains(t, res.stdout, "1 lineage(s) found")
	})

	t.Run("list with filters", func(t *testing.T) {
		res := execute(t, "lineage", "--redis-url", url, "--name", "Harry*")
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "1 lineage(s) found")

		res = execute(t, "lineage", "--redis-url", url, "--name", "*Boyd")
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "No lineages found for instance 'default'")

		res = execute(t, "lineage", "--redis-url", url, "--since", "1h", "--source", testGedcom)
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "1 lineage(s) found")
	})

	t.Run("jsonl", func(t *testing.T) {
		res := execute(t, "lineage", "--redis-url", url, "-o", "jsonl")
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, `"id":"`+id+`"`)
		assert.Equal(t, 1, strings.Count(res.stdout, "\n"))
	})

	t.Run("other instances are separate", func(t *testing.T) {
		res := execute(t, "lineage", "--redis-url", url, "--instance", "other")
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "No lineages found for instance 'other'")
	})

	t.Run("get by short ID", func(t *testing.T) {
		res := execute(t, "lineage", id[:8], "--redis-url", url)
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "Lineage "+id)
		assert.Contains(t, res.stdout, "  From:    William McCormick")
		assert.Contains(t, res.stdout, "William McCormick → James McCormick → Harry Glenn McCormick → Jeremy Isaac McCormick")
	})

	t.Run("unknown short ID", func(t *testing.T) {
		if strings.HasPrefix(id, "ffffff") {
			t.Skip("saved ID happens to share the prefix")
		}
		res := execute(t, "lineage", "ffffff", "--redis-url", url)
		require.Error(t, res.err)
		assert.Equal(t, "lineage with ID 'ffffff' not found", res.err.Error())
	})

	t.Run("delete", func(t *testing.T) {
		res := execute(t, "lineage", id, "--delete", "--redis-url", url)
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "Deleted lineage "+id)
		assert.Empty(t, savedIDs(t, url, "default"))
	})
}

func TestLineageCommand_Ambiguous(t *testing.T) {
	url := startRedis(t)
	client, err := archive.NewClientFromURL(url, "default")
	require.NoError(t, err)
	defer client.Close()

	for _, id := range []string{
		"abcdef00-0000-4000-8000-000000000001",
		"abcdef00-0000-4000-8000-000000000002",
	} {
		l := &archive.Lineage{
			ID:          id,
			Ancestor:    "A",
			Descendant:  "B",
			Names:       []string{"A", "B"},
			Pointers:    []string{"@A@", "@B@"},
			CreatedAtMs: 1,
		}
		require.NoError(t, client.Save(context.Background(), l))
	}

	res := execute(t, "lineage", "abcdef", "--redis-url", url)
	require.Error(t, res.err)
	assert.Equal(t, "ambiguous short ID", res.err.Error())
	assert.Contains(t, res.stderr, "Short ID 'abcdef' matches 2 lineages")
}

func TestLineageCommand_Validation(t *testing.T) {
	// None of these reach Redis, so no server is needed.
	tests := []struct {
		name  string
		args  []string
		title string
	}{
		{"bad output format", []string{"lineage", "-o", "yaml"}, "invalid output format"},
		{"delete without ID", []string{"lineage", "--delete"}, "--delete needs a lineage ID"},
		{"bad since", []string{"lineage", "--since", "yesterday"}, "invalid time filter"},
		{"since after until", []string{"lineage", "--since", "1h", "--until", "2h"}, "invalid time filter"},
		{"bad glob", []string{"lineage", "--name", "[abc"}, "invalid name filter"},
		{"too many args", []string{"lineage", "a", "b"}, "accepts at most 1 arg(s), received 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, tt.args...)
			require.Error(t, res.err)
			assert.Equal(t, tt.title, res.err.Error())
		})
	}
}

func TestArchive_ConnectionFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	url := "redis://" + mr.Addr()
	mr.Close()

	res := execute(t, "lineage", "--redis-url", url)
	require.Error(t, res.err)
	assert.Equal(t, "Redis connection failed", res.err.Error())
	assert.Contains(t, res.stderr, "Instance: default")
}

func TestSetup(t *testing.T) {
	t.Run("flags override the config file", func(t *testing.T) {
		abs, err := filepath.Abs(testGedcom)
		require.NoError(t, err)
		cfgFile := filepath.Join(t.TempDir(), "genaialogy.yml")
		yml := "version: \"1.0\"\ngedcom: " + abs + "\narchive:\n  instance: family\n"
		require.NoError(t, os.WriteFile(cfgFile, []byte(yml), 0o644))

		res := execute(t, "info", jeremy, "--config", cfgFile)
		require.NoError(t, res.err)
		assert.Equal(t, "family", cfg.Archive.Instance)
		assert.Equal(t, abs, cfg.Gedcom)

		res = execute(t, "info", jeremy, "--config", cfgFile, "--instance", "override", "--file", testGedcom)
		require.NoError(t, res.err)
		assert.Equal(t, "override", cfg.Archive.Instance)
		assert.Equal(t, testGedcom, cfg.Gedcom)
	})

	t.Run("missing explicit config", func(t *testing.T) {
		res := execute(t, "info", jeremy, "--config", filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, res.err)
		assert.Equal(t, "invalid configuration", res.err.Error())
	})

	t.Run("invalid instance flag", func(t *testing.T) {
		res := execute(t, "info", jeremy, "--file", testGedcom, "--instance", "Bad:Name")
		require.Error(t, res.err)
		assert.Equal(t, "invalid archive settings", res.err.Error())
	})

	t.Run("debug enables the development logger", func(t *testing.T) {
		res := execute(t, "info", jeremy, "--file", testGedcom)
		require.NoError(t, res.err)
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

		res = execute(t, "info", jeremy, "--file", testGedcom, "--debug")
		require.NoError(t, res.err)
		assert.True(t, cfg.Debug)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})
}

func TestInitCommand(t *testing.T) {
	abs, err := filepath.Abs(testGedcom)
	require.NoError(t, err)
	cfgFile := filepath.Join(t.TempDir(), "genaialogy.yml")

	res := execute(t, "init", "--config", cfgFile, "--file", abs, "--instance", "mccormick")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Created "+cfgFile)

	res = execute(t, "info", william, "--config", cfgFile)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Name: William McCormick")
	assert.Equal(t, "mccormick", cfg.Archive.Instance)

	res = execute(t, "init", "--config", cfgFile)
	require.Error(t, res.err)
	assert.Equal(t, "config already exists", res.err.Error())

	require.NoError(t, os.WriteFile(cfgFile, []byte("version: \"9\"\n"), 0o644))
	res = execute(t, "init", "--config", cfgFile, "--force")
	require.NoError(t, res.err, "init must not try to load the file it replaces")
	assert.Contains(t, res.stdout, "Set 'gedcom:'")
}

func TestInitCommand_BiographyFlags(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "genaialogy.yml")

	res := execute(t, "init", "--config", cfgFile, "--model", "gpt-4o-mini", "--temperature", "0", "--concurrency", "2")
	require.NoError(t, res.err)

	loaded, err := config.Load(cfgFile)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", loaded.Biography.Model)
	require.NotNil(t, loaded.Biography.Temperature)
	assert.Equal(t, float32(0), *loaded.Biography.Temperature)
	assert.Equal(t, 2, loaded.Biography.Concurrency)

	res = execute(t, "init", "--config", cfgFile, "--force")
	require.NoError(t, res.err)
	loaded, err = config.Load(cfgFile)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultTemperature, *loaded.Biography.Temperature, "an unset flag keeps the default")

	res = execute(t, "init", "--config", cfgFile, "--force", "--temperature", "3")
	require.Error(t, res.err)
	assert.Equal(t, "initialization failed", res.err.Error())
}
