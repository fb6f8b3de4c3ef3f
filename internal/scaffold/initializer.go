// Package scaffold writes a starter genaialogy.yml.
package scaffold

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/JeremyMcCormick/genaialogy/internal/config"
	"github.com/JeremyMcCormick/genaialogy/internal/instance"
	"github.com/JeremyMcCormick/genaialogy/internal/printer"
	"gopkg.in/yaml.v3"
)

//go:embed templates/genaialogy.yml.tmpl
var configTemplate string

var tmpl = template.Must(template.New("genaialogy.yml").
	Funcs(template.FuncMap{"yaml": yamlScalar}).
	Parse(configTemplate))

// Options are the values filled into the generated file. Empty fields take
// the configuration defaults.
type Options struct {
	Gedcom      string
	Instance    string
	Model       string
	Temperature *float32 // nil means unset; 0 is a valid setting
	Concurrency int
}

// templateData is Options with every default applied.
type templateData struct {
	Gedcom      string
	Instance    string
	Model       string
	Temperature float32
	Concurrency int
}

func (o Options) withDefaults() templateData {
	d := templateData{
		Gedcom:      o.Gedcom,
		Instance:    o.Instance,
		Model:       o.Model,
		Temperature: config.DefaultTemperature,
		Concurrency: o.Concurrency,
	}
	if d.Instance == "" {
		d.Instance = instance.DefaultName
	}
	if d.Model == "" {
		d.Model = config.DefaultModel
	}
	if o.Temperature != nil {
		d.Temperature = *o.Temperature
	}
	if d.Concurrency == 0 {
		d.Concurrency = config.DefaultConcurrency
	}
	return d
}

// Render returns the generated file. The result is checked with the same
// validation config.Load applies, so a bad option is reported before
// anything is written.
func Render(opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, opts.withDefaults()); err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(buf.Bytes(), &cfg); err != nil {
		return nil, fmt.Errorf("generated config is not valid YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("generated config is invalid: %w", err)
	}
	return buf.Bytes(), nil
}

// Initialize writes a config file at path. An existing file is only
// replaced when force is set.
func Initialize(path string, opts Options, force bool) error {
	if !force {
		if err := CheckExisting(path); err != nil {
			return err
		}
	}

	content, err := Render(opts)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// PrintSuccess prints the created file and what to do next.
func PrintSuccess(path string, opts Options) {
	printer.Success("Created %s\n", path)
	printer.Println("\nNext steps:")
	step := 1
	if opts.Gedcom == "" {
		printer.Printf("  %d. Set 'gedcom:' in %s to your exported family tree\n", step, path)
		step++
	}
	printer.Printf("  %d. Run 'genaialogy info \"<full name>\"' to check the tree loads\n", step)
	printer.Printf("  %d. Export OPENAI_API_KEY before running 'genaialogy report'\n", step+1)
}

// yamlScalar encodes s as a single-line YAML scalar, quoting when needed.
func yamlScalar(s string) (string, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}
