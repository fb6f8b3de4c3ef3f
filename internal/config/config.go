package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/JeremyMcCormick/genaialogy/internal/instance"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "genaialogy.yml"

// Biography defaults.
const (
	DefaultModel       = "gpt-4-turbo-preview"
	DefaultTemperature = float32(0.5)
	DefaultConcurrency = 4
)

// DefaultSystemPrompt keeps generated biographies to the recorded facts.
const DefaultSystemPrompt = "You are a biographer. " +
	"You need to generate a biography based on the information provided.\n" +
	"Do NOT make up any information. Only use the information provided.\n" +
	"Do NOT embellish the facts. Be concise and to the point.\n" +
	"Do NOT add extra information or verbiage.\n" +
	"The biography should be a single paragraph.\n"

// Config represents the top-level genaialogy.yml configuration
type Config struct {
	Version   string           `yaml:"version"`
	Gedcom    string           `yaml:"gedcom,omitempty"` // Default GEDCOM file for commands without --file
	Debug     bool             `yaml:"debug,omitempty"`
	Archive   *ArchiveConfig   `yaml:"archive,omitempty"`
	Biography *BiographyConfig `yaml:"biography,omitempty"`
}

// ArchiveConfig locates the Redis lineage archive
type ArchiveConfig struct {
	RedisURL string `yaml:"redis_url,omitempty"` // Empty falls back to $GENAIALOGY_REDIS_URL, then localhost
	Instance string `yaml:"instance,omitempty"`
}

// BiographyConfig controls the language model used by `report`
type BiographyConfig struct {
	Model        string   `yaml:"model,omitempty"`
	Temperature  *float32 `yaml:"temperature,omitempty"` // 0 is a valid setting, so nil means unset
	SystemPrompt string   `yaml:"system_prompt,omitempty"`
	Concurrency  int      `yaml:"concurrency,omitempty"` // Parallel biography requests per report
	BaseURL      string   `yaml:"base_url,omitempty"`    // OpenAI-compatible endpoint; empty uses api.openai.com
}

// Default returns a configuration with every default applied.
func Default() *Config {
	c := &Config{Version: "1.0"}
	// Cannot fail on an empty config.
	_ = c.Validate()
	return c
}

// Validate performs strict validation on the configuration and fills in
// defaults for omitted sections.
func (c *Config) Validate() error {
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	if c.Archive == nil {
		c.Archive = &ArchiveConfig{}
	}
	if err := c.Archive.Validate(); err != nil {
		return err
	}

	if c.Biography == nil {
		c.Biography = &BiographyConfig{}
	}
	return c.Biography.Validate()
}

// Validate checks the archive section and applies defaults
func (a *ArchiveConfig) Validate() error {
	if a.Instance == "" {
		a.Instance = instance.DefaultName
	}
	if err := instance.ValidateName(a.Instance); err != nil {
		return fmt.Errorf("archive.instance: %w", err)
	}

	if a.RedisURL == "" {
		a.RedisURL = instance.DefaultRedisURL()
	}
	if _, err := redis.ParseURL(a.RedisURL); err != nil {
		return fmt.Errorf("archive.redis_url: %w", err)
	}
	return nil
}

// Validate checks the biography section and applies defaults
func (b *BiographyConfig) Validate() error {
	if b.Model == "" {
		b.Model = DefaultModel
	}
	if b.SystemPrompt == "" {
		b.SystemPrompt = DefaultSystemPrompt
	}

	if b.Temperature == nil {
		t := DefaultTemperature
		b.Temperature = &t
	}
	if *b.Temperature < 0 || *b.Temperature > 2 {
		return fmt.Errorf("biography.temperature must be between 0 and 2, got %g", *b.Temperature)
	}

	if b.Concurrency == 0 {
		b.Concurrency = DefaultConcurrency
	}
	if b.Concurrency < 1 {
		return fmt.Errorf("biography.concurrency must be >= 1, got %d", b.Concurrency)
	}
	return nil
}

// Load reads and validates genaialogy.yml from the specified path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadOptional loads path if it exists and returns Default() otherwise.
// An explicitly requested file that is missing is still an error.
func LoadOptional(path string, explicit bool) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !explicit {
		return Default(), nil
	}
	return Load(path)
}
