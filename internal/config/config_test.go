package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/JeremyMcCormick/genaialogy/internal/instance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func float32Ptr(f float32) *float32 {
	return &f
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `version: "1.0"
gedcom: "family.ged"
debug: true
archive:
  redis_url: "redis://archive.example:6380/1"
  instance: "mccormick"
biography:
  model: "gpt-4o"
  temperature: 0
  concurrency: 2
  base_url: "http://localhost:11434/v1"
`)

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1.0", config.Version)
	assert.Equal(t, "family.ged", config.Gedcom)
	assert.True(t, config.Debug)
	assert.Equal(t, "redis://archive.example:6380/1", config.Archive.RedisURL)
	assert.Equal(t, "mccormick", config.Archive.Instance)
	assert.Equal(t, "gpt-4o", config.Biography.Model)
	require.NotNil(t, config.Biography.Temperature)
	assert.Equal(t, float32(0), *config.Biography.Temperature, "explicit zero must not be replaced by the default")
	assert.Equal(t, 2, config.Biography.Concurrency)
	assert.Equal(t, "http://localhost:11434/v1", config.Biography.BaseURL)
	assert.Equal(t, DefaultSystemPrompt, config.Biography.SystemPrompt)
}

func TestLoad_RedisURLPrecedence(t *testing.T) {
	t.Setenv(instance.RedisURLEnv, "redis://from-env:7000/0")

	t.Run("config value wins over the environment", func(t *testing.T) {
		path := writeConfig(t, "version: \"1.0\"\narchive:\n  redis_url: redis://from-config:6380/1\n")
		config, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "redis://from-config:6380/1", config.Archive.RedisURL)
	})

	t.Run("environment fills an unset value", func(t *testing.T) {
		path := writeConfig(t, "version: \"1.0\"\n")
		config, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "redis://from-env:7000/0", config.Archive.RedisURL)
	})
}

func TestLoad_MinimalConfigGetsDefaults(t *testing.T) {
	t.Setenv(instance.RedisURLEnv, "")
	path := writeConfig(t, "version: \"1.0\"\n")

	config, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, config.Archive)
	assert.Equal(t, instance.DefaultName, config.Archive.Instance)
	assert.Equal(t, instance.GetRedisURL(instance.DefaultRedisPort), config.Archive.RedisURL)
	require.NotNil(t, config.Biography)
	assert.Equal(t, DefaultModel, config.Biography.Model)
	assert.Equal(t, DefaultTemperature, *config.Biography.Temperature)
	assert.Equal(t, DefaultConcurrency, config.Biography.Concurrency)
	assert.Empty(t, config.Gedcom)
}

func TestLoad_FileNotFound(t *testing.T) {
	config, err := Load("/nonexistent/genaialogy.yml")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, `version: "1.0"
archive:
  - this is invalid
    yaml syntax
`)

	config, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoad_InvalidConfiguration(t *testing.T) {
	path := writeConfig(t, "version: \"2.0\"\n")

	config, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "unsupported version: 2.0")
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name:   "minimal",
			config: Config{Version: "1.0"},
		},
		{
			name:    "missing version",
			config:  Config{},
			wantErr: true,
			errMsg:  "unsupported version",
		},
		{
			name: "invalid instance name",
			config: Config{
				Version: "1.0",
				Archive: &ArchiveConfig{Instance: "Mc:Cormick"},
			},
			wantErr: true,
			errMsg:  "archive.instance",
		},
		{
			name: "redis url without scheme",
			config: Config{
				Version: "1.0",
				Archive: &ArchiveConfig{RedisURL: "localhost:6379"},
			},
			wantErr: true,
			errMsg:  "archive.redis_url",
		},
		{
			name: "temperature too high",
			config: Config{
				Version:   "1.0",
				Biography: &BiographyConfig{Temperature: float32Ptr(2.5)},
			},
			wantErr: true,
			errMsg:  "biography.temperature must be between 0 and 2",
		},
		{
			name: "negative temperature",
			config: Config{
				Version:   "1.0",
				Biography: &BiographyConfig{Temperature: float32Ptr(-0.1)},
			},
			wantErr: true,
			errMsg:  "biography.temperature",
		},
		{
			name: "negative concurrency",
			config: Config{
				Version:   "1.0",
				Biography: &BiographyConfig{Concurrency: -1},
			},
			wantErr: true,
			errMsg:  "biography.concurrency must be >= 1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_KeepsCustomSystemPrompt(t *testing.T) {
	config := Config{Version: "1.0", Biography: &BiographyConfig{SystemPrompt: "Write a haiku."}}
	require.NoError(t, config.Validate())
	assert.Equal(t, "Write a haiku.", config.Biography.SystemPrompt)
}

func TestDefault(t *testing.T) {
	config := Default()
	assert.Equal(t, "1.0", config.Version)
	require.NotNil(t, config.Archive)
	require.NotNil(t, config.Biography)
	assert.Equal(t, DefaultModel, config.Biography.Model)
	assert.NoError(t, config.Validate(), "defaults must survive re-validation")
}

func TestLoadOptional(t *testing.T) {
	missing := filepath.Join(t.TempDir(), DefaultFile)

	t.Run("implicit missing file falls back to defaults", func(t *testing.T) {
		config, err := LoadOptional(missing, false)
		require.NoError(t, err)
		assert.Equal(t, DefaultModel, config.Biography.Model)
	})

	t.Run("explicit missing file is an error", func(t *testing.T) {
		_, err := LoadOptional(missing, true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config")
	})

	t.Run("existing file is loaded", func(t *testing.T) {
		path := writeConfig(t, "version: \"1.0\"\ngedcom: tree.ged\n")
		config, err := LoadOptional(path, false)
		require.NoError(t, err)
		assert.Equal(t, "tree.ged", config.Gedcom)
	})
}
