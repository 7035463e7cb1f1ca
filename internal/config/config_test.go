package config

import (
	"path/filepath"
	"testing"

	apperrors "counterpartycheck/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLogLevelValidation(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		wantError bool
	}{
		{"Valid DEBUG", "DEBUG", false},
		{"Valid INFO", "INFO", false},
		{"Valid WARN", "WARN", false},
		{"Valid ERROR", "ERROR", false},
		{"Valid lowercase debug", "debug", false},
		{"Invalid value", "INVALID", true},
		{"Empty string", "", false},
		{"Mixed case", "DeBuG", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaults()
			cfg.LogLevel = tt.logLevel

			err := cfg.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"missing input", func(c *Config) { c.InputFile = "" }, "input file is required"},
		{"bad encoding", func(c *Config) { c.InputEncoding = "cp866" }, "invalid input encoding"},
		{"bad delimiter", func(c *Config) { c.CSVDelimiter = ";;" }, "csv delimiter"},
		{"tab delimiter", func(c *Config) { c.CSVDelimiter = `\t` }, ""},
		{"bad format", func(c *Config) { c.OutputFormat = "pdf" }, "invalid output format"},
		{"same report names", func(c *Config) { c.InvalidFile = c.ValidFile }, "must differ"},
		{"bad date check", func(c *Config) { c.BinDateCheck = "off" }, "date check mode"},
		{"legacy date check", func(c *Config) { c.BinDateCheck = "legacy" }, ""},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, apperrors.KindConfig, apperrors.KindOf(err))
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("INPUT_FILE", "counterparties.csv")
	t.Setenv("OUTPUT_FORMAT", "csv")
	t.Setenv("BIN_DATE_CHECK", "legacy")
	t.Setenv("TRIM_IDENTIFIERS", "true")
	t.Setenv("DEBUG", "true")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "counterparties.csv", cfg.InputFile)
	assert.True(t, cfg.InputIsCSV())
	assert.Equal(t, "legacy", cfg.BinDateCheck)
	assert.True(t, cfg.TrimIdentifiers)
	assert.False(t, cfg.PreserveSourceRows)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, filepath.Join("output", "result.csv"), cfg.OutputPath(cfg.ValidFile))
}

func TestLoadConfigInvalidEnv(t *testing.T) {
	t.Setenv("OUTPUT_FORMAT", "pdf")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestOutputPathAndDelimiter(t *testing.T) {
	cfg := GetDefaults()
	assert.Equal(t, filepath.Join("output", "statistics.xlsx"), cfg.OutputPath("statistics"))
	assert.Equal(t, filepath.Join("output", "custom.xlsm"), cfg.OutputPath("custom.xlsm"))
	assert.False(t, cfg.InputIsCSV())

	assert.Equal(t, rune(0), cfg.Delimiter())
	cfg.CSVDelimiter = ";"
	assert.Equal(t, ';', cfg.Delimiter())
	cfg.CSVDelimiter = "tab"
	assert.Equal(t, '\t', cfg.Delimiter())
}
