package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "counterpartycheck/internal/errors"
	"counterpartycheck/quality"
)

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	var errors []string

	// Валидация входных данных
	if c.InputFile == "" {
		errors = append(errors, "input file is required")
	}

	validEncodings := []string{"auto", "utf-8", "windows-1251", "koi8-r"}
	if !contains(validEncodings, strings.ToLower(c.InputEncoding)) {
		errors = append(errors, fmt.Sprintf("invalid input encoding: %s (valid: %s)",
			c.InputEncoding, strings.Join(validEncodings, ", ")))
	}

	if c.CSVDelimiter != "" && c.CSVDelimiter != `\t` && c.CSVDelimiter != "tab" &&
		utf8.RuneCountInString(c.CSVDelimiter) != 1 {
		errors = append(errors, fmt.Sprintf("csv delimiter must be a single character, got %q", c.CSVDelimiter))
	}

	// Валидация отчетов
	if c.OutputDir == "" {
		errors = append(errors, "output dir is required")
	}
	validFormats := []string{OutputFormatExcel, OutputFormatCSV}
	if !contains(validFormats, strings.ToLower(c.OutputFormat)) {
		errors = append(errors, fmt.Sprintf("invalid output format: %s (valid: %s)",
			c.OutputFormat, strings.Join(validFormats, ", ")))
	}
	if c.ValidFile == "" || c.InvalidFile == "" || c.StatsFile == "" {
		errors = append(errors, "report file names are required")
	} else if c.ValidFile == c.InvalidFile || c.ValidFile == c.StatsFile || c.InvalidFile == c.StatsFile {
		errors = append(errors, "report file names must differ")
	}

	// Валидация режима проверки БИН
	if _, err := quality.ParseDateCheckMode(c.BinDateCheck); err != nil {
		errors = append(errors, err.Error())
	}

	// Валидация уровня логирования
	validLogLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	if c.LogLevel != "" && !contains(validLogLevels, strings.ToUpper(c.LogLevel)) {
		errors = append(errors, fmt.Sprintf("invalid log level: %s (valid: %s)",
			c.LogLevel, strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"json", "text"}
	if c.LogFormat != "" && !contains(validLogFormats, strings.ToLower(c.LogFormat)) {
		errors = append(errors, fmt.Sprintf("invalid log format: %s (valid: %s)",
			c.LogFormat, strings.Join(validLogFormats, ", ")))
	}

	if len(errors) > 0 {
		return apperrors.NewConfigError("invalid config",
			fmt.Errorf("validation errors: %s", strings.Join(errors, "; ")))
	}

	return nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
