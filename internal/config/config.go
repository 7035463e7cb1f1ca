package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config конфигурация проверки контрагентов
type Config struct {
	// Входные данные
	InputFile     string `json:"input_file"`
	InputSheet    string `json:"input_sheet"`
	InputEncoding string `json:"input_encoding"`
	CSVDelimiter  string `json:"csv_delimiter"`

	// Отчеты
	OutputDir    string `json:"output_dir"`
	OutputFormat string `json:"output_format"`
	ValidFile    string `json:"valid_file"`
	InvalidFile  string `json:"invalid_file"`
	StatsFile    string `json:"stats_file"`

	// Проверка идентификаторов
	BinDateCheck       string `json:"bin_date_check"`
	TrimIdentifiers    bool   `json:"trim_identifiers"`
	PreserveSourceRows bool   `json:"preserve_source_rows"`

	// Логирование
	Debug     bool   `json:"debug"`
	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`
}

// Форматы отчетов
const (
	OutputFormatExcel = "excel"
	OutputFormatCSV   = "csv"
)

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	debug := getEnvBool("DEBUG", false)
	defaultLevel := "INFO"
	if debug {
		defaultLevel = "DEBUG"
	}

	config := &Config{
		// Входные данные
		InputFile:     getEnv("INPUT_FILE", "input.xlsx"),
		InputSheet:    os.Getenv("INPUT_SHEET"),
		InputEncoding: getEnv("INPUT_ENCODING", "auto"),
		CSVDelimiter:  os.Getenv("CSV_DELIMITER"),

		// Отчеты
		OutputDir:    getEnv("OUTPUT_DIR", "output"),
		OutputFormat: getEnv("OUTPUT_FORMAT", OutputFormatExcel),
		ValidFile:    getEnv("VALID_FILE", "result"),
		InvalidFile:  getEnv("INVALID_FILE", "invalid"),
		StatsFile:    getEnv("STATS_FILE", "statistics"),

		// Проверка идентификаторов
		BinDateCheck:       getEnv("BIN_DATE_CHECK", "strict"),
		TrimIdentifiers:    getEnvBool("TRIM_IDENTIFIERS", false),
		PreserveSourceRows: getEnvBool("PRESERVE_SOURCE_ROWS", false),

		// Логирование
		Debug:     debug,
		LogLevel:  getEnv("LOG_LEVEL", defaultLevel),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// GetDefaults возвращает конфигурацию со значениями по умолчанию
func GetDefaults() *Config {
	return &Config{
		InputFile:     "input.xlsx",
		InputEncoding: "auto",
		OutputDir:     "output",
		OutputFormat:  OutputFormatExcel,
		ValidFile:     "result",
		InvalidFile:   "invalid",
		StatsFile:     "statistics",
		BinDateCheck:  "strict",
		LogLevel:      "INFO",
		LogFormat:     "json",
	}
}

// OutputPath возвращает путь отчета с расширением по формату
func (c *Config) OutputPath(base string) string {
	ext := ".xlsx"
	if strings.EqualFold(c.OutputFormat, OutputFormatCSV) {
		ext = ".csv"
	}
	if filepath.Ext(base) == "" {
		base += ext
	}
	return filepath.Join(c.OutputDir, base)
}

// InputIsCSV сообщает, что входной файл нужно читать как CSV
func (c *Config) InputIsCSV() bool {
	return strings.EqualFold(filepath.Ext(c.InputFile), ".csv")
}

// Delimiter возвращает разделитель CSV или 0 для автоопределения
func (c *Config) Delimiter() rune {
	switch c.CSVDelimiter {
	case "":
		return 0
	case `\t`, "tab":
		return '\t'
	default:
		return []rune(c.CSVDelimiter)[0]
	}
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool получает переменную окружения как bool или возвращает значение по умолчанию
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
