// Package cmd provides the CLI commands for counterparty_check.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"counterpartycheck/internal/config"
	"counterpartycheck/internal/logging"
	"counterpartycheck/quality"
)

// Version версия утилиты
const Version = "1.0.0"

type rootOptions struct {
	verbose      bool
	logFormat    string
	binDateCheck string
}

// NewRootCmd собирает дерево команд
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "counterparty_check",
		Short: "Check Kazakhstani BIN/IIN of counterparties and build reports",
		Long: `counterparty_check validates BIN/IIN identifiers in a counterparty table,
removes duplicate counterparties, moves the legal form (ТОО, АО, ИП...) to the front
of the name and writes three reports: valid counterparties, invalid rows and statistics.

Configuration is read from the environment (INPUT_FILE, OUTPUT_DIR, BIN_DATE_CHECK, ...)
and can be overridden by flags.

Examples:
  counterparty_check check --input counterparties.xlsx
  counterparty_check check --input export_1c.csv --format csv --json
  counterparty_check validate 940903350398 040740000120
  counterparty_check normalize "Ромашка ТОО"`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format (json, text)")
	root.PersistentFlags().StringVar(&opts.binDateCheck, "bin-date-check", "", "BIN registration date check (strict, legacy)")

	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newValidateCmd(opts))
	root.AddCommand(newNormalizeCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig читает конфигурацию из окружения и применяет общие флаги
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if o.verbose {
		cfg.LogLevel = "DEBUG"
	}
	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}
	if o.binDateCheck != "" {
		cfg.BinDateCheck = o.binDateCheck
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logging.New(logging.Options{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: cfg.Debug,
		Output:    cmd.ErrOrStderr(),
	})
}

func newClassifier(cfg *config.Config) (*quality.Classifier, error) {
	mode, err := quality.ParseDateCheckMode(cfg.BinDateCheck)
	if err != nil {
		return nil, err
	}
	return quality.NewClassifier(quality.NewBinValidator(mode, nil)), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "counterparty_check version %s\n", Version)
		},
	}
}
