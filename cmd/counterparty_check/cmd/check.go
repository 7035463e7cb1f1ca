package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"counterpartycheck/importer"
	"counterpartycheck/internal/config"
	apperrors "counterpartycheck/internal/errors"
	"counterpartycheck/normalization"
)

type checkOptions struct {
	input        string
	sheet        string
	encoding     string
	delimiter    string
	outputDir    string
	format       string
	trim         bool
	preserveRows bool
	jsonSummary  bool
}

func newCheckCmd(root *rootOptions) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a counterparty table and write the reports",
		Long: `Read the counterparty table (xlsx or csv), validate BIN/IIN in the first column,
deduplicate by the name in the second column and write three reports to the output dir.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			opts.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runCheck(cmd, cfg, opts.jsonSummary)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "input file (.xlsx or .csv)")
	flags.StringVar(&opts.sheet, "sheet", "", "sheet name for xlsx input (default: first sheet)")
	flags.StringVar(&opts.encoding, "encoding", "", "csv encoding (auto, utf-8, windows-1251, koi8-r)")
	flags.StringVar(&opts.delimiter, "delimiter", "", "csv delimiter (default: detect ';' or ',')")
	flags.StringVarP(&opts.outputDir, "output-dir", "o", "", "directory for the reports")
	flags.StringVarP(&opts.format, "format", "f", "", "report format (excel, csv)")
	flags.BoolVar(&opts.trim, "trim", false, "trim spaces around BIN/IIN before validation")
	flags.BoolVar(&opts.preserveRows, "preserve-rows", false, "keep source row numbers in the valid table")
	flags.BoolVar(&opts.jsonSummary, "json", false, "print the run summary as JSON")

	return cmd
}

// apply переносит явно заданные флаги в конфигурацию
func (o *checkOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.InputFile = o.input
	}
	if flags.Changed("sheet") {
		cfg.InputSheet = o.sheet
	}
	if flags.Changed("encoding") {
		cfg.InputEncoding = o.encoding
	}
	if flags.Changed("delimiter") {
		cfg.CSVDelimiter = o.delimiter
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = o.outputDir
	}
	if flags.Changed("format") {
		cfg.OutputFormat = o.format
	}
	if flags.Changed("trim") {
		cfg.TrimIdentifiers = o.trim
	}
	if flags.Changed("preserve-rows") {
		cfg.PreserveSourceRows = o.preserveRows
	}
}

type closingReader interface {
	normalization.RowReader
	io.Closer
}

func openSource(cfg *config.Config) (closingReader, error) {
	if cfg.InputIsCSV() {
		return importer.OpenCSV(cfg.InputFile, importer.CSVOptions{
			Encoding:  cfg.InputEncoding,
			Delimiter: cfg.Delimiter(),
		})
	}
	return importer.OpenXLSX(cfg.InputFile, cfg.InputSheet)
}

func runCheck(cmd *cobra.Command, cfg *config.Config, jsonSummary bool) error {
	logger := newLogger(cmd, cfg)

	classifier, err := newClassifier(cfg)
	if err != nil {
		return apperrors.NewConfigError("invalid BIN date check mode", err)
	}
	format, err := normalization.ParseExportFormat(cfg.OutputFormat)
	if err != nil {
		return apperrors.NewConfigError("invalid output format", err)
	}

	src, err := openSource(cfg)
	if err != nil {
		return err
	}
	defer src.Close()

	logger.Info("Reading counterparties", "input", cfg.InputFile, "bin_date_check", cfg.BinDateCheck)

	pipeline := normalization.NewPipeline(classifier, normalization.NewLegalFormNormalizer(), logger,
		normalization.WithTrimIdentifiers(cfg.TrimIdentifiers))
	result, err := pipeline.Run(src)
	if err != nil {
		return err
	}

	exporter := normalization.NewExporter(format, cfg.PreserveSourceRows, logger)
	paths := normalization.ReportPaths{
		Valid:      cfg.OutputPath(cfg.ValidFile),
		Invalid:    cfg.OutputPath(cfg.InvalidFile),
		Statistics: cfg.OutputPath(cfg.StatsFile),
	}
	if err := exporter.Export(result, paths); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonSummary {
		return normalization.WriteSummaryJSON(out, result)
	}
	printSummary(out, result, paths)
	return nil
}

func printSummary(out io.Writer, result *normalization.PipelineResult, paths normalization.ReportPaths) {
	fmt.Fprintln(out, "\n--- Counterparty Check ---")
	fmt.Fprintf(out, "Run ID: %s\n", result.RunID)
	for _, stat := range result.Counts.Statistics() {
		fmt.Fprintf(out, "%-18s %8d %7s%%\n", stat.Name, stat.Value, stat.Percent)
	}
	fmt.Fprintf(out, "Valid report: %s\n", paths.Valid)
	fmt.Fprintf(out, "Invalid report: %s\n", paths.Invalid)
	fmt.Fprintf(out, "Statistics: %s\n", paths.Statistics)
	fmt.Fprintf(out, "Duration: %s\n", result.Duration.Round(time.Millisecond))
}
