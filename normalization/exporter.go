package normalization

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "counterpartycheck/internal/errors"
	"counterpartycheck/internal/logging"
)

// ExportFormat формат экспорта
type ExportFormat string

const (
	FormatExcel ExportFormat = "excel"
	FormatCSV   ExportFormat = "csv"
)

// ParseExportFormat разбирает формат отчетов
func ParseExportFormat(value string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(value))) {
	case FormatExcel, "xlsx", "":
		return FormatExcel, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown export format %q", value)
	}
}

// Заголовки таблицы некорректных контрагентов
var invalidHeaders = []string{"БИН/ИИН", "Контрагент"}

// ReportPaths пути трех отчетов
type ReportPaths struct {
	Valid      string
	Invalid    string
	Statistics string
}

// Exporter записывает результат прогона в три отчета
type Exporter struct {
	format             ExportFormat
	preserveSourceRows bool
	logger             *slog.Logger
}

// NewExporter создает экспортер. При preserveSourceRows корректные строки
// остаются на своих номерах строк из входного файла.
func NewExporter(format ExportFormat, preserveSourceRows bool, logger *slog.Logger) *Exporter {
	if format == "" {
		format = FormatExcel
	}
	return &Exporter{
		format:             format,
		preserveSourceRows: preserveSourceRows,
		logger:             logging.OrDiscard(logger).With("component", "exporter"),
	}
}

// reportTable таблица отчета. nil в rows означает пустую строку.
type reportTable struct {
	sheet   string
	headers []string
	rows    [][]interface{}
	widths  []float64
}

// Export записывает таблицу корректных, таблицу некорректных контрагентов и статистику
func (e *Exporter) Export(result *PipelineResult, paths ReportPaths) error {
	start := time.Now()

	reports := []struct {
		path  string
		table reportTable
	}{
		{paths.Valid, e.validTable(result)},
		{paths.Invalid, e.invalidTable(result)},
		{paths.Statistics, e.statisticsTable(result)},
	}

	for _, report := range reports {
		if err := e.write(report.table, report.path); err != nil {
			return err
		}
		e.logger.Debug("Report written", "path", report.path, "rows", len(report.table.rows))
	}

	logging.LogDuration(e.logger, "Export", time.Since(start),
		"run_id", result.RunID,
		"format", e.format,
		"valid_rows", len(result.Valid),
		"invalid_rows", len(result.Invalid))

	return nil
}

func (e *Exporter) write(table reportTable, filename string) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperrors.NewSinkError("failed to create output directory", err).WithContext(dir)
		}
	}

	var err error
	switch e.format {
	case FormatCSV:
		err = writeCSV(table, filename)
	default:
		err = writeExcel(table, filename)
	}
	if err != nil {
		return apperrors.NewSinkError("failed to write report", err).WithContext(filename)
	}
	return nil
}

// validTable строит таблицу корректных контрагентов
func (e *Exporter) validTable(result *PipelineResult) reportTable {
	header := result.Header
	if header == nil {
		header = &HeaderRow{Identifier: invalidHeaders[0], Name: invalidHeaders[1], Category: CategoryHeader}
	}

	table := reportTable{
		sheet:   "Контрагенты",
		headers: []string{header.Identifier, header.Name, header.Category},
		widths:  []float64{18, 60, 10},
	}

	if e.preserveSourceRows && len(result.Valid) > 0 {
		// Строка данных N входного файла попадает в строку N отчета
		last := result.Valid[len(result.Valid)-1].SourceRow
		table.rows = make([][]interface{}, last-1)
		for _, row := range result.Valid {
			table.rows[row.SourceRow-2] = validCells(row)
		}
		return table
	}

	table.rows = make([][]interface{}, 0, len(result.Valid))
	for _, row := range result.Valid {
		table.rows = append(table.rows, validCells(row))
	}
	return table
}

func validCells(row ValidRow) []interface{} {
	return []interface{}{row.Identifier, row.Name, string(row.Category)}
}

// invalidTable строит таблицу строк с некорректным БИН/ИИН
func (e *Exporter) invalidTable(result *PipelineResult) reportTable {
	table := reportTable{
		sheet:   "Некорректные",
		headers: invalidHeaders,
		rows:    make([][]interface{}, 0, len(result.Invalid)),
		widths:  []float64{18, 60},
	}
	for _, row := range result.Invalid {
		table.rows = append(table.rows, []interface{}{row.Row[0], row.Row[1]})
	}
	return table
}

// statisticsTable строит таблицу статистики (без заголовка)
func (e *Exporter) statisticsTable(result *PipelineResult) reportTable {
	table := reportTable{
		sheet:  "Статистика",
		widths: []float64{20, 12, 10},
	}
	for _, stat := range result.Counts.Statistics() {
		table.rows = append(table.rows, []interface{}{stat.Name, stat.Value, stat.Percent})
	}
	return table
}

// writeExcel сохраняет таблицу в xlsx с оформленным заголовком
func writeExcel(table reportTable, filename string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := table.sheet
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	// Стиль заголовков
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	rowIdx := 1
	if len(table.headers) > 0 {
		for i, header := range table.headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowIdx)
			if err := f.SetCellValue(sheetName, cell, header); err != nil {
				return fmt.Errorf("failed to set header %s: %w", cell, err)
			}
		}
		first, _ := excelize.CoordinatesToCellName(1, rowIdx)
		last, _ := excelize.CoordinatesToCellName(len(table.headers), rowIdx)
		if err := f.SetCellStyle(sheetName, first, last, headerStyle); err != nil {
			return fmt.Errorf("failed to style header: %w", err)
		}
		rowIdx++
	}

	// Данные
	for _, row := range table.rows {
		for i, value := range row {
			cell, _ := excelize.CoordinatesToCellName(i+1, rowIdx)
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
		rowIdx++
	}

	for i, width := range table.widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}

	return nil
}

// writeCSV сохраняет таблицу в CSV (UTF-8 с BOM, чтобы Excel открывал кириллицу)
func writeCSV(table reportTable, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := file.WriteString("\uFEFF"); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)

	if len(table.headers) > 0 {
		if err := writer.Write(table.headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, row := range table.rows {
		record := make([]string, len(row))
		for i, value := range row {
			record[i] = fmt.Sprint(value)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return file.Close()
}

// Summary сводка прогона для вывода в JSON
type Summary struct {
	RunID      string          `json:"run_id"`
	Counts     Counts          `json:"counts"`
	Statistics []StatisticsRow `json:"statistics"`
	Duration   string          `json:"duration"`
	ExportedAt string          `json:"exported_at"`
}

// NewSummary строит сводку по результату прогона
func NewSummary(result *PipelineResult) Summary {
	return Summary{
		RunID:      result.RunID,
		Counts:     result.Counts,
		Statistics: result.Counts.Statistics(),
		Duration:   result.Duration.Round(time.Millisecond).String(),
		ExportedAt: time.Now().Format(time.RFC3339),
	}
}

// WriteSummaryJSON пишет сводку прогона в JSON
func WriteSummaryJSON(w io.Writer, result *PipelineResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(NewSummary(result)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
