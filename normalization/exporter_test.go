package normalization

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "counterpartycheck/internal/errors"
)

func sampleResult(t *testing.T) *PipelineResult {
	t.Helper()
	rows := []Row{
		{"БИН/ИИН", "Контрагент"},
		{"940903350398", "Иванов Иван ИП"},
		{"bad", "Север АО"},
		{"940903350398", "Иванов Иван ИП"},
		{"040740000120", "Ромашка ТОО"},
	}
	result, err := newTestPipeline().Run(NewSliceReader(rows))
	require.NoError(t, err)
	return result
}

func testPaths(dir, ext string) ReportPaths {
	return ReportPaths{
		Valid:      filepath.Join(dir, "out", "result"+ext),
		Invalid:    filepath.Join(dir, "out", "invalid"+ext),
		Statistics: filepath.Join(dir, "out", "statistics"+ext),
	}
}

func readSheet(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	return rows
}

func TestExporterExcel(t *testing.T) {
	dir := t.TempDir()
	paths := testPaths(dir, ".xlsx")

	err := NewExporter(FormatExcel, false, nil).Export(sampleResult(t), paths)
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"БИН/ИИН", "Контрагент", "ФЛ/ЮЛ"},
		{"940903350398", "ИП Иванов Иван", "ФЛ"},
		{"040740000120", "ТОО Ромашка", "ЮЛ"},
	}, readSheet(t, paths.Valid))

	assert.Equal(t, [][]string{
		{"БИН/ИИН", "Контрагент"},
		{"bad", "Север АО"},
	}, readSheet(t, paths.Invalid))

	assert.Equal(t, [][]string{
		{"Тотал", "5", "100.00"},
		{"Без дупликатов", "4", "80.00"},
		{"Дупликаты", "1", "20.00"},
		{"Некорректные БИН", "1", "20.00"},
	}, readSheet(t, paths.Statistics))
}

func TestExporterExcelPreserveSourceRows(t *testing.T) {
	dir := t.TempDir()
	paths := testPaths(dir, ".xlsx")

	err := NewExporter(FormatExcel, true, nil).Export(sampleResult(t), paths)
	require.NoError(t, err)

	rows := readSheet(t, paths.Valid)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"940903350398", "ИП Иванов Иван", "ФЛ"}, rows[1])
	assert.Empty(t, rows[2])
	assert.Empty(t, rows[3])
	assert.Equal(t, []string{"040740000120", "ТОО Ромашка", "ЮЛ"}, rows[4])
}

func TestExporterCSV(t *testing.T) {
	dir := t.TempDir()
	paths := testPaths(dir, ".csv")

	err := NewExporter(FormatCSV, false, nil).Export(sampleResult(t), paths)
	require.NoError(t, err)

	data, err := os.ReadFile(paths.Valid)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("\uFEFF")))

	records, err := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\uFEFF")))).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"БИН/ИИН", "Контрагент", "ФЛ/ЮЛ"},
		{"940903350398", "ИП Иванов Иван", "ФЛ"},
		{"040740000120", "ТОО Ромашка", "ЮЛ"},
	}, records)

	stats, err := os.ReadFile(paths.Statistics)
	require.NoError(t, err)
	assert.Contains(t, string(stats), "Некорректные БИН,1,20.00")
}

func TestExporterEmptyResult(t *testing.T) {
	dir := t.TempDir()
	paths := testPaths(dir, ".xlsx")

	result, err := newTestPipeline().Run(NewSliceReader(nil))
	require.NoError(t, err)
	require.NoError(t, NewExporter(FormatExcel, true, nil).Export(result, paths))

	assert.Equal(t, [][]string{{"БИН/ИИН", "Контрагент", "ФЛ/ЮЛ"}}, readSheet(t, paths.Valid))
	assert.Equal(t, "0.00", readSheet(t, paths.Statistics)[0][2])
}

func TestExporterSinkError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	paths := ReportPaths{
		Valid:      filepath.Join(blocker, "result.xlsx"),
		Invalid:    filepath.Join(dir, "invalid.xlsx"),
		Statistics: filepath.Join(dir, "statistics.xlsx"),
	}
	err := NewExporter(FormatExcel, false, nil).Export(sampleResult(t), paths)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindSink, apperrors.KindOf(err))
}

func TestParseExportFormat(t *testing.T) {
	format, err := ParseExportFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatExcel, format)

	format, err = ParseExportFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	_, err = ParseExportFormat("pdf")
	assert.Error(t, err)
}

func TestWriteSummaryJSON(t *testing.T) {
	var buf bytes.Buffer
	result := sampleResult(t)
	require.NoError(t, WriteSummaryJSON(&buf, result))

	var summary Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &summary))
	assert.Equal(t, result.RunID, summary.RunID)
	assert.Equal(t, result.Counts, summary.Counts)
	require.Len(t, summary.Statistics, 4)
	assert.True(t, strings.Contains(buf.String(), "Без дупликатов"))
}
