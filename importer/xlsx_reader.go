package importer

import (
	"io"

	"github.com/xuri/excelize/v2"

	apperrors "counterpartycheck/internal/errors"
	"counterpartycheck/normalization"
)

// XLSXReader построчно читает лист Excel-файла
type XLSXReader struct {
	file  *excelize.File
	rows  *excelize.Rows
	sheet string
	width int
}

// OpenXLSX открывает лист книги как источник строк. Пустое имя листа означает первый лист.
func OpenXLSX(path, sheet string) (*XLSXReader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewSourceError("failed to open Excel file", err).WithContext(path)
	}

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		f.Close()
		return nil, apperrors.NewSourceError("no sheets found in Excel file", nil).WithContext(path)
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		f.Close()
		return nil, apperrors.NewSourceError("failed to read sheet", err).WithContext(path + ": " + sheet)
	}

	return &XLSXReader{file: f, rows: rows, sheet: sheet}, nil
}

// Sheet возвращает имя читаемого листа
func (r *XLSXReader) Sheet() string {
	return r.sheet
}

// Read возвращает следующую строку или io.EOF.
// Строки дополняются пустыми ячейками до ширины первой строки: excelize
// отбрасывает пустые ячейки в конце строки.
func (r *XLSXReader) Read() (normalization.Row, error) {
	if !r.rows.Next() {
		if err := r.rows.Error(); err != nil {
			return nil, apperrors.NewSourceError("failed to iterate rows", err).WithContext(r.sheet)
		}
		return nil, io.EOF
	}

	cols, err := r.rows.Columns()
	if err != nil {
		return nil, apperrors.NewSourceError("failed to read row", err).WithContext(r.sheet)
	}

	if r.width == 0 {
		r.width = len(cols)
	}
	for len(cols) < r.width {
		cols = append(cols, "")
	}

	return normalization.Row(cols), nil
}

// Close освобождает итератор строк и файл
func (r *XLSXReader) Close() error {
	if err := r.rows.Close(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}
