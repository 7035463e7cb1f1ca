package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	apperrors "counterpartycheck/internal/errors"
	"counterpartycheck/normalization"
)

// sampleSize объем начала файла для определения кодировки и разделителя
const sampleSize = 64 * 1024

// CSVOptions параметры чтения CSV
type CSVOptions struct {
	Encoding  string // auto, utf-8, windows-1251, koi8-r
	Delimiter rune   // 0 - определить по первой строке (';' или ',')
}

// CSVReader источник строк из CSV-выгрузки (например, из 1С в Windows-1251)
type CSVReader struct {
	reader   *csv.Reader
	closer   io.Closer
	encoding string
	comma    rune
}

// OpenCSV открывает CSV-файл как источник строк
func OpenCSV(path string, opts CSVOptions) (*CSVReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewSourceError("failed to open CSV file", err).WithContext(path)
	}

	r, err := NewCSVReader(file, opts)
	if err != nil {
		file.Close()
		return nil, err
	}
	r.closer = file
	return r, nil
}

// NewCSVReader создает источник строк поверх произвольного потока
func NewCSVReader(src io.Reader, opts CSVOptions) (*CSVReader, error) {
	buffered := bufio.NewReaderSize(src, sampleSize)
	sample, err := buffered.Peek(sampleSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, apperrors.NewSourceError("failed to read CSV file", err)
	}

	name, enc, err := resolveEncoding(opts.Encoding, sample)
	if err != nil {
		return nil, apperrors.NewSourceError("unsupported CSV encoding", err)
	}

	// BOMOverride убирает BOM UTF-8 и иначе применяет выбранную кодировку
	decoder := unicode.BOMOverride(enc.NewDecoder())

	comma := opts.Delimiter
	if comma == 0 {
		decoded, _, _ := transform.Bytes(unicode.BOMOverride(enc.NewDecoder()), sample)
		comma = detectDelimiter(decoded)
	}

	reader := csv.NewReader(transform.NewReader(buffered, decoder))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return &CSVReader{
		reader:   reader,
		encoding: name,
		comma:    comma,
	}, nil
}

// Read возвращает следующую строку или io.EOF
func (r *CSVReader) Read() (normalization.Row, error) {
	record, err := r.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, apperrors.NewSourceError("failed to parse CSV row", err)
	}
	return normalization.Row(record), nil
}

// Encoding возвращает название кодировки, с которой читается файл
func (r *CSVReader) Encoding() string {
	return r.encoding
}

// Delimiter возвращает используемый разделитель
func (r *CSVReader) Delimiter() rune {
	return r.comma
}

// Close закрывает файл, если он был открыт через OpenCSV
func (r *CSVReader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// resolveEncoding выбирает кодировку: явно заданную или определенную по содержимому.
// Невалидный UTF-8 считается Windows-1251, как чаще всего бывает у выгрузок с кириллицей.
func resolveEncoding(name string, sample []byte) (string, encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		return "utf-8", unicode.UTF8, nil
	case "windows-1251", "cp1251":
		return "windows-1251", charmap.Windows1251, nil
	case "koi8-r":
		return "koi8-r", charmap.KOI8R, nil
	case "auto", "":
		if validUTF8Prefix(sample) {
			return "utf-8", unicode.UTF8, nil
		}
		return "windows-1251", charmap.Windows1251, nil
	default:
		return "", nil, fmt.Errorf("unknown encoding %q", name)
	}
}

// validUTF8Prefix проверяет UTF-8, допуская обрезанный последний символ
func validUTF8Prefix(b []byte) bool {
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			return len(b) < utf8.UTFMax && !utf8.FullRune(b)
		}
		b = b[size:]
	}
	return true
}

// detectDelimiter выбирает ';' или ',' по первой строке
func detectDelimiter(sample []byte) rune {
	line := sample
	if i := bytes.IndexByte(sample, '\n'); i >= 0 {
		line = sample[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}
