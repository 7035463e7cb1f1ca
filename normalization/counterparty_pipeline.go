package normalization

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "counterpartycheck/internal/errors"
	"counterpartycheck/internal/logging"
	"counterpartycheck/quality"
)

// CategoryHeader заголовок колонки категории в таблице корректных контрагентов
const CategoryHeader = "ФЛ/ЮЛ"

// Row строка входной таблицы: 0 - БИН/ИИН, 1 - название контрагента
type Row []string

// RowReader последовательный источник строк. По окончании данных Read возвращает io.EOF.
type RowReader interface {
	Read() (Row, error)
}

// SliceReader отдает строки из среза
type SliceReader struct {
	rows []Row
	pos  int
}

// NewSliceReader создает источник строк из среза
func NewSliceReader(rows []Row) *SliceReader {
	return &SliceReader{rows: rows}
}

// Read возвращает следующую строку или io.EOF
func (r *SliceReader) Read() (Row, error) {
	if r.pos >= len(r.rows) {
		return nil, io.EOF
	}
	row := r.rows[r.pos]
	r.pos++
	return row, nil
}

// HeaderRow заголовок таблицы корректных контрагентов
type HeaderRow struct {
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
	Category   string `json:"category"`
}

// ValidRow корректный контрагент
type ValidRow struct {
	SourceRow  int                    `json:"source_row"` // номер строки во входных данных, с 1
	Identifier string                 `json:"identifier"`
	Name       string                 `json:"name"` // название с ОПФ в начале
	Category   quality.Category       `json:"category"`
	Kind       quality.IdentifierKind `json:"kind"`
}

// InvalidRow строка с некорректным БИН/ИИН, без изменений
type InvalidRow struct {
	SourceRow int            `json:"source_row"`
	Row       Row            `json:"row"`
	Reason    quality.Reason `json:"reason"`
}

// Counts счетчики прогона.
// Unique + Duplicates = Total, Valid + Invalid = Unique. Заголовок входит в Unique и Valid.
type Counts struct {
	Total      int `json:"total"`
	Unique     int `json:"unique"`
	Duplicates int `json:"duplicates"`
	Invalid    int `json:"invalid"`
	Valid      int `json:"valid"`
}

// PipelineResult результат прогона
type PipelineResult struct {
	RunID    string        `json:"run_id"`
	Header   *HeaderRow    `json:"header,omitempty"`
	Valid    []ValidRow    `json:"-"`
	Invalid  []InvalidRow  `json:"-"`
	Counts   Counts        `json:"counts"`
	Duration time.Duration `json:"duration"`
}

// Pipeline дедуплицирует контрагентов, проверяет БИН/ИИН и нормализует названия
type Pipeline struct {
	classifier      *quality.Classifier
	normalizer      *LegalFormNormalizer
	trimIdentifiers bool
	logger          *slog.Logger
}

// PipelineOption настройка Pipeline
type PipelineOption func(*Pipeline)

// WithTrimIdentifiers включает обрезку пробелов вокруг БИН/ИИН перед проверкой
func WithTrimIdentifiers(trim bool) PipelineOption {
	return func(p *Pipeline) {
		p.trimIdentifiers = trim
	}
}

// NewPipeline создает конвейер. nil-компоненты заменяются значениями по умолчанию.
func NewPipeline(classifier *quality.Classifier, normalizer *LegalFormNormalizer, logger *slog.Logger, opts ...PipelineOption) *Pipeline {
	if classifier == nil {
		classifier = quality.NewClassifier(nil)
	}
	if normalizer == nil {
		normalizer = NewLegalFormNormalizer()
	}

	p := &Pipeline{
		classifier: classifier,
		normalizer: normalizer,
		logger:     logging.OrDiscard(logger).With("component", "counterparty_pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run выполняет один проход по строкам источника.
// Первая строка считается заголовком. Из строк с повторяющимся названием остается первая.
// Ошибки проверки БИН/ИИН не прерывают прогон; фатальны только ошибки чтения
// и строки короче двух колонок.
func (p *Pipeline) Run(src RowReader) (*PipelineResult, error) {
	result := &PipelineResult{RunID: uuid.NewString()}
	logger := p.logger.With("run_id", result.RunID)
	start := time.Now()

	logger.Info("Starting counterparty check")

	seen := make(map[string]struct{})
	rowNum := 0

	for {
		row, err := src.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.WrapError(err, "failed to read counterparty rows").
				WithContext(rowContext(rowNum + 1))
		}

		rowNum++
		if len(row) < 2 {
			return nil, apperrors.NewRowShapeError(rowNum, len(row))
		}

		key := row[1]
		if rowNum == 1 {
			seen[key] = struct{}{}
			result.Counts.Unique++
			result.Header = &HeaderRow{
				Identifier: row[0],
				Name:       p.normalizer.Normalize(row[1]),
				Category:   CategoryHeader,
			}
			continue
		}

		if _, dup := seen[key]; dup {
			result.Counts.Duplicates++
			logger.Debug("Duplicate counterparty skipped", "row", rowNum, "name", key)
			continue
		}
		seen[key] = struct{}{}
		result.Counts.Unique++

		id := row[0]
		if p.trimIdentifiers {
			id = strings.TrimSpace(id)
		}

		classification := p.classifier.Inspect(id)
		if !classification.Valid {
			result.Counts.Invalid++
			result.Invalid = append(result.Invalid, InvalidRow{
				SourceRow: rowNum,
				Row:       row,
				Reason:    classification.Reason,
			})
			logger.Debug("Invalid identifier",
				"row", rowNum,
				"identifier", row[0],
				"reason", classification.Reason)
			continue
		}

		result.Valid = append(result.Valid, ValidRow{
			SourceRow:  rowNum,
			Identifier: row[0],
			Name:       p.normalizer.Normalize(row[1]),
			Category:   classification.Category,
			Kind:       classification.Kind,
		})
	}

	result.Counts.Total = result.Counts.Unique + result.Counts.Duplicates
	result.Counts.Valid = result.Counts.Unique - result.Counts.Invalid
	result.Duration = time.Since(start)

	logger.Info("Finished counterparty check",
		"total", result.Counts.Total,
		"unique", result.Counts.Unique,
		"duplicates", result.Counts.Duplicates,
		"invalid", result.Counts.Invalid,
		"valid", result.Counts.Valid,
		"duration", result.Duration)

	return result, nil
}

func rowContext(row int) string {
	return fmt.Sprintf("row %d", row)
}
