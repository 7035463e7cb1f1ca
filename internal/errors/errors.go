package errors

import (
	"errors"
	"fmt"
)

// Kind категория ошибки приложения
type Kind string

const (
	KindRowShape Kind = "row_shape" // строка таблицы короче двух колонок
	KindSource   Kind = "source"    // ошибка чтения входного файла
	KindSink     Kind = "sink"      // ошибка записи отчета
	KindConfig   Kind = "config"    // некорректная конфигурация
	KindInternal Kind = "internal"
)

// AppError представляет ошибку приложения с категорией и контекстом
type AppError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"` // Сообщение для пользователя
	Err     error  `json:"-"`       // Внутренняя ошибка для логов
	Context string `json:"-"`       // Дополнительный контекст (файл, строка)
}

// Error реализует интерфейс error
func (e *AppError) Error() string {
	msg := e.Message
	if e.Context != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Context)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap возвращает вложенную ошибку для errors.Is и errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// ExitCode возвращает код завершения процесса для ошибки
func (e *AppError) ExitCode() int {
	switch e.Kind {
	case KindConfig:
		return 2
	case KindSource, KindRowShape:
		return 3
	case KindSink:
		return 4
	default:
		return 1
	}
}

// WithContext добавляет контекст к ошибке
func (e *AppError) WithContext(context string) *AppError {
	e.Context = context
	return e
}

// RowShapeError описывает строку с недостаточным количеством колонок
type RowShapeError struct {
	Row     int // номер строки во входных данных, с 1
	Columns int // фактическое количество колонок
}

func (e *RowShapeError) Error() string {
	return fmt.Sprintf("row %d has %d column(s), at least 2 required", e.Row, e.Columns)
}

// NewRowShapeError создает фатальную ошибку формы строки
func NewRowShapeError(row, columns int) *AppError {
	return &AppError{
		Kind:    KindRowShape,
		Message: "Некорректная строка входных данных",
		Err:     &RowShapeError{Row: row, Columns: columns},
		Context: fmt.Sprintf("row %d", row),
	}
}

// NewSourceError создает ошибку чтения источника строк
func NewSourceError(message string, err error) *AppError {
	return &AppError{
		Kind:    KindSource,
		Message: message,
		Err:     err,
	}
}

// NewSinkError создает ошибку записи отчета
func NewSinkError(message string, err error) *AppError {
	return &AppError{
		Kind:    KindSink,
		Message: message,
		Err:     err,
	}
}

// NewConfigError создает ошибку конфигурации
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Kind:    KindConfig,
		Message: message,
		Err:     err,
	}
}

// NewInternalError создает внутреннюю ошибку
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Message: message,
		Err:     err,
	}
}

// WrapError оборачивает существующую ошибку с контекстом
// Если ошибка уже AppError, сохраняет ее категорию. Иначе создает InternalError
func WrapError(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Kind:    appErr.Kind,
			Message: fmt.Sprintf("%s: %s", message, appErr.Message),
			Err:     appErr.Err,
			Context: appErr.Context,
		}
	}

	return NewInternalError(message, err)
}

// KindOf возвращает категорию ошибки или KindInternal для сторонних ошибок
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// ExitCode возвращает код завершения для произвольной ошибки
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ExitCode()
	}
	return 1
}
