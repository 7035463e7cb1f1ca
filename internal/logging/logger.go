// Package logging строит структурированный логгер приложения.
// Глобального логгера нет: результат New передается компонентам через конструкторы.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Options параметры логгера
type Options struct {
	Level     string    // DEBUG, INFO, WARN, ERROR
	Format    string    // json или text
	AddSource bool      // Добавлять файл и строку вызова
	Output    io.Writer // По умолчанию os.Stderr
}

// New создает структурированный логгер по параметрам
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     ParseLevel(opts.Level),
		AddSource: opts.AddSource,
	}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "text") {
		handler = slog.NewTextHandler(out, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(out, handlerOpts)
	}

	return slog.New(handler)
}

// ParseLevel переводит строковый уровень в slog.Level, INFO по умолчанию
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard возвращает логгер, который ничего не пишет
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrDiscard возвращает logger или Discard, если он не задан
func OrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return Discard()
	}
	return logger
}

// LogDuration логирует продолжительность выполнения операции
func LogDuration(logger *slog.Logger, operation string, duration time.Duration, attrs ...any) {
	attrs = append(attrs, "duration_ms", duration.Milliseconds())
	OrDiscard(logger).Info(operation+" completed", attrs...)
}
