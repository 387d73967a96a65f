package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoSim-25-26J-441/stroke-coach/internal/logging"
)

// Logger tags service log lines with the request id and operation name.
type Logger struct {
	l *slog.Logger
}

// NewLogger creates a logger with request context
func NewLogger(ctx context.Context) *Logger {
	return &Logger{l: logging.FromContext(ctx)}
}

func (l *Logger) LogError(operation string, err error) {
	l.l.Error("operation failed", "operation", operation, "error", err)
}

func (l *Logger) LogInfof(operation string, format string, args ...any) {
	l.l.Info(fmt.Sprintf(format, args...), "operation", operation)
}

func (l *Logger) LogWarnf(operation string, format string, args ...any) {
	l.l.Warn(fmt.Sprintf(format, args...), "operation", operation)
}
