// Package logging provides structured file logging for tagedit operations.
package logging

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides structured logging for edit operations.
type Logger struct {
	zap *zap.Logger
}

// New creates a Logger that writes to a file.
// If logPath is empty, logging is disabled.
// If development is true, uses development config with readable output.
// Otherwise uses production config with JSON output.
func New(logPath string, development bool) (*Logger, error) {
	if logPath == "" {
		return &Logger{zap: zap.NewNop()}, nil
	}

	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	var encoderConfig zapcore.EncoderConfig
	if development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logFile),
		zapcore.InfoLevel,
	)

	return &Logger{zap: zap.New(core)}, nil
}

// Close syncs the logger (should be called on shutdown).
func (l *Logger) Close() error {
	return l.zap.Sync()
}

// BatchApplied logs a successfully applied edit batch.
func (l *Logger) BatchApplied(path string, edits, noops, firstChanged int, duration time.Duration) {
	l.zap.Info("batch applied",
		zap.String("path", path),
		zap.Int("edits", edits),
		zap.Int("noop_edits", noops),
		zap.Int("first_changed_line", firstChanged),
		zap.Duration("duration", duration),
	)
}

// BatchRejected logs an edit batch that failed validation or conflicted.
func (l *Logger) BatchRejected(path string, err error) {
	l.zap.Info("batch rejected",
		zap.String("path", path),
		zap.Error(err),
	)
}

// ToolExecuted logs a tool execution with details.
func (l *Logger) ToolExecuted(toolName string, duration time.Duration, success bool, err error) {
	fields := []zap.Field{
		zap.String("tool", toolName),
		zap.Duration("duration", duration),
		zap.Bool("success", success),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	l.zap.Info("tool executed", fields...)
}

// Error logs an error.
func (l *Logger) Error(msg string, err error) {
	l.zap.Error(msg, zap.Error(err))
}

// Info logs an info message.
func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, fields...)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.zap.Debug(msg, fields...)
}
