package common

import "context"

// Logger is the logging port for the application layer. Adapters decide the
// backend; handlers only ever see this interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Context keys for passing logger through context
type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op
// logger if not found
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return &noOpLogger{}
}

// NewNoOpLogger returns a logger that discards everything
func NewNoOpLogger() Logger {
	return &noOpLogger{}
}

type noOpLogger struct{}

func (l *noOpLogger) Debug(msg string, fields map[string]interface{}) {}
func (l *noOpLogger) Info(msg string, fields map[string]interface{})  {}
func (l *noOpLogger) Warn(msg string, fields map[string]interface{})  {}
func (l *noOpLogger) Error(msg string, fields map[string]interface{}) {}
