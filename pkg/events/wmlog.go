package events

import (
	"github.com/ThreeDotsLabs/watermill"

	"github.com/ghuser/propstack/pkg/logger"
)

// wmLogger adapts our slog-based logger to watermill.LoggerAdapter.
// Watermill's Trace level maps to Debug; we have nothing finer.
type wmLogger struct{ log logger.Logger }

func (l wmLogger) Error(msg string, err error, fields watermill.LogFields) {
	l.log.Error(msg, append(fieldArgs(fields), "error", err)...)
}

func (l wmLogger) Info(msg string, fields watermill.LogFields) {
	l.log.Info(msg, fieldArgs(fields)...)
}

func (l wmLogger) Debug(msg string, fields watermill.LogFields) {
	l.log.Debug(msg, fieldArgs(fields)...)
}

func (l wmLogger) Trace(msg string, fields watermill.LogFields) {
	l.log.Debug(msg, fieldArgs(fields)...)
}

func (l wmLogger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return wmLogger{log: l.log.With(fieldArgs(fields)...)}
}

func fieldArgs(fields watermill.LogFields) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
