package logger

import (
	"log/slog"
	"strings"

	"go.uber.org/zap/zapcore"
)

type level struct {
	slog slog.Level
	zap  zapcore.Level
}

var levels = map[string]level{
	"debug":   {slog.LevelDebug, zapcore.DebugLevel},
	"info":    {slog.LevelInfo, zapcore.InfoLevel},
	"warn":    {slog.LevelWarn, zapcore.WarnLevel},
	"warning": {slog.LevelWarn, zapcore.WarnLevel},
	"error":   {slog.LevelError, zapcore.ErrorLevel},
}

// parseLevel resolves a configured level name for both loggers.
// Unknown names fall back to info.
func parseLevel(name string) level {
	if l, ok := levels[strings.ToLower(strings.TrimSpace(name))]; ok {
		return l
	}
	return levels["info"]
}
