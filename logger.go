package main

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger builds the JSON logger. With a log file configured, output is
// written to stderr and to the rotated file. The returned closer releases
// the file.
func newLogger(config *Config) (*slog.Logger, io.Closer) {
	var out io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)

	if config.Log.Filename != "" {
		lj := &lumberjack.Logger{
			Filename:   config.Log.Filename,
			MaxSize:    config.Log.MaxSizeMB,
			MaxBackups: config.Log.MaxBackups,
			MaxAge:     config.Log.MaxAgeDays,
			Compress:   config.Log.Compress,
		}
		out = io.MultiWriter(os.Stderr, lj)
		closer = lj
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: parseLevel(config.LogLevel)})
	return slog.New(handler), closer
}
