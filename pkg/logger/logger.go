package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"go-contact-backend/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the application logger. It falls back to slog's default until Init runs.
var Log = slog.Default()

var fileWriter *lumberjack.Logger

func Init(cfg config.LogConfig) {
	var out io.Writer = os.Stdout
	if cfg.File != "" {
		// Rotate the log file and keep writing to stdout
		fileWriter = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB, // MB
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays, // days
			Compress:   true,
		}
		out = io.MultiWriter(os.Stdout, fileWriter)
	}

	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	})
	Log = slog.New(handler)
}

// ParseLevel maps a level name to slog.Level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Close flushes and closes the log file, if any
func Close() error {
	if fileWriter == nil {
		return nil
	}
	return fileWriter.Close()
}
