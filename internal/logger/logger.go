// Package logger builds the process-wide slog logger: JSON to stdout, with
// optional rotated file output via lumberjack.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"medibook-server/internal/config"
)

// New builds a logger from config and installs it as the slog default.
func New(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.Log.Level)
	isDev := strings.EqualFold(cfg.Environment, "development")

	writers := []io.Writer{os.Stdout}
	if cfg.Log.FilePath != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.Log.FilePath,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			Compress:   true,
		})
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: isDev,
	}

	w := io.MultiWriter(writers...)
	var h slog.Handler
	if isDev {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}

	log := slog.New(h).With(
		slog.String("service", "medibook-server"),
		slog.String("env", cfg.Environment),
	)
	slog.SetDefault(log)
	return log
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
