package logging

import (
	"log/slog"
	"os"
)

// Setup installs the default slog logger with the given level and format
// ("text" or "json") and returns it.
func Setup(level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// Init configures logging for the CLI client from the LOG_LEVEL environment
// variable. The client defaults to errors only so log lines do not tear the
// TUI.
func Init() {
	level := "error"
	if l, ok := os.LookupEnv("LOG_LEVEL"); ok {
		level = l
	}
	Setup(level, "text")
}

func parseLevel(level string) slog.Level {
	switch level {
	case "dev", "development", "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "production", "prod":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
