package logger

import (
	"log/slog"
	"os"
)

// Log is usable before Init so packages can log during tests.
var Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// Init configures the JSON application logger. Production runs at info,
// everything else at debug.
func Init(environment string) {
	level := slog.LevelDebug
	if environment == "production" {
		level = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler)
}
