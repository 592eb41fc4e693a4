package logs

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

var level = new(slog.LevelVar)

func init() {
	level.Set(slog.LevelInfo)
}

// SetVerbose lowers the global log level to debug.
func SetVerbose(v bool) {
	if v {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// ConsoleLogger returns a tint-backed logger writing to stderr and installs
// it as the slog default.
func ConsoleLogger() *slog.Logger {
	w := os.Stderr

	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))

	slog.SetDefault(logger)
	return logger
}
