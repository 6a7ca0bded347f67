package telemetry

import (
	"log/slog"
	"os"
)

// InitSlog installs the process-wide text handler. Debug mode turns on
// per-request logging in the scraper client, which gets loud.
func InitSlog(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
