package renderpass

import (
	"log/slog"

	"github.com/gogpu/renderpass/internal/logging"
)

// SetLogger configures the logger for renderpass and all its sub-packages.
// By default, renderpass produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the silent
// default.
//
// Log levels used by renderpass:
//   - [slog.LevelDebug]: buffer sizes, format choice, focus changes
//   - [slog.LevelInfo]: backend selection, configuration reloads
//   - [slog.LevelWarn]: allocation fallbacks, unsubmitted passes, failed hooks
//
// Example:
//
//	renderpass.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
