package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ariel-frischer/flightlog/internal/changelog"
	"github.com/ariel-frischer/flightlog/internal/git"
)

var debugLogger *slog.Logger

// configureDebugLogging routes package debug output to a slog text handler
// on w, or silences it when enabled is false.
func configureDebugLogging(enabled bool, w io.Writer) {
	if !enabled {
		debugLogger = nil
		git.SetDebugLogger(nil)
		changelog.SetDebugLogger(nil)
		return
	}

	debugLogger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	git.SetDebugLogger(componentLogger("git"))
	changelog.SetDebugLogger(componentLogger("changelog"))
}

func componentLogger(component string) func(format string, args ...any) {
	logger := debugLogger.With("component", component)
	return func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger.Debug(fmt.Sprintf(format, args...), "component", "cli")
	}
}
