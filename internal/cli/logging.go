package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/cruciblehq/persistd/internal"
	"golang.org/x/term"
)

// Creates a logger writing to w at the level selected by the output modes.
//
// Terminals get human-readable text; anything else, such as the daemon log
// file, gets JSON lines. Verbose mode adds source locations.
func NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     Level(),
		AddSource: internal.IsVerbose(),
	}

	var handler slog.Handler
	if f, ok := w.(*os.File); ok && isatty(f) {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler.WithGroup(internal.Name))
}

// Returns the log level derived from the output modes.
func Level() slog.Level {
	if internal.IsDebug() {
		return slog.LevelDebug
	}
	if internal.IsQuiet() {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// Whether the given file is an interactive terminal.
func isatty(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
