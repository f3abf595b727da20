package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/cruciblehq/persistd/internal"
	"github.com/cruciblehq/persistd/internal/daemonize"
	"github.com/cruciblehq/persistd/internal/paths"
	"github.com/cruciblehq/persistd/internal/server"
)

// Runs daemon mode.
//
// The first invocation detaches a copy of itself and returns. The detached
// copy sends its logs to the runtime directory, then starts the server and
// serves until SHUTDOWN or a termination signal.
func runDaemon(ctx context.Context, s *Settings) error {
	if !daemonize.IsDetached() {
		slog.Debug("stage", "to", server.StageStarting)
		slog.Debug("stage", "from", server.StageStarting, "to", server.StageDetaching)
		pid, err := daemonize.Detach(s.daemonArgs())
		if err != nil {
			return err
		}
		slog.Debug("daemon detached", "pid", pid)
		return nil
	}

	if err := s.Layout.Ensure(); err != nil {
		return err
	}

	logFile, err := os.OpenFile(s.Layout.LogFile(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, paths.DefaultFileMode)
	if err == nil {
		defer logFile.Close()
		slog.SetDefault(NewLogger(logFile))
	}

	slog.Info("daemon starting", "pid", os.Getpid(), "version", internal.VersionString())
	slog.Debug("stage", "from", server.StageDetaching, "to", server.StageInitializing)

	srv := server.New(server.Config{
		RuntimeDir:   s.Layout.Dir,
		ReplyTimeout: s.ReplyTimeout,
	})

	return srv.Run(ctx)
}
