package client

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/cruciblehq/persistd/internal/channel"
	"github.com/cruciblehq/persistd/internal/liveness"
	"github.com/cruciblehq/persistd/internal/paths"
	"github.com/fsnotify/fsnotify"
)

// Default time a client waits for a freshly launched daemon.
const DefaultStartupDelay = 500 * time.Millisecond

// Starts a daemon.
type Launcher interface {
	Launch(ctx context.Context) error
}

// Adapts an ordinary function to the [Launcher] interface.
type LauncherFunc func(ctx context.Context) error

// Calls f(ctx).
func (f LauncherFunc) Launch(ctx context.Context) error {
	return f(ctx)
}

// Launches the daemon by running an executable in daemon mode.
//
// The executable is expected to detach and exit promptly, leaving the daemon
// running in its own session. Launch then waits up to Delay for the FIFOs to
// appear in the layout's runtime directory.
type ProcessLauncher struct {
	Executable string        // Binary to run. Empty uses the current executable.
	Args       []string      // Arguments selecting daemon mode.
	Layout     paths.Layout  // Runtime directory the daemon will use.
	Delay      time.Duration // Upper bound on the readiness wait. Zero uses [DefaultStartupDelay].
}

// Runs the executable and waits for the daemon to become ready.
//
// Returns [ErrLaunch] if the executable cannot be run or exits with an error,
// and [ErrNotReady] if the FIFOs did not appear within the delay.
func (l ProcessLauncher) Launch(ctx context.Context) error {
	exe := l.Executable
	if exe == "" {
		var err error
		if exe, err = os.Executable(); err != nil {
			return fmt.Errorf("%w: %w", ErrLaunch, err)
		}
	}

	// Stdio left nil is bound to the null device.
	cmd := exec.CommandContext(ctx, exe, l.Args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %w", ErrLaunch, err)
	}

	slog.Debug("daemon launched", "executable", exe, "args", l.Args)

	delay := l.Delay
	if delay <= 0 {
		delay = DefaultStartupDelay
	}
	return WaitReady(ctx, l.Layout, delay)
}

// Waits until a live daemon owns the layout and its FIFO pair exists, for at
// most delay.
//
// The runtime directory is watched so the wait ends as soon as the daemon has
// created its FIFOs. FIFOs next to a stale marker do not count.
func WaitReady(ctx context.Context, l paths.Layout, delay time.Duration) error {
	pair := channel.NewPair(l)
	marker := liveness.Marker{Path: l.PIDFile()}
	ready := func() bool {
		return pair.Exists() && liveness.IsRunning(marker, liveness.SignalProbe{})
	}
	if ready() {
		return nil
	}

	if err := l.Ensure(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(l.Dir); err != nil {
		return err
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	events, errs := watcher.Events, watcher.Errors
	for {
		if ready() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			if ready() {
				return nil
			}
			return fmt.Errorf("%w after %s", ErrNotReady, delay)
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			slog.Debug("runtime dir event", "event", ev.String())
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			slog.Debug("watch error", "error", err)
		}
	}
}
