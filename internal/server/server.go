package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cruciblehq/persistd/internal/channel"
	"github.com/cruciblehq/persistd/internal/command"
	"github.com/cruciblehq/persistd/internal/liveness"
	"github.com/cruciblehq/persistd/internal/paths"
	"github.com/cruciblehq/persistd/internal/store"
)

// Bounds of the pause between consecutive failed transactions.
const (
	minFailureBackoff = 10 * time.Millisecond
	maxFailureBackoff = time.Second
)

// Holds server configuration.
type Config struct {
	RuntimeDir   string           // Directory for the marker and FIFOs. Empty uses the default.
	ReplyTimeout time.Duration    // How long to wait for a client to read a response. Zero waits forever.
	Probe        liveness.Probe   // Process existence check. Nil uses [liveness.SignalProbe].
	Clock        func() time.Time // Time source for uptime. Nil uses [time.Now].
}

// Serves the key/value state over the FIFO pair.
type Server struct {
	layout paths.Layout     // Location of the runtime artifacts.
	pair   channel.Pair     // Request and response FIFOs.
	duplex channel.Duplex   // Daemon side of the FIFO pair.
	marker liveness.Marker  // PID file announcing this daemon.
	probe  liveness.Probe   // Used to detect a competing live daemon.
	now    func() time.Time // Time source.
	state  *store.State     // Created when serving begins.
	stage  Stage            // Current lifecycle stage.
}

// Creates a new server instance.
//
// Nothing touches the filesystem until [Server.Start] is called.
func New(cfg Config) *Server {
	layout := paths.New(cfg.RuntimeDir)
	pair := channel.NewPair(layout)

	probe := cfg.Probe
	if probe == nil {
		probe = liveness.SignalProbe{}
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Server{
		layout: layout,
		pair:   pair,
		duplex: pair.Endpoint(cfg.ReplyTimeout),
		marker: liveness.Marker{Path: layout.PIDFile()},
		probe:  probe,
		now:    clock,
		stage:  StageInitializing,
	}
}

// Returns the current lifecycle stage.
func (s *Server) Stage() Stage {
	return s.stage
}

// Returns the runtime layout the server uses.
func (s *Server) Layout() paths.Layout {
	return s.layout
}

// Starts, serves until shutdown or cancellation, and tears down.
//
// Teardown runs whenever Start succeeded, including after a serve error.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	defer s.Stop()

	return s.Serve(ctx)
}

// Claims the liveness marker, recreates the FIFOs, and seeds the state.
//
// Fails with [ErrAlreadyRunning] if the marker names another live process. A
// failure to create the FIFOs is fatal and releases the marker again.
func (s *Server) Start() error {
	if pid := liveness.RunningPID(s.marker, s.probe); pid != 0 && pid != os.Getpid() {
		return fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
	}

	if err := s.layout.Ensure(); err != nil {
		return fmt.Errorf("%w: %w", ErrServer, err)
	}

	if err := s.marker.Write(os.Getpid()); err != nil {
		return fmt.Errorf("%w: %w", ErrServer, err)
	}

	if err := s.pair.Create(); err != nil {
		s.marker.Remove()
		return fmt.Errorf("%w: %w", ErrServer, err)
	}

	s.state = store.New(s.now())
	s.setStage(StageServing)

	slog.Info("daemon serving", "dir", s.layout.Dir, "pid", os.Getpid(), "started_at", s.state.StartedAt())
	return nil
}

// Processes transactions one at a time until SHUTDOWN or ctx is cancelled.
//
// Per-request failures are logged and the loop carries on. Serve returns an
// error only if the FIFOs disappear underneath it.
func (s *Server) Serve(ctx context.Context) error {
	if s.state == nil {
		return fmt.Errorf("%w: serve called before start", ErrServer)
	}

	failures := 0
	for {
		if ctx.Err() != nil {
			slog.Info("serving cancelled")
			return nil
		}

		stop, err := s.serveOne(ctx)
		if stop {
			slog.Info("shutdown requested")
			return nil
		}
		if err == nil {
			failures = 0
			continue
		}
		if ctx.Err() != nil {
			continue
		}
		if !s.pair.Exists() {
			return fmt.Errorf("%w: %w", ErrServer, ErrChannelsGone)
		}

		failures++
		delay := failureBackoff(failures)
		slog.Warn("transaction failed", "error", err, "failures", failures, "retry_in", delay)

		select {
		case <-ctx.Done():
		case <-time.After(delay):
		}
	}
}

// Returns the pause after the given number of consecutive failures, doubling
// from [minFailureBackoff] up to [maxFailureBackoff].
func failureBackoff(failures int) time.Duration {
	delay := minFailureBackoff
	for i := 1; i < failures && delay < maxFailureBackoff; i++ {
		delay *= 2
	}
	return min(delay, maxFailureBackoff)
}

// Runs one transaction. Returns true once a SHUTDOWN reply has been sent.
func (s *Server) serveOne(ctx context.Context) (bool, error) {
	req, err := s.duplex.AcceptOneRequest(ctx)
	if err != nil {
		return false, err
	}

	// A client that connected without writing gets no reply.
	if len(req) == 0 {
		slog.Debug("empty request ignored")
		return false, nil
	}

	cmd := command.Parse(req)
	reply := command.Apply(s.state, cmd, s.now())

	slog.Debug("command processed", "command", cmd.Kind, "error", reply.Err)

	// The last reply is written only after teardown, so a client that has
	// read it already sees no daemon.
	if reply.Shutdown {
		release := func() { s.Stop() }
		if err := s.duplex.SendFinalResponse(ctx, []byte(reply.Text), release); err != nil {
			slog.Debug("response dropped", "command", cmd.Kind, "error", err)
		}
		return true, nil
	}

	if err := s.duplex.SendOneResponse(ctx, []byte(reply.Text)); err != nil {
		slog.Debug("response dropped", "command", cmd.Kind, "error", err)
	}
	return false, nil
}

// Removes the FIFOs and the liveness marker.
//
// Safe to call more than once and regardless of how serving ended. Clients
// blocked on a FIFO at this point see a failed or empty transaction.
func (s *Server) Stop() error {
	if s.stage == StageTerminated {
		return nil
	}
	s.setStage(StageStopping)

	var errs []error
	if err := s.pair.Retire(); err != nil {
		slog.Warn("failed to remove channels", "error", err)
		errs = append(errs, err)
	}
	if err := s.marker.Remove(); err != nil {
		slog.Warn("failed to remove liveness marker", "error", err)
		errs = append(errs, err)
	}

	s.setStage(StageTerminated)

	if s.state != nil {
		slog.Info("daemon stopped", "queries", s.state.Queries(), "uptime", s.state.Uptime(s.now()))
	}
	return errors.Join(errs...)
}

func (s *Server) setStage(stage Stage) {
	slog.Debug("stage", "from", s.stage, "to", stage)
	s.stage = stage
}
