package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/cruciblehq/persistd/internal"
	"github.com/cruciblehq/persistd/internal/client"
	"github.com/cruciblehq/persistd/internal/config"
	"github.com/cruciblehq/persistd/internal/paths"
)

// Represents the root command for persistd.
var RootCmd struct {
	Quiet      bool   `short:"q" help:"Suppress informational output."`
	Verbose    bool   `short:"v" help:"Enable verbose output."`
	Debug      bool   `short:"d" help:"Enable debug output."`
	Config     string `short:"c" help:"Path to the config file." type:"path" placeholder:"PATH"`
	RuntimeDir string `short:"r" name:"runtime-dir" env:"PERSISTD_RUNTIME_DIR" help:"Override the directory holding the liveness marker and FIFOs." type:"path" placeholder:"DIR"`
	Daemon     bool   `hidden:"" help:"Run as the daemon."`

	Shell    ShellCmd    `cmd:"" default:"1" help:"Start an interactive session (default)."`
	Status   StatusCmd   `cmd:"" help:"Show daemon status."`
	Get      GetCmd      `cmd:"" help:"Print the value stored under a key."`
	Set      SetCmd      `cmd:"" help:"Store a value under a key."`
	Shutdown ShutdownCmd `cmd:"" help:"Stop the daemon."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// Resolved runtime settings, bound into every command.
type Settings struct {
	Layout       paths.Layout  // Runtime directory shared by client and daemon.
	StartupDelay time.Duration // Client wait for a newly launched daemon.
	ReplyTimeout time.Duration // Daemon wait for a response reader.
	ConfigPath   string        // Explicit config file, forwarded to the daemon.
}

// Parses arguments, configures logging, and runs the selected mode.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("Keeps key/value state in a background daemon.\n\nTalks to the daemon over named pipes and starts it when needed."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	settings, err := loadSettings()
	if err != nil {
		return err
	}

	if RootCmd.Daemon {
		return runDaemon(ctx, settings)
	}

	kongCtx.Bind(settings)
	return kongCtx.Run()
}

// Merges flags, environment and config file into [Settings].
//
// The runtime directory comes from the flag or environment first, then the
// config file, then the XDG default.
func loadSettings() (*Settings, error) {
	cfg, err := config.Load(RootCmd.Config)
	if err != nil {
		return nil, err
	}

	dir := RootCmd.RuntimeDir
	if dir == "" {
		dir = cfg.RuntimeDir
	}

	return &Settings{
		Layout:       paths.New(dir),
		StartupDelay: cfg.StartupDelay,
		ReplyTimeout: cfg.ReplyTimeout,
		ConfigPath:   RootCmd.Config,
	}, nil
}

// Arguments that start the daemon with these settings.
//
// The runtime directory is always passed explicitly so that the daemon uses
// the same paths as the client that launched it.
func (s *Settings) daemonArgs() []string {
	args := []string{"--daemon", "--runtime-dir", s.Layout.Dir}
	if s.ConfigPath != "" {
		args = append(args, "--config", s.ConfigPath)
	}
	if RootCmd.Debug {
		args = append(args, "--debug")
	}
	if RootCmd.Verbose {
		args = append(args, "--verbose")
	}
	return args
}

// Returns a launcher that starts a daemon for these settings.
func (s *Settings) launcher() client.ProcessLauncher {
	return client.ProcessLauncher{
		Args:   s.daemonArgs(),
		Layout: s.Layout,
		Delay:  s.StartupDelay,
	}
}

// Configures the global logger based on CLI flags.
func configureLogger() {
	internal.SetDebug(RootCmd.Debug || internal.IsDebug())
	internal.SetQuiet(RootCmd.Quiet || internal.IsQuiet())
	internal.SetVerbose(RootCmd.Verbose || internal.IsVerbose())

	slog.SetDefault(NewLogger(os.Stderr))
}
