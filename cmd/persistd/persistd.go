package main

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/cruciblehq/persistd/internal"
	"github.com/cruciblehq/persistd/internal/cli"
	"github.com/cruciblehq/persistd/internal/daemonize"
)

// Names the detached daemon after the program.
//
// Package initialization runs on the main thread, whose name is the one ps
// reports for the process.
func init() {
	if !daemonize.IsDetached() {
		return
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if err := daemonize.SetProcessName(internal.Name); err != nil {
		slog.Warn("failed to set process name", "error", err)
	}
}

// The entry point for persistd.
//
// Sets up logging from build-time defaults and executes the root command,
// which runs either the client or the daemon. Any error exits with status 1.
func main() {
	slog.SetDefault(cli.NewLogger(os.Stderr))

	slog.Debug("build", "version", internal.VersionString())

	slog.Debug("persistd is running",
		"pid", os.Getpid(),
		"cwd", cwd(),
		"args", os.Args,
	)

	if err := cli.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// Returns the current working directory or "(unknown)".
func cwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "(unknown)"
	}
	return cwd
}
