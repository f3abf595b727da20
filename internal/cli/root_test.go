package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/cruciblehq/persistd/internal/config"
	"github.com/cruciblehq/persistd/internal/paths"
)

func resetRootCmd(t *testing.T) {
	t.Helper()
	saved := RootCmd
	t.Cleanup(func() { RootCmd = saved })
}

func TestLoadSettingsFlagWins(t *testing.T) {
	resetRootCmd(t)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("runtime_dir: /from/config\nstartup_delay: 2s\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	RootCmd.Config = cfgPath
	RootCmd.RuntimeDir = "/from/flag"

	s, err := loadSettings()
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if s.Layout.Dir != "/from/flag" {
		t.Fatalf("Dir = %q, want /from/flag", s.Layout.Dir)
	}
	if s.StartupDelay.String() != "2s" {
		t.Fatalf("StartupDelay = %v, want 2s", s.StartupDelay)
	}
}

func TestLoadSettingsConfigDir(t *testing.T) {
	resetRootCmd(t)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("runtime_dir: /from/config\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	RootCmd.Config = cfgPath
	RootCmd.RuntimeDir = ""

	s, err := loadSettings()
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if s.Layout.Dir != "/from/config" {
		t.Fatalf("Dir = %q, want /from/config", s.Layout.Dir)
	}
	if s.StartupDelay != config.DefaultStartupDelay {
		t.Fatalf("StartupDelay = %v, want %v", s.StartupDelay, config.DefaultStartupDelay)
	}
}

func TestDaemonArgs(t *testing.T) {
	resetRootCmd(t)
	RootCmd.Debug = true

	s := &Settings{Layout: paths.New("/run/pd"), ConfigPath: "/etc/pd.yaml"}
	args := s.daemonArgs()

	want := []string{"--daemon", "--runtime-dir", "/run/pd", "--config", "/etc/pd.yaml", "--debug"}
	if !slices.Equal(args, want) {
		t.Fatalf("daemonArgs = %q, want %q", args, want)
	}

	l := s.launcher()
	if l.Layout.Dir != "/run/pd" {
		t.Fatalf("launcher Dir = %q, want /run/pd", l.Layout.Dir)
	}
}
