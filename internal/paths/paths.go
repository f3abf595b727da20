package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	daemonName = "persistd"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for regular files.
	DefaultFileMode os.FileMode = 0644

	// Permission mode for the FIFOs. Any local user may exchange requests with
	// the daemon, as with the original /tmp pipes; the umask still applies.
	FifoMode os.FileMode = 0666
)

// Default directory for runtime files.
//
//	Linux:   $XDG_RUNTIME_DIR/persistd or /run/user/<uid>/persistd
//	macOS:   ~/Library/Caches/persistd/run
func Runtime() string {
	if xdg.RuntimeDir != "" {
		return filepath.Join(xdg.RuntimeDir, daemonName)
	}
	return filepath.Join(xdg.CacheHome, daemonName, "run")
}

// Relative path of the config file below the XDG config directories.
func ConfigFile() string {
	return filepath.Join(daemonName, "config.yaml")
}

// Set of runtime artifacts rooted at one directory.
type Layout struct {
	Dir string // Absolute runtime directory.
}

// Returns the layout rooted at dir, or at [Runtime] when dir is empty.
//
// Relative directories are made absolute, since the daemon changes its working
// directory to "/" when it detaches.
func New(dir string) Layout {
	if dir == "" {
		dir = Runtime()
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return Layout{Dir: dir}
}

// Creates the runtime directory if it does not exist.
func (l Layout) Ensure() error {
	return os.MkdirAll(l.Dir, DefaultDirMode)
}

// Path to the liveness marker holding the daemon PID.
func (l Layout) PIDFile() string {
	return filepath.Join(l.Dir, daemonName+".pid")
}

// Path to the FIFO carrying requests from client to daemon.
func (l Layout) RequestFifo() string {
	return filepath.Join(l.Dir, daemonName+".req")
}

// Path to the FIFO carrying responses from daemon to client.
func (l Layout) ResponseFifo() string {
	return filepath.Join(l.Dir, daemonName+".resp")
}

// Path to the log file written by a detached daemon.
func (l Layout) LogFile() string {
	return filepath.Join(l.Dir, daemonName+".log")
}
