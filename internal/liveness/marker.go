package liveness

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cruciblehq/persistd/internal/paths"
)

// File recording the PID of the active daemon.
type Marker struct {
	Path string
}

// Writes pid to the marker, replacing any previous content.
//
// Only the daemon that is about to serve writes the marker, so no locking or
// read-modify-write check is involved.
func (m Marker) Write(pid int) error {
	if err := os.MkdirAll(filepath.Dir(m.Path), paths.DefaultDirMode); err != nil {
		return fmt.Errorf("%w: %w", ErrMarker, err)
	}
	if err := os.WriteFile(m.Path, []byte(strconv.Itoa(pid)), paths.DefaultFileMode); err != nil {
		return fmt.Errorf("%w: %w", ErrMarker, err)
	}
	return nil
}

// Returns the PID stored in the marker.
//
// Surrounding whitespace is ignored. Content that is not a positive integer
// yields [ErrInvalidPID]; a missing file yields an error matching
// [fs.ErrNotExist].
func (m Marker) Read() (int, error) {
	data, err := os.ReadFile(m.Path)
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPID, data)
	}
	return pid, nil
}

// Deletes the marker. A missing marker is not an error.
func (m Marker) Remove() error {
	if err := os.Remove(m.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrMarker, err)
	}
	return nil
}

// Returns true if the marker exists on disk, whether or not it is stale.
func (m Marker) Exists() bool {
	_, err := os.Stat(m.Path)
	return err == nil
}
