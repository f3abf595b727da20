package store

import (
	"fmt"
	"time"

	"github.com/containerd/errdefs"
)

// Entries every daemon starts with.
const (
	SeedVersion = "1.0"
	SeedStatus  = "running"
)

// Key/value entries plus daemon-lifetime counters.
type State struct {
	entries   map[string]string // Stored key/value pairs.
	queries   int               // STATUS queries answered so far.
	startedAt time.Time         // When the daemon began serving.
}

// Creates a state seeded with the "version" and "status" entries.
func New(startedAt time.Time) *State {
	return &State{
		entries: map[string]string{
			"version": SeedVersion,
			"status":  SeedStatus,
		},
		startedAt: startedAt,
	}
}

// Returns the value stored under key.
//
// A missing key yields an error matching [errdefs.ErrNotFound]; the lookup
// never creates an entry.
func (s *State) Get(key string) (string, error) {
	v, ok := s.entries[key]
	if !ok {
		return "", fmt.Errorf("key %q: %w", key, errdefs.ErrNotFound)
	}
	return v, nil
}

// Inserts or overwrites the value under key.
func (s *State) Set(key, value string) {
	s.entries[key] = value
}

// Returns the number of entries.
func (s *State) Len() int {
	return len(s.entries)
}

// Counts one more STATUS query and returns the new total.
func (s *State) CountQuery() int {
	s.queries++
	return s.queries
}

// Returns the number of STATUS queries answered so far.
func (s *State) Queries() int {
	return s.queries
}

// Returns the time elapsed between serving start and now, truncated to whole
// seconds. A clock that moved backwards reports zero.
func (s *State) Uptime(now time.Time) time.Duration {
	d := now.Sub(s.startedAt)
	if d < 0 {
		return 0
	}
	return d.Truncate(time.Second)
}

// Returns when the daemon began serving.
func (s *State) StartedAt() time.Time {
	return s.startedAt
}
