//go:build !linux

package daemonize

// Does nothing; only Linux supports renaming a running process.
func SetProcessName(name string) error {
	return nil
}
