package daemonize

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Sets the name the kernel reports for the calling OS thread. Names longer
// than 15 bytes are truncated by the kernel.
//
// ps and top show the main thread's name as the process name, so the caller
// must hold the main thread under [runtime.LockOSThread]. Called from any
// other thread the rename is best-effort and only affects that thread.
func SetProcessName(name string) error {
	p, err := unix.BytePtrFromString(name)
	if err != nil {
		return err
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	return unix.Prctl(unix.PR_SET_NAME, uintptr(unsafe.Pointer(p)), 0, 0, 0)
}
