//go:build linux || darwin

package proc

import (
	"errors"
	"syscall"
)

// pidAlive probes a pid with the null signal. EPERM means the process
// exists but belongs to someone else, which still counts as alive.
func pidAlive(pid int) bool {
	err := syscall.Kill(pid, 0)
	if err == nil {
		return true
	}
	if errors.Is(err, syscall.EPERM) {
		return true
	}
	return false
}
