//go:build linux || darwin

package purge

import (
	"errors"
	"os"
	"syscall"
)

// killTree hard-kills the pid's whole process group when it leads one, then
// the pid itself. Interpreter children usually share the group, so the group
// signal takes the subtree down in one shot; the recorded descendant list
// mops up anything that moved out.
func killTree(pid int) error {
	group := syscall.Kill(-pid, syscall.SIGKILL)
	direct := syscall.Kill(pid, syscall.SIGKILL)
	if direct == nil || group == nil {
		return nil
	}
	if errors.Is(direct, syscall.ESRCH) {
		return os.ErrProcessDone
	}
	return direct
}
