//go:build windows

package purge

import (
	"errors"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"golang.org/x/sys/windows"

	"github.com/SanCognition/reap/internal/proc"
)

// killTree asks taskkill to force-terminate the pid together with its
// subtree. When taskkill cannot, TerminateProcess on the single pid is the
// fallback; the recorded descendant list covers the rest of the tree.
func killTree(pid int) error {
	_, err := proc.Run("taskkill", "/T", "/F", "/PID", strconv.Itoa(pid))
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && strings.Contains(strings.ToLower(string(exitErr.Stderr)), "not found") {
		return os.ErrProcessDone
	}
	return terminateProcess(pid)
}

func terminateProcess(pid int) error {
	handle, err := windows.OpenProcess(windows.PROCESS_TERMINATE, false, uint32(pid))
	if err != nil {
		if err == windows.ERROR_INVALID_PARAMETER {
			return os.ErrProcessDone
		}
		return err
	}
	defer windows.CloseHandle(handle)
	return windows.TerminateProcess(handle, 1)
}
