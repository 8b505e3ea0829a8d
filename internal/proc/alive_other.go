//go:build !linux && !darwin && !windows

package proc

import "strconv"

// pidAlive on platforms without a direct liveness probe: ask ps.
func pidAlive(pid int) bool {
	_, err := Run("ps", "-p", strconv.Itoa(pid), "-o", "pid=")
	return err == nil
}
