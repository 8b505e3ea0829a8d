//go:build !linux && !darwin && !windows

package purge

import (
	"strconv"

	"github.com/SanCognition/reap/internal/proc"
)

func killTree(pid int) error {
	_, err := proc.Run("kill", "-KILL", strconv.Itoa(pid))
	return err
}
