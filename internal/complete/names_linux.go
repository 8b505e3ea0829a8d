//go:build linux

package complete

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// processNames walks /proc and reads each comm file.
func processNames() []string {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil
	}

	var names []string
	selfPid := os.Getpid()

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pid, err := strconv.Atoi(entry.Name())
		if err != nil || pid <= 0 || pid == selfPid {
			continue
		}

		data, err := os.ReadFile(filepath.Join("/proc", entry.Name(), "comm"))
		if err != nil {
			continue
		}
		name := strings.TrimSpace(string(data))
		if name != "" && name != "reap" {
			names = append(names, name)
		}
	}

	return names
}
