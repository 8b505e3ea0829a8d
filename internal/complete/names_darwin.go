//go:build darwin

package complete

import (
	"os/exec"
	"strings"
)

// processNames lists every running command name via ps.
func processNames() []string {
	out, err := exec.Command("ps", "-axo", "comm=").Output()
	if err != nil {
		return nil
	}

	var names []string
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// Remove leading dash (login shells)
		line = strings.TrimPrefix(line, "-")
		// Get just the command name without path
		if idx := strings.LastIndex(line, "/"); idx != -1 {
			line = line[idx+1:]
		}
		if line != "" && line != "reap" {
			names = append(names, line)
		}
	}

	return names
}
