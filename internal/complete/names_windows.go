//go:build windows

package complete

import (
	"os/exec"
	"strings"
)

// processNames lists every running image name via tasklist, offering names
// without the .exe suffix since the scanner accepts either form.
func processNames() []string {
	out, err := exec.Command("tasklist", "/fo", "csv", "/nh").Output()
	if err != nil {
		return nil
	}

	var names []string
	for _, line := range strings.Split(string(out), "\n") {
		name, _, found := strings.Cut(strings.TrimSpace(line), ",")
		if !found {
			continue
		}
		name = strings.Trim(name, "\"")
		name = strings.TrimSuffix(name, ".exe")
		if name != "" && name != "reap" {
			names = append(names, name)
		}
	}

	return names
}
