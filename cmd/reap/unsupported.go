//go:build !linux && !darwin && !windows

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(
		os.Stderr,
		"reap is only supported on Linux, macOS, and Windows.\n\nIf you are seeing this message, you are attempting to build or run reap on an unsupported platform.\n\nPlease use Linux, macOS, or Windows to build and run reap.",
	)
	os.Exit(1)
}
