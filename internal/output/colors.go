package output

import (
	"os"

	"github.com/mattn/go-isatty"
)

// ANSI escapes shared by the renderers.
var (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

// DetectColor decides whether stdout gets ANSI color: never when explicitly
// disabled or NO_COLOR is set, otherwise only on a real terminal.
func DetectColor(noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func paint(color, s string, colorEnabled bool) string {
	if !colorEnabled {
		return s
	}
	return color + s + colorReset
}
