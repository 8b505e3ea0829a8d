package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm prints the question and reads a single line of input. Only a
// case-insensitive y or yes proceeds; anything else declines, empty input
// and read errors included.
func Confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
