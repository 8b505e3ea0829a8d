package output

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatMemoryMB renders a byte count as megabytes with one decimal.
func FormatMemoryMB(bytes uint64) string {
	return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
}

// FormatUptime renders elapsed running time using its two most significant
// units: "2d 4h", "3h 12m", "5m 9s".
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return strconv.Itoa(days) + "d " + strconv.Itoa(hours) + "h"
	case hours > 0:
		return strconv.Itoa(hours) + "h " + strconv.Itoa(mins) + "m"
	default:
		return strconv.Itoa(mins) + "m " + strconv.Itoa(secs) + "s"
	}
}

// TruncateCmdline caps a command line at 80 characters: anything longer is
// cut to its first 77 characters plus "...".
func TruncateCmdline(s string) string {
	runes := []rune(s)
	if len(runes) <= 80 {
		return s
	}
	return string(runes[:77]) + "..."
}

// Sanitize drops control characters before a string reaches the terminal;
// command lines come straight from other processes. Tabs become spaces.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, s)
}
