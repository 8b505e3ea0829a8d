package output

import (
	"fmt"
	"io"
	"time"

	"github.com/SanCognition/reap/pkg/model"
)

// RenderReport prints the scan outcome: a diagnostic block per candidate and
// a totals line, or the all-clear when nothing needs attention.
func RenderReport(w io.Writer, r model.Report, now time.Time, colorEnabled bool) {
	if r.Clean() {
		fmt.Fprintln(w, paint(colorGreen, fmt.Sprintf("No %s processes found. System is clean.", r.Name), colorEnabled))
		return
	}
	if len(r.Candidates) == 0 {
		fmt.Fprintln(w, paint(colorGreen, fmt.Sprintf("All %d %s processes look healthy.", r.Matched, r.Name), colorEnabled))
		return
	}

	header := fmt.Sprintf("Found %d stray %s processes (%d running):", len(r.Candidates), r.Name, r.Matched)
	fmt.Fprintln(w, paint(colorBold, header, colorEnabled))
	fmt.Fprintln(w)

	for _, c := range r.Candidates {
		renderCandidate(w, c, now, colorEnabled)
	}

	summary := "Total: " + FormatMemoryMB(r.TotalMemoryBytes())
	if n := r.TotalChildren(); n > 0 {
		summary += fmt.Sprintf(" | %d child processes", n)
	}
	fmt.Fprintln(w, summary)
}

func renderCandidate(w io.Writer, c model.Candidate, now time.Time, colorEnabled bool) {
	fmt.Fprintf(w, "%s %s\n",
		paint(colorCyan, fmt.Sprintf("PID %d", c.PID), colorEnabled),
		paint(colorYellow, verdictTag(c.Verdict), colorEnabled))

	uptime := "unknown"
	if !c.StartedAt.IsZero() {
		uptime = FormatUptime(now.Sub(c.StartedAt))
	}
	responding := yesNo(c.Responding)
	if !c.Responding {
		responding = paint(colorRed, responding, colorEnabled)
	}

	fmt.Fprintf(w, "  Memory:     %s\n", FormatMemoryMB(c.MemoryBytes))
	fmt.Fprintf(w, "  Uptime:     %s\n", uptime)
	fmt.Fprintf(w, "  Responding: %s\n", responding)
	if n := c.ChildCount(); n > 0 {
		fmt.Fprintf(w, "  Children:   %d\n", n)
	}
	if cmd := Sanitize(c.Cmdline); cmd != "" {
		fmt.Fprintf(w, "  Command:    %s\n", TruncateCmdline(cmd))
	}
	fmt.Fprintln(w)
}

func verdictTag(v model.Verdict) string {
	switch {
	case v.Orphaned && v.Stuck:
		return "[orphaned, stuck]"
	case v.Orphaned:
		return "[orphaned]"
	default:
		return "[stuck]"
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
