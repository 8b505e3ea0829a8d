package output

import (
	"fmt"
	"io"

	"github.com/SanCognition/reap/internal/purge"
)

// RenderAttempt prints one kill-attempt line as the terminator works through
// the candidate set.
func RenderAttempt(w io.Writer, a purge.Attempt, colorEnabled bool) {
	label := "PID"
	if a.Child {
		label = "Child PID"
	}

	var outcome string
	switch a.Outcome {
	case purge.Failed:
		reason := "unknown error"
		if a.Err != nil {
			reason = a.Err.Error()
		}
		outcome = paint(colorRed, fmt.Sprintf("failed (%s)", reason), colorEnabled)
	case purge.AlreadyExited:
		outcome = paint(colorDim, a.Outcome.String(), colorEnabled)
	default:
		outcome = paint(colorGreen, a.Outcome.String(), colorEnabled)
	}

	fmt.Fprintf(w, "%s %d... %s\n", label, a.PID, outcome)
}

// RenderPurgeSummary prints the aggregate counts after a purge.
func RenderPurgeSummary(w io.Writer, s purge.Summary, colorEnabled bool) {
	killed := paint(colorGreen, fmt.Sprintf("Killed: %d", s.Killed), colorEnabled)
	failed := fmt.Sprintf("Failed: %d", s.Failed)
	if s.Failed > 0 {
		failed = paint(colorRed, failed, colorEnabled)
	}
	fmt.Fprintf(w, "%s | %s\n", killed, failed)
}
