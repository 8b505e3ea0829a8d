package scan

import (
	"time"

	"github.com/SanCognition/reap/internal/proc"
	"github.com/SanCognition/reap/pkg/model"
)

// Stuck-detection cutoffs. Heuristics, not laws: a process that has run for
// more than StuckAfter while consuming less than CPUFloor of CPU is presumed
// wedged. Both are overridable from the command line.
const (
	DefaultStuckAfter = 5 * time.Minute
	DefaultCPUFloor   = time.Second
)

// Thresholds tunes the idle half of the stuck check.
type Thresholds struct {
	StuckAfter time.Duration
	CPUFloor   time.Duration
}

func DefaultThresholds() Thresholds {
	return Thresholds{StuckAfter: DefaultStuckAfter, CPUFloor: DefaultCPUFloor}
}

// Classify runs the orphan and stuck checks against one snapshot. The two
// flags are independent.
//
// Orphaned: the parent pid never resolved, or the parent is no longer alive.
//
// Stuck: the process reports itself unresponsive, or it has been running
// longer than StuckAfter with total CPU time still under CPUFloor. The idle
// check needs a known start time; a process whose uptime cannot be computed
// is never called idle.
func Classify(table proc.Table, rec model.Record, th Thresholds, now time.Time) model.Verdict {
	verdict := model.Verdict{Stuck: !rec.Responding}
	if rec.ParentPID <= 0 || !table.Alive(rec.ParentPID) {
		verdict.Orphaned = true
	}
	if !verdict.Stuck && rec.Uptime(now) > th.StuckAfter && rec.CPUTime < th.CPUFloor {
		verdict.Stuck = true
	}
	return verdict
}
