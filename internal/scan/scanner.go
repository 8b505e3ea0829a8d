package scan

import (
	"os"
	"time"

	"github.com/SanCognition/reap/internal/proc"
	"github.com/SanCognition/reap/pkg/model"
)

// Scanner sweeps the process table for stray copies of a named executable
// and classifies every match. It holds no state across scans; each Scan is
// an independent snapshot.
type Scanner struct {
	table      proc.Table
	thresholds Thresholds
	now        func() time.Time
	self       int
}

func NewScanner(table proc.Table, th Thresholds) *Scanner {
	return &Scanner{
		table:      table,
		thresholds: th,
		now:        time.Now,
		self:       os.Getpid(),
	}
}

// Scan lists every process named name, drops the scanner's own pid and any
// pid that vanished since enumeration, classifies the rest, and returns the
// purge candidates in enumeration order. A process the accessor cannot fully
// resolve is classified from whatever sentinels came back; it is skipped, not
// fatal. Descendants and the heavier snapshot fields are resolved only for
// candidates.
func (s *Scanner) Scan(name string) model.Report {
	report := model.Report{Name: name}
	now := s.now()

	for _, pid := range s.table.PidsByName(name) {
		if pid == s.self || pid <= 0 {
			continue
		}
		if !s.table.Alive(pid) {
			continue
		}

		rec := model.Record{
			PID:        pid,
			ParentPID:  s.table.ParentPid(pid),
			StartedAt:  s.table.StartTime(pid),
			CPUTime:    s.table.CPUTime(pid),
			Responding: s.table.Responding(pid),
		}
		report.Matched++

		verdict := Classify(s.table, rec, s.thresholds, now)
		if !verdict.Reportable() {
			continue
		}

		rec.MemoryBytes = s.table.WorkingSetBytes(pid)
		rec.Cmdline = s.table.CommandLine(pid)
		report.Candidates = append(report.Candidates, model.Candidate{
			Record:      rec,
			Verdict:     verdict,
			Descendants: proc.Descendants(s.table, pid),
		})
	}
	return report
}
