package model

import "time"

// Record is a point-in-time snapshot of a single process. It is built once
// during a scan and never mutated; by purge time the live process table may
// already have drifted away from it.
type Record struct {
	PID         int           `json:"pid"`
	ParentPID   int           `json:"parent_pid"` // 0 when the parent could not be resolved
	MemoryBytes uint64        `json:"memory_bytes"`
	StartedAt   time.Time     `json:"started_at,omitzero"`
	CPUTime     time.Duration `json:"cpu_time_ns"`
	Responding  bool          `json:"responding"`
	Cmdline     string        `json:"cmdline,omitempty"`
}

// Uptime reports how long the process has been running as of now.
// Zero when the start time is unknown.
func (r Record) Uptime(now time.Time) time.Duration {
	if r.StartedAt.IsZero() {
		return 0
	}
	return now.Sub(r.StartedAt)
}

// Verdict carries the two independent classification flags. A process can
// be orphaned and stuck at the same time.
type Verdict struct {
	Orphaned bool `json:"orphaned"`
	Stuck    bool `json:"stuck"`
}

// Reportable reports whether the process is a purge candidate.
func (v Verdict) Reportable() bool {
	return v.Orphaned || v.Stuck
}

// Candidate is a reportable process together with its resolved descendant
// set. Descendants lists parents before their own children, depth-first;
// walking it in reverse reaches every leaf before its ancestors.
type Candidate struct {
	Record
	Verdict
	Descendants []int `json:"descendants,omitempty"`
}

// ChildCount returns the number of descendant processes.
func (c Candidate) ChildCount() int {
	return len(c.Descendants)
}

// Report is the outcome of one scan.
type Report struct {
	Name       string      `json:"name"`
	Matched    int         `json:"matched"`
	Candidates []Candidate `json:"candidates,omitempty"`
}

// Clean reports whether no process of the target name was running at all.
func (r Report) Clean() bool {
	return r.Matched == 0
}

// TotalMemoryBytes sums resident memory across all candidates.
func (r Report) TotalMemoryBytes() uint64 {
	var total uint64
	for _, c := range r.Candidates {
		total += c.MemoryBytes
	}
	return total
}

// TotalChildren sums descendant counts across all candidates.
func (r Report) TotalChildren() int {
	total := 0
	for _, c := range r.Candidates {
		total += c.ChildCount()
	}
	return total
}
