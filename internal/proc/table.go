package proc

import "time"

// Table is the process table accessor. Implementations never return errors:
// every lookup fails soft to a sentinel (0, "", zero time, nil, Responding
// true, Alive false) so that one vanished or unreadable process can never
// abort a scan. Callers treat the live process table as eventually
// consistent: snapshot, then tolerate drift.
type Table interface {
	// PidsByName lists the pids of all processes whose executable name
	// matches name, in process-table enumeration order.
	PidsByName(name string) []int

	// ParentPid resolves the parent pid, 0 when it cannot be determined.
	ParentPid(pid int) int

	// CommandLine returns the full command line, best effort, "" when
	// inaccessible.
	CommandLine(pid int) string

	// Alive reports whether the pid refers to a live process. A pid we
	// are not permitted to inspect still counts as alive.
	Alive(pid int) bool

	// Responding reports UI responsiveness. Processes without a UI
	// surface, and any pid the platform cannot answer for, count as
	// responding.
	Responding(pid int) bool

	// StartTime returns when the process started, zero when unknown.
	StartTime(pid int) time.Time

	// CPUTime returns cumulative CPU time consumed since start, 0 when
	// unknown.
	CPUTime(pid int) time.Duration

	// WorkingSetBytes returns resident memory in bytes, 0 when unknown.
	WorkingSetBytes(pid int) uint64

	// ChildPids lists direct children only, one level, no recursion.
	ChildPids(pid int) []int
}
