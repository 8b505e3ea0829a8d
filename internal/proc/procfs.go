package proc

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// USER_HZ. Fixed at 100 on every mainstream kernel.
const clockTicksPerSecond = 100

// lstart layout emitted by ps(1), e.g. "Mon Dec 30 10:00:00 2024".
const psLstartLayout = "Mon Jan 2 15:04:05 2006"

// ProcfsTable reads the per-process pseudo-filesystem and falls back to the
// ps/pgrep helper utilities on hosts that do not mount one. All reads go
// through the FileReader seam, all helper invocations through the Executor
// seam.
type ProcfsTable struct {
	pagesize uint64
}

func NewProcfsTable() *ProcfsTable {
	return &ProcfsTable{pagesize: uint64(os.Getpagesize())}
}

func (t *ProcfsTable) PidsByName(name string) []int {
	if out, err := Run("pgrep", "-x", name); err == nil {
		return parsePids(out)
	}
	// pgrep exits nonzero both when nothing matched and when it is not
	// installed; the ps listing answers either way.
	out, err := Run("ps", "-axo", "pid=,comm=")
	if err != nil {
		return nil
	}
	var pids []int
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		pid, err := strconv.Atoi(fields[0])
		if err != nil || pid <= 0 {
			continue
		}
		comm := strings.TrimPrefix(fields[1], "-")
		if filepath.Base(comm) == name {
			pids = append(pids, pid)
		}
	}
	return pids
}

func (t *ProcfsTable) ParentPid(pid int) int {
	if st, ok := t.readStat(pid); ok {
		return st.ppid
	}
	out, err := Run("ps", "-p", strconv.Itoa(pid), "-o", "ppid=")
	if err != nil {
		return 0
	}
	ppid, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil || ppid < 0 {
		return 0
	}
	return ppid
}

func (t *ProcfsTable) CommandLine(pid int) string {
	raw, err := ReadFile(fmt.Sprintf("/proc/%d/cmdline", pid))
	if err == nil && len(raw) > 0 {
		args := strings.Split(strings.TrimRight(string(raw), "\x00"), "\x00")
		return strings.TrimSpace(strings.Join(args, " "))
	}
	out, err := Run("ps", "-p", strconv.Itoa(pid), "-o", "args=")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func (t *ProcfsTable) Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	if _, err := ReadFile(fmt.Sprintf("/proc/%d/stat", pid)); err == nil {
		return true
	}
	// No stat entry proves nothing on hosts without procfs; ask the
	// kernel directly.
	return pidAlive(pid)
}

func (t *ProcfsTable) Responding(pid int) bool {
	state := ""
	if st, ok := t.readStat(pid); ok {
		state = st.state
	} else if out, err := Run("ps", "-p", strconv.Itoa(pid), "-o", "state="); err == nil {
		state = strings.TrimSpace(string(out))
	}
	if state == "" {
		return true
	}
	// Zombies and stopped processes cannot answer anything.
	switch state[0] {
	case 'Z', 'T', 't':
		return false
	}
	return true
}

func (t *ProcfsTable) StartTime(pid int) time.Time {
	if st, ok := t.readStat(pid); ok {
		if boot, ok := t.bootTime(); ok {
			return boot.Add(time.Duration(st.startTicks) * time.Second / clockTicksPerSecond)
		}
	}
	out, err := Run("ps", "-p", strconv.Itoa(pid), "-o", "lstart=")
	if err != nil {
		return time.Time{}
	}
	started, err := time.ParseInLocation(psLstartLayout, strings.Join(strings.Fields(string(out)), " "), time.Local)
	if err != nil {
		return time.Time{}
	}
	return started
}

func (t *ProcfsTable) CPUTime(pid int) time.Duration {
	if st, ok := t.readStat(pid); ok {
		return time.Duration(st.utimeTicks+st.stimeTicks) * time.Second / clockTicksPerSecond
	}
	out, err := Run("ps", "-p", strconv.Itoa(pid), "-o", "time=")
	if err != nil {
		return 0
	}
	return parsePsTime(strings.TrimSpace(string(out)))
}

func (t *ProcfsTable) WorkingSetBytes(pid int) uint64 {
	if st, ok := t.readStat(pid); ok {
		return uint64(st.rssPages) * t.pagesize
	}
	out, err := Run("ps", "-p", strconv.Itoa(pid), "-o", "rss=")
	if err != nil {
		return 0
	}
	kb, err := strconv.ParseUint(strings.TrimSpace(string(out)), 10, 64)
	if err != nil {
		return 0
	}
	return kb * 1024
}

func (t *ProcfsTable) ChildPids(pid int) []int {
	raw, err := ReadFile(fmt.Sprintf("/proc/%d/task/%d/children", pid, pid))
	if err == nil {
		return parsePids(raw)
	}
	// pgrep exits 1 for a childless pid; an empty result is right either way.
	out, err := Run("pgrep", "-P", strconv.Itoa(pid))
	if err != nil {
		return nil
	}
	return parsePids(out)
}

// procStat is the parsed slice of /proc/<pid>/stat the table cares about.
type procStat struct {
	comm       string
	state      string
	ppid       int
	utimeTicks uint64
	stimeTicks uint64
	startTicks uint64
	rssPages   int64
}

func (t *ProcfsTable) readStat(pid int) (procStat, bool) {
	raw, err := ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return procStat{}, false
	}
	return parseProcStat(string(raw))
}

// parseProcStat splits a stat line around the parenthesized command name,
// which may itself contain spaces and parentheses.
func parseProcStat(raw string) (procStat, bool) {
	open := strings.Index(raw, "(")
	close := strings.LastIndex(raw, ")")
	if open < 0 || close < 0 || close < open || close+2 > len(raw) {
		return procStat{}, false
	}

	st := procStat{comm: raw[open+1 : close]}

	// Fields after the close paren: state ppid pgrp session tty_nr tpgid
	// flags minflt cminflt majflt cmajflt utime stime cutime cstime
	// priority nice num_threads itrealvalue starttime vsize rss ...
	fields := strings.Fields(raw[close+2:])
	if len(fields) < 22 {
		return procStat{}, false
	}

	st.state = fields[0]
	st.ppid, _ = strconv.Atoi(fields[1])
	st.utimeTicks, _ = strconv.ParseUint(fields[11], 10, 64)
	st.stimeTicks, _ = strconv.ParseUint(fields[12], 10, 64)
	st.startTicks, _ = strconv.ParseUint(fields[19], 10, 64)
	st.rssPages, _ = strconv.ParseInt(fields[21], 10, 64)
	return st, true
}

// bootTime reads the btime line from /proc/stat.
func (t *ProcfsTable) bootTime() (time.Time, bool) {
	raw, err := ReadFile("/proc/stat")
	if err != nil {
		return time.Time{}, false
	}
	for _, line := range strings.Split(string(raw), "\n") {
		if !strings.HasPrefix(line, "btime ") {
			continue
		}
		secs, err := strconv.ParseInt(strings.TrimSpace(strings.TrimPrefix(line, "btime ")), 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(secs, 0), true
	}
	return time.Time{}, false
}

// parsePsTime parses the cumulative CPU time column of ps(1):
// [[dd-]hh:]mm:ss with optional fractional seconds.
func parsePsTime(s string) time.Duration {
	if s == "" {
		return 0
	}
	var days uint64
	if before, after, found := strings.Cut(s, "-"); found {
		d, err := strconv.ParseUint(before, 10, 64)
		if err != nil {
			return 0
		}
		days, s = d, after
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}

	total := float64(days) * 24 * 3600
	scale := 1.0
	for i := len(parts) - 1; i >= 0; i-- {
		v, err := strconv.ParseFloat(parts[i], 64)
		if err != nil {
			return 0
		}
		total += v * scale
		scale *= 60
	}
	return time.Duration(total * float64(time.Second))
}

// parsePids splits whitespace-separated pid tokens, dropping anything that
// does not parse as a positive integer.
func parsePids(raw []byte) []int {
	var pids []int
	for _, tok := range strings.Fields(string(raw)) {
		pid, err := strconv.Atoi(tok)
		if err != nil || pid <= 0 {
			continue
		}
		pids = append(pids, pid)
	}
	return pids
}
