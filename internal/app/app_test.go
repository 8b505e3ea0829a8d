package app

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/SanCognition/reap/internal/proc"
	"github.com/SanCognition/reap/internal/scan"
	"github.com/SanCognition/reap/pkg/model"
)

// Fixture pids sit above every platform's pid ceiling so they can never
// collide with the test process or anything else alive on the host.
const (
	strayPid   = 9000001
	healthyPid = 9000002
	childPid   = 9000011
	grandPid   = 9000012
	livePPid   = 9000100
	deadPPid   = 9000555
)

type fakeProc struct {
	ppid       int
	started    time.Time
	cpu        time.Duration
	responding bool
	mem        uint64
	cmdline    string
	children   []int
}

// fakeTable serves fixture processes. Each enumerated pid reads as alive
// exactly once, for the scan; by purge time it is already gone, and every
// other pid is dead from the start, so the terminator never signals
// anything real. Parents listed in parents stay alive for the classifier.
type fakeTable struct {
	name    string
	pids    []int
	procs   map[int]fakeProc
	parents map[int]bool
	seen    map[int]int
}

func newFakeTable(name string, pids []int, procs map[int]fakeProc, parents ...int) *fakeTable {
	t := &fakeTable{
		name:    name,
		pids:    pids,
		procs:   procs,
		parents: make(map[int]bool),
		seen:    make(map[int]int),
	}
	for _, pid := range parents {
		t.parents[pid] = true
	}
	return t
}

func (t *fakeTable) PidsByName(name string) []int {
	if name != t.name {
		return nil
	}
	return t.pids
}

func (t *fakeTable) Alive(pid int) bool {
	if t.parents[pid] {
		return true
	}
	for _, p := range t.pids {
		if p == pid {
			t.seen[pid]++
			return t.seen[pid] == 1
		}
	}
	return false
}

func (t *fakeTable) ParentPid(pid int) int          { return t.procs[pid].ppid }
func (t *fakeTable) CommandLine(pid int) string     { return t.procs[pid].cmdline }
func (t *fakeTable) Responding(pid int) bool        { return t.procs[pid].responding }
func (t *fakeTable) StartTime(pid int) time.Time    { return t.procs[pid].started }
func (t *fakeTable) CPUTime(pid int) time.Duration  { return t.procs[pid].cpu }
func (t *fakeTable) WorkingSetBytes(pid int) uint64 { return t.procs[pid].mem }
func (t *fakeTable) ChildPids(pid int) []int        { return t.procs[pid].children }

func orphanFixture() *fakeTable {
	return newFakeTable("node", []int{strayPid}, map[int]fakeProc{
		strayPid: {
			ppid:       deadPPid,
			started:    time.Now().Add(-time.Hour),
			cpu:        30 * time.Second,
			responding: true,
			mem:        150 << 20,
			cmdline:    "node server.js",
		},
	})
}

func orphanTreeFixture() *fakeTable {
	t := orphanFixture()
	p := t.procs[strayPid]
	p.children = []int{childPid}
	t.procs[strayPid] = p
	// Only wired in for ChildPids; the children themselves never read as
	// alive, so no signal is ever sent.
	t.procs[childPid] = fakeProc{ppid: strayPid, children: []int{grandPid}}
	return t
}

func healthyFixture() *fakeTable {
	return newFakeTable("node", []int{healthyPid}, map[int]fakeProc{
		healthyPid: {
			ppid:       livePPid,
			started:    time.Now().Add(-time.Minute),
			cpu:        10 * time.Second,
			responding: true,
		},
	}, livePPid)
}

// runReap executes the root command against a fixture table and returns
// everything it printed.
func runReap(t *testing.T, table proc.Table, stdin string, args ...string) string {
	t.Helper()

	restore := tableFactory
	tableFactory = func() proc.Table { return table }
	defer func() { tableFactory = restore }()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	// Reset flags between tests
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.Flags().Set("force", "false")
		rootCmd.Flags().Set("dry-run", "false")
		rootCmd.Flags().Set("json", "false")
		rootCmd.Flags().Set("no-color", "false")
		rootCmd.Flags().Set("watch", "false")
		rootCmd.Flags().Set("stuck-after", scan.DefaultStuckAfter.String())
		rootCmd.Flags().Set("cpu-floor", scan.DefaultCPUFloor.String())
		rootCmd.Flags().Set("help", "false")
	}()

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	return buf.String()
}

func TestHelp(t *testing.T) {
	out := runReap(t, healthyFixture(), "", "--help")
	if !strings.Contains(out, "Usage:") {
		t.Errorf("help output missing 'Usage:'. Got: %s", out)
	}
	if !strings.Contains(out, "--force") {
		t.Error("help output missing the --force flag")
	}
}

func TestCleanSystem(t *testing.T) {
	table := newFakeTable("node", nil, nil)
	out := runReap(t, table, "", "--no-color")
	if !strings.Contains(out, "No node processes found. System is clean.") {
		t.Errorf("clean output = %q", out)
	}
}

func TestTargetArgument(t *testing.T) {
	table := newFakeTable("python", nil, nil)
	out := runReap(t, table, "", "python", "--no-color")
	if !strings.Contains(out, "No python processes found. System is clean.") {
		t.Errorf("output = %q", out)
	}
}

func TestAllHealthy(t *testing.T) {
	out := runReap(t, healthyFixture(), "", "--no-color")
	if !strings.Contains(out, "All 1 node processes look healthy.") {
		t.Errorf("healthy output = %q", out)
	}
	if strings.Contains(out, "Kill these processes?") {
		t.Error("healthy run must not prompt")
	}
}

func TestReportAndDecline(t *testing.T) {
	out := runReap(t, orphanFixture(), "n\n", "--no-color")

	wantLines := []string{
		"Found 1 stray node processes (1 running):",
		"PID 9000001 [orphaned]",
		"Memory:     150.0 MB",
		"Responding: Yes",
		"Command:    node server.js",
		"Kill these processes? [y/N]",
		"Cancelled. No processes were touched.",
	}
	for _, want := range wantLines {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\nGot:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Killed:") {
		t.Error("declined run must not purge")
	}
}

func TestConfirmedPurge(t *testing.T) {
	table := orphanFixture()
	out := runReap(t, table, "y\n", "--no-color")

	if !strings.Contains(out, "PID 9000001... already exited") {
		t.Errorf("output missing the purge line. Got:\n%s", out)
	}
	if !strings.Contains(out, "Killed: 1 | Failed: 0") {
		t.Errorf("output missing the purge summary. Got:\n%s", out)
	}
}

func TestForcePurgeSkipsPrompt(t *testing.T) {
	out := runReap(t, orphanTreeFixture(), "", "--force", "--no-color")

	if strings.Contains(out, "[y/N]") {
		t.Error("--force must not prompt")
	}

	// Leaves go first: deepest child, then child, then the candidate
	grand := strings.Index(out, "Child PID 9000012... already exited")
	child := strings.Index(out, "Child PID 9000011... already exited")
	root := strings.Index(out, "PID 9000001... already exited")
	if grand == -1 || child == -1 || root == -1 {
		t.Fatalf("missing purge lines. Got:\n%s", out)
	}
	if !(grand < child && child < root) {
		t.Errorf("purge lines out of order: grand=%d child=%d root=%d", grand, child, root)
	}

	if !strings.Contains(out, "Killed: 3 | Failed: 0") {
		t.Errorf("output missing the purge summary. Got:\n%s", out)
	}
}

func TestDryRunNeverPrompts(t *testing.T) {
	out := runReap(t, orphanFixture(), "", "--dry-run", "--no-color")

	if !strings.Contains(out, "PID 9000001 [orphaned]") {
		t.Errorf("dry run missing the report. Got:\n%s", out)
	}
	if strings.Contains(out, "[y/N]") || strings.Contains(out, "Killed:") {
		t.Error("dry run must neither prompt nor purge")
	}
}

func TestJSONReport(t *testing.T) {
	out := runReap(t, orphanFixture(), "", "--json")

	var report model.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v\nGot:\n%s", err, out)
	}
	if report.Name != "node" || report.Matched != 1 {
		t.Errorf("report = %+v, want name node matched 1", report)
	}
	if len(report.Candidates) != 1 || report.Candidates[0].PID != strayPid {
		t.Errorf("candidates = %+v, want just pid %d", report.Candidates, strayPid)
	}
	if !report.Candidates[0].Orphaned {
		t.Error("candidate not marked orphaned in JSON")
	}
}

func TestJSONForcePurge(t *testing.T) {
	out := runReap(t, orphanTreeFixture(), "", "--json", "--force")

	dec := json.NewDecoder(strings.NewReader(out))

	var report model.Report
	if err := dec.Decode(&report); err != nil {
		t.Fatalf("first document is not a report: %v\nGot:\n%s", err, out)
	}

	var purged struct {
		Killed   int `json:"killed"`
		Failed   int `json:"failed"`
		Attempts []struct {
			PID     int    `json:"pid"`
			Child   bool   `json:"child"`
			Outcome string `json:"outcome"`
		} `json:"attempts"`
	}
	if err := dec.Decode(&purged); err != nil {
		t.Fatalf("second document is not a purge outcome: %v\nGot:\n%s", err, out)
	}

	if purged.Killed != 3 || purged.Failed != 0 {
		t.Errorf("purge outcome = %+v, want killed 3 failed 0", purged)
	}
	if len(purged.Attempts) != 3 {
		t.Fatalf("attempts = %d, want 3", len(purged.Attempts))
	}
	if purged.Attempts[0].PID != grandPid || !purged.Attempts[0].Child {
		t.Errorf("first attempt = %+v, want child pid %d", purged.Attempts[0], grandPid)
	}
	if purged.Attempts[2].PID != strayPid || purged.Attempts[2].Child {
		t.Errorf("last attempt = %+v, want root pid %d", purged.Attempts[2], strayPid)
	}
}

func TestJSONNeverPrompts(t *testing.T) {
	// No --force: candidates exist but JSON mode must not block on stdin
	out := runReap(t, orphanFixture(), "", "--json")
	if strings.Contains(out, "[y/N]") {
		t.Error("JSON mode prompted")
	}
	if strings.Contains(out, "killed") {
		t.Error("JSON mode purged without --force")
	}
}

func TestStuckAfterFlag(t *testing.T) {
	// Idle for six minutes: stuck under the default cutoff, healthy when
	// the cutoff is stretched to ten.
	table := func() *fakeTable {
		return newFakeTable("node", []int{healthyPid}, map[int]fakeProc{
			healthyPid: {
				ppid:       livePPid,
				started:    time.Now().Add(-6 * time.Minute),
				responding: true,
			},
		}, livePPid)
	}

	out := runReap(t, table(), "", "--dry-run", "--no-color")
	if !strings.Contains(out, "[stuck]") {
		t.Errorf("six idle minutes not stuck under the default cutoff. Got:\n%s", out)
	}

	out = runReap(t, table(), "", "--dry-run", "--no-color", "--stuck-after", "10m")
	if !strings.Contains(out, "look healthy") {
		t.Errorf("six idle minutes still stuck with --stuck-after 10m. Got:\n%s", out)
	}
}
