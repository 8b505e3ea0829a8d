package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SanCognition/reap/internal/purge"
	"github.com/SanCognition/reap/pkg/model"
)

var renderNow = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

func TestFormatMemoryMB(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{0, "0.0 MB"},
		{1 << 20, "1.0 MB"},
		{158720000, "151.4 MB"},
		{1536 << 20, "1536.0 MB"},
	}
	for _, tt := range tests {
		if got := FormatMemoryMB(tt.bytes); got != tt.want {
			t.Errorf("FormatMemoryMB(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0m 0s"},
		{9 * time.Second, "0m 9s"},
		{5*time.Minute + 9*time.Second, "5m 9s"},
		{3*time.Hour + 12*time.Minute, "3h 12m"},
		{26 * time.Hour, "1d 2h"},
		{49*time.Hour + 30*time.Minute, "2d 1h"},
		{-time.Minute, "0m 0s"},
	}
	for _, tt := range tests {
		if got := FormatUptime(tt.d); got != tt.want {
			t.Errorf("FormatUptime(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestTruncateCmdline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short unchanged", "node server.js", "node server.js"},
		{"exactly 80 unchanged", strings.Repeat("a", 80), strings.Repeat("a", 80)},
		{"81 becomes 77 plus dots", strings.Repeat("a", 81), strings.Repeat("a", 77) + "..."},
		{"long", strings.Repeat("b", 200), strings.Repeat("b", 77) + "..."},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateCmdline(tt.in)
			if got != tt.want {
				t.Errorf("TruncateCmdline = %q, want %q", got, tt.want)
			}
			if tt.in == strings.Repeat("a", 81) && len(got) != 80 {
				t.Errorf("truncated length = %d, want 80", len(got))
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"tab\tseparated", "tab separated"},
		{"newline\ninjected", "newlineinjected"},
		{"escape\x1b[31mred", "escape[31mred"},
		{"bell\x07", "bell"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderReportClean(t *testing.T) {
	var buf bytes.Buffer
	RenderReport(&buf, model.Report{Name: "node"}, renderNow, false)

	want := "No node processes found. System is clean.\n"
	if buf.String() != want {
		t.Errorf("RenderReport = %q, want %q", buf.String(), want)
	}
}

func TestRenderReportAllHealthy(t *testing.T) {
	var buf bytes.Buffer
	RenderReport(&buf, model.Report{Name: "node", Matched: 3}, renderNow, false)

	want := "All 3 node processes look healthy.\n"
	if buf.String() != want {
		t.Errorf("RenderReport = %q, want %q", buf.String(), want)
	}
}

func TestRenderReportCandidates(t *testing.T) {
	report := model.Report{
		Name:    "node",
		Matched: 3,
		Candidates: []model.Candidate{
			{
				Record: model.Record{
					PID:         4242,
					MemoryBytes: 158720000,
					StartedAt:   renderNow.Add(-(3*time.Hour + 12*time.Minute)),
					Responding:  true,
					Cmdline:     "node server.js --port 8080",
				},
				Verdict:     model.Verdict{Orphaned: true},
				Descendants: []int{4311, 4400},
			},
			{
				Record: model.Record{
					PID:         5000,
					MemoryBytes: 10 << 20,
					Responding:  false,
				},
				Verdict: model.Verdict{Stuck: true},
			},
		},
	}

	var buf bytes.Buffer
	RenderReport(&buf, report, renderNow, false)
	got := buf.String()

	wantLines := []string{
		"Found 2 stray node processes (3 running):",
		"PID 4242 [orphaned]",
		"  Memory:     151.4 MB",
		"  Uptime:     3h 12m",
		"  Responding: Yes",
		"  Children:   2",
		"  Command:    node server.js --port 8080",
		"PID 5000 [stuck]",
		"  Uptime:     unknown",
		"  Responding: No",
		"Total: 161.4 MB | 2 child processes",
	}
	for _, line := range wantLines {
		if !strings.Contains(got, line+"\n") {
			t.Errorf("report missing line %q in:\n%s", line, got)
		}
	}
	if strings.Contains(got, "Children:   0") {
		t.Errorf("childless candidate should omit the children line:\n%s", got)
	}
	if strings.Contains(got, "\033[") {
		t.Errorf("color disabled but escapes present:\n%s", got)
	}
}

func TestRenderReportColor(t *testing.T) {
	report := model.Report{Name: "node", Matched: 1, Candidates: []model.Candidate{
		{Record: model.Record{PID: 1}, Verdict: model.Verdict{Orphaned: true}},
	}}

	var buf bytes.Buffer
	RenderReport(&buf, report, renderNow, true)
	if !strings.Contains(buf.String(), "\033[") {
		t.Error("color enabled but no escapes emitted")
	}
}

func TestVerdictTag(t *testing.T) {
	tests := []struct {
		v    model.Verdict
		want string
	}{
		{model.Verdict{Orphaned: true}, "[orphaned]"},
		{model.Verdict{Stuck: true}, "[stuck]"},
		{model.Verdict{Orphaned: true, Stuck: true}, "[orphaned, stuck]"},
	}
	for _, tt := range tests {
		if got := verdictTag(tt.v); got != tt.want {
			t.Errorf("verdictTag(%+v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestRenderAttempt(t *testing.T) {
	tests := []struct {
		name    string
		attempt purge.Attempt
		want    string
	}{
		{"child killed", purge.Attempt{PID: 4311, Child: true, Outcome: purge.Killed}, "Child PID 4311... killed\n"},
		{"root killed", purge.Attempt{PID: 4242, Outcome: purge.Killed}, "PID 4242... killed\n"},
		{"already exited", purge.Attempt{PID: 4400, Child: true, Outcome: purge.AlreadyExited}, "Child PID 4400... already exited\n"},
		{"failed", purge.Attempt{PID: 1, Outcome: purge.Failed, Err: errors.New("operation not permitted")}, "PID 1... failed (operation not permitted)\n"},
		{"failed without reason", purge.Attempt{PID: 2, Outcome: purge.Failed}, "PID 2... failed (unknown error)\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			RenderAttempt(&buf, tt.attempt, false)
			if buf.String() != tt.want {
				t.Errorf("RenderAttempt = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestRenderPurgeSummary(t *testing.T) {
	var buf bytes.Buffer
	RenderPurgeSummary(&buf, purge.Summary{Killed: 3, Failed: 1}, false)

	want := "Killed: 3 | Failed: 1\n"
	if buf.String() != want {
		t.Errorf("RenderPurgeSummary = %q, want %q", buf.String(), want)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"y", "y\n", true},
		{"yes", "yes\n", true},
		{"uppercase Y", "Y\n", true},
		{"uppercase YES", "YES\n", true},
		{"padded yes", "  yes  \n", true},
		{"n", "n\n", false},
		{"empty line", "\n", false},
		{"no input at all", "", false},
		{"anything else", "sure\n", false},
		{"yes without newline", "yes", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got := Confirm(strings.NewReader(tt.input), &out, "Kill these processes?")
			if got != tt.want {
				t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if !strings.Contains(out.String(), "Kill these processes? [y/N]") {
				t.Errorf("prompt not printed: %q", out.String())
			}
		})
	}
}

func TestToJSON(t *testing.T) {
	tests := []struct {
		name   string
		report model.Report
	}{
		{"clean", model.Report{Name: "node"}},
		{"healthy", model.Report{Name: "node", Matched: 2}},
		{"full", model.Report{
			Name:    "node",
			Matched: 2,
			Candidates: []model.Candidate{{
				Record:      model.Record{PID: 4242, MemoryBytes: 1 << 20, StartedAt: renderNow, Responding: true, Cmdline: "node server.js"},
				Verdict:     model.Verdict{Orphaned: true, Stuck: true},
				Descendants: []int{4311},
			}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToJSON(tt.report)
			if err != nil {
				t.Errorf("ToJSON() error = %v", err)
				return
			}
			var parsed map[string]interface{}
			if err := json.Unmarshal([]byte(got), &parsed); err != nil {
				t.Errorf("ToJSON() produced invalid JSON: %v", err)
			}
		})
	}
}

func TestPurgeJSON(t *testing.T) {
	got, err := PurgeJSON(purge.Summary{Killed: 2, Failed: 1}, []purge.Attempt{
		{PID: 4311, Child: true, Outcome: purge.Killed},
		{PID: 4400, Child: true, Outcome: purge.Failed, Err: errors.New("operation not permitted")},
		{PID: 4242, Outcome: purge.AlreadyExited},
	})
	if err != nil {
		t.Fatalf("PurgeJSON() error = %v", err)
	}

	var parsed struct {
		Killed   int `json:"killed"`
		Failed   int `json:"failed"`
		Attempts []struct {
			PID     int    `json:"pid"`
			Child   bool   `json:"child"`
			Outcome string `json:"outcome"`
			Error   string `json:"error"`
		} `json:"attempts"`
	}
	if err := json.Unmarshal([]byte(got), &parsed); err != nil {
		t.Fatalf("PurgeJSON() produced invalid JSON: %v", err)
	}

	if parsed.Killed != 2 || parsed.Failed != 1 {
		t.Errorf("counts = %d/%d, want 2/1", parsed.Killed, parsed.Failed)
	}
	if len(parsed.Attempts) != 3 {
		t.Fatalf("attempts = %d, want 3", len(parsed.Attempts))
	}
	if a := parsed.Attempts[1]; a.PID != 4400 || !a.Child || a.Outcome != "failed" || a.Error == "" {
		t.Errorf("failed attempt = %+v, want child 4400 with a reason", a)
	}
	if a := parsed.Attempts[2]; a.Child || a.Outcome != "already exited" || a.Error != "" {
		t.Errorf("root attempt = %+v, want already exited without error", a)
	}
}

func TestDetectColorRespectsOptOut(t *testing.T) {
	if DetectColor(true) {
		t.Error("DetectColor(true) = true, want false")
	}
	t.Setenv("NO_COLOR", "1")
	if DetectColor(false) {
		t.Error("DetectColor with NO_COLOR set = true, want false")
	}
}
