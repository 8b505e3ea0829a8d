package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SanCognition/reap/internal/proc"
	"github.com/SanCognition/reap/internal/purge"
	"github.com/SanCognition/reap/internal/scan"
	"github.com/SanCognition/reap/pkg/model"
)

// refreshInterval is how often the dashboard rescans the process table.
const refreshInterval = 2 * time.Second

// Model is the bubbletea model for the live dashboard: a candidate table
// on the left, details for the cursor row on the right, and a status bar.
// Every tick reruns the same scan the one-shot command uses.
type Model struct {
	name    string
	table   proc.Table
	scanner *scan.Scanner

	report  model.Report
	scanned bool

	cursor   int
	selected map[int]bool

	paused     bool
	refreshing bool
	purging    bool

	lastRefresh time.Time
	lastPurge   *purge.Summary
	attempts    map[int]purge.Attempt

	width  int
	height int
	keys   KeyMap
}

// New builds a dashboard that watches processes of the given executable
// name through table.
func New(name string, table proc.Table, thresholds scan.Thresholds) Model {
	return Model{
		name:     name,
		table:    table,
		scanner:  scan.NewScanner(table, thresholds),
		selected: make(map[int]bool),
		keys:     DefaultKeyMap(),
	}
}

// Init starts the first scan and the refresh ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(scanCmd(m.scanner, m.name), tickCmd())
}

// tickCmd schedules the next refresh tick
func tickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// scanCmd runs one scan off the update loop
func scanCmd(scanner *scan.Scanner, name string) tea.Cmd {
	return func() tea.Msg {
		return reportMsg(scanner.Scan(name))
	}
}

// purgeCmd kills the given candidates and reports every attempt back
func purgeCmd(table proc.Table, targets []model.Candidate) tea.Cmd {
	return func() tea.Msg {
		var msg purgeMsg
		term := purge.NewTerminator(table)
		term.OnAttempt = func(a purge.Attempt) {
			msg.attempts = append(msg.attempts, a)
		}
		msg.summary = term.Purge(targets)
		return msg
	}
}

// currentCandidate returns the candidate under the cursor, nil when the
// table is empty.
func (m Model) currentCandidate() *model.Candidate {
	if m.cursor < 0 || m.cursor >= len(m.report.Candidates) {
		return nil
	}
	return &m.report.Candidates[m.cursor]
}

// selectedCount returns the number of multi-selected candidates
func (m Model) selectedCount() int {
	return len(m.selected)
}

// purgeTargets returns the selected candidates, or the cursor row when
// nothing is selected.
func (m Model) purgeTargets() []model.Candidate {
	if m.selectedCount() > 0 {
		targets := make([]model.Candidate, 0, len(m.selected))
		for _, c := range m.report.Candidates {
			if m.selected[c.PID] {
				targets = append(targets, c)
			}
		}
		return targets
	}
	if c := m.currentCandidate(); c != nil {
		return []model.Candidate{*c}
	}
	return nil
}

// clampCursor keeps the cursor inside the candidate list after a refresh
// shrinks it.
func (m *Model) clampCursor() {
	if m.cursor >= len(m.report.Candidates) {
		m.cursor = len(m.report.Candidates) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// pruneSelection drops selected pids that are no longer candidates
func (m *Model) pruneSelection() {
	live := make(map[int]bool, len(m.report.Candidates))
	for _, c := range m.report.Candidates {
		live[c.PID] = true
	}
	for pid := range m.selected {
		if !live[pid] {
			delete(m.selected, pid)
		}
	}
}
