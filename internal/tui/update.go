package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SanCognition/reap/internal/purge"
	"github.com/SanCognition/reap/pkg/model"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if !m.paused && !m.purging {
			m.refreshing = true
			return m, tea.Batch(scanCmd(m.scanner, m.name), tickCmd())
		}
		return m, tickCmd()

	case reportMsg:
		m.report = model.Report(msg)
		m.scanned = true
		m.refreshing = false
		m.lastRefresh = time.Now()
		m.clampCursor()
		m.pruneSelection()
		return m, nil

	case purgeMsg:
		summary := msg.summary
		m.lastPurge = &summary
		m.attempts = make(map[int]purge.Attempt, len(msg.attempts))
		for _, a := range msg.attempts {
			m.attempts[a.PID] = a
		}
		m.purging = false
		m.selected = make(map[int]bool)
		// Trigger immediate refresh
		m.refreshing = true
		return m, scanCmd(m.scanner, m.name)
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.report.Candidates)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if c := m.currentCandidate(); c != nil {
			if m.selected[c.PID] {
				delete(m.selected, c.PID)
			} else {
				m.selected[c.PID] = true
			}
			// Move to next row
			if m.cursor < len(m.report.Candidates)-1 {
				m.cursor++
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.SelectAll):
		for _, c := range m.report.Candidates {
			m.selected[c.PID] = true
		}
		return m, nil

	case key.Matches(msg, m.keys.DeselectAll):
		m.selected = make(map[int]bool)
		return m, nil

	case key.Matches(msg, m.keys.Kill):
		return m.handlePurge()

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		return m, nil
	}

	return m, nil
}

// handlePurge kills the selected candidates, or the cursor row when
// nothing is selected. Purges do not overlap; the refresh tick skips
// while one is running.
func (m Model) handlePurge() (tea.Model, tea.Cmd) {
	if m.purging {
		return m, nil
	}
	targets := m.purgeTargets()
	if len(targets) == 0 {
		return m, nil
	}
	m.purging = true
	return m, purgeCmd(m.table, targets)
}
