package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/SanCognition/reap/internal/output"
	"github.com/SanCognition/reap/pkg/model"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 || !m.scanned {
		return "Scanning..."
	}

	// Calculate panel widths (70% table, 30% details)
	tableWidth := int(float64(m.width) * 0.68)
	detailsWidth := m.width - tableWidth - 3 // Account for borders

	// Build the panels
	tablePanel := m.renderTablePanel(tableWidth)
	detailsPanel := m.renderDetailsPanel(detailsWidth)

	// Join panels horizontally
	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, tablePanel, detailsPanel)

	// Add status/help bar at the bottom
	helpBar := m.renderHelpBar()

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, helpBar)
}

// renderTablePanel renders the candidate table
func (m Model) renderTablePanel(width int) string {
	// Calculate available height (minus header, separator, and help bar)
	availableHeight := m.height - 5

	var sb strings.Builder

	// Header
	header := m.renderTableHeader(width)
	sb.WriteString(header)
	sb.WriteString("\n")

	// Separator
	sb.WriteString(m.renderSeparator(width))
	sb.WriteString("\n")

	// Rows
	if len(m.report.Candidates) == 0 {
		msg := fmt.Sprintf("All %d %s processes look healthy", m.report.Matched, m.name)
		if m.report.Clean() {
			msg = fmt.Sprintf("No %s processes found", m.name)
		}
		empty := lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(width).
			Align(lipgloss.Center).
			Render(msg)
		sb.WriteString(empty)
	} else {
		rowCount := min(len(m.report.Candidates), availableHeight-2)
		for i := 0; i < rowCount; i++ {
			row := m.renderTableRow(i, width)
			sb.WriteString(row)
			if i < rowCount-1 {
				sb.WriteString("\n")
			}
		}
	}

	style := panelStyle.
		Width(width).
		Height(availableHeight)

	return style.Render(sb.String())
}

// commandWidth returns the width left for the command column
func commandWidth(width int) int {
	w := width - 60
	if w < 10 {
		w = 10
	}
	return w
}

// renderTableHeader renders the table header
func (m Model) renderTableHeader(width int) string {
	// Column widths
	cols := []struct {
		name  string
		width int
	}{
		{"", 2}, // Selection marker
		{"PID", 7},
		{"VERDICT", 15},
		{"MEM", 7},
		{"UPTIME", 8},
		{"RESP", 4},
		{"CHLD", 4},
		{"COMMAND", commandWidth(width)},
	}

	var parts []string
	for _, col := range cols {
		parts = append(parts, lipgloss.NewStyle().
			Width(col.width).
			Bold(true).
			Foreground(colorSecondary).
			Render(col.name))
	}

	return strings.Join(parts, " ")
}

// renderSeparator renders a separator line
func (m Model) renderSeparator(width int) string {
	return lipgloss.NewStyle().
		Foreground(colorBorder).
		Render(strings.Repeat("─", width-4))
}

// renderTableRow renders a single candidate row
func (m Model) renderTableRow(idx int, width int) string {
	c := m.report.Candidates[idx]
	isSelected := m.selected[c.PID]
	isCursor := idx == m.cursor

	// Selection marker
	marker := "  "
	if isSelected {
		marker = multiSelectStyle.Render("• ")
	}
	if isCursor {
		marker = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("> ")
	}
	if isCursor && isSelected {
		marker = multiSelectStyle.Render("▸ ")
	}

	// Format values
	uptime := "-"
	if !c.StartedAt.IsZero() {
		uptime = output.FormatUptime(c.Uptime(time.Now()))
	}
	resp := "yes"
	if !c.Responding {
		resp = respondingNoStyle.Render("NO")
	}
	cmdWidth := commandWidth(width)
	cmdline := truncate(output.Sanitize(c.Cmdline), cmdWidth)

	// Build row
	cols := []struct {
		value string
		width int
	}{
		{fmt.Sprintf("%d", c.PID), 7},
		{verdictLabel(c.Verdict), 15},
		{formatMem(c.MemoryBytes), 7},
		{uptime, 8},
		{resp, 4},
		{fmt.Sprintf("%d", c.ChildCount()), 4},
		{cmdline, cmdWidth},
	}

	var parts []string
	parts = append(parts, marker)
	for _, col := range cols {
		style := lipgloss.NewStyle().Width(col.width)
		parts = append(parts, style.Render(col.value))
	}

	row := strings.Join(parts, " ")

	// Apply row styling
	if isCursor {
		row = tableSelectedStyle.Render(row)
	}

	return row
}

// verdictLabel renders the classification flags with color
func verdictLabel(v model.Verdict) string {
	switch {
	case v.Orphaned && v.Stuck:
		return verdictBothStyle.Render("orphaned, stuck")
	case v.Orphaned:
		return verdictOrphanStyle.Render("orphaned")
	default:
		return verdictStuckStyle.Render("stuck")
	}
}

// formatMem formats resident memory with color
func formatMem(bytes uint64) string {
	mb := float64(bytes) / (1 << 20)
	var str string
	if mb >= 1024 {
		str = fmt.Sprintf("%.1fG", mb/1024)
	} else {
		str = fmt.Sprintf("%.0fM", mb)
	}

	if mb > 1024 {
		return memHighStyle.Render(str)
	}
	if mb > 512 {
		return memMedStyle.Render(str)
	}
	return str
}

// truncate caps a string at max characters, ellipsized
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// renderHelpBar renders the bottom help/status bar
func (m Model) renderHelpBar() string {
	var parts []string

	// Navigation
	parts = append(parts, fmt.Sprintf("%s move", statusKeyStyle.Render("↑↓")))
	parts = append(parts, fmt.Sprintf("%s select", statusKeyStyle.Render("tab")))
	parts = append(parts, fmt.Sprintf("%s all", statusKeyStyle.Render("a")))
	parts = append(parts, fmt.Sprintf("%s none", statusKeyStyle.Render("d")))
	parts = append(parts, fmt.Sprintf("%s kill", statusKeyStyle.Render("enter")))
	parts = append(parts, fmt.Sprintf("%s pause", statusKeyStyle.Render("space")))
	parts = append(parts, fmt.Sprintf("%s quit", statusKeyStyle.Render("q")))

	// Status indicators
	var status string
	if m.purging {
		status = purgingStyle.Render("✗ killing...")
	} else if m.paused {
		status = pausedStyle.Render("⏸ PAUSED")
	} else if m.refreshing {
		status = refreshingStyle.Render("↻ refreshing...")
	} else {
		status = statusDescStyle.Render(fmt.Sprintf("%d matched, %d stray | updated %s",
			m.report.Matched, len(m.report.Candidates), formatTimeSince(m.lastRefresh)))
	}

	// Selected count
	if count := m.selectedCount(); count > 0 {
		status += statusDescStyle.Render(fmt.Sprintf(" | %d selected", count))
	}

	// Last purge outcome
	if m.lastPurge != nil {
		line := fmt.Sprintf(" | Killed: %d | Failed: %d", m.lastPurge.Killed, m.lastPurge.Failed)
		if m.lastPurge.Failed > 0 {
			status += killFailedStyle.Render(line)
		} else {
			status += killOKStyle.Render(line)
		}
	}

	helpText := strings.Join(parts, "  ")

	// Build the bar
	leftSide := helpStyle.Render(helpText)
	rightSide := helpStyle.Render(status)

	// Calculate spacing
	totalWidth := lipgloss.Width(leftSide) + lipgloss.Width(rightSide)
	spacing := m.width - totalWidth - 4
	if spacing < 0 {
		spacing = 0
	}

	return statusBarStyle.
		Width(m.width).
		Render(leftSide + strings.Repeat(" ", spacing) + rightSide)
}

// formatTimeSince formats duration since the last refresh
func formatTimeSince(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	s := int(time.Since(t).Seconds())
	if s < 2 {
		return "just now"
	}
	return fmt.Sprintf("%ds ago", s)
}
