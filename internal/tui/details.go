package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"

	"github.com/SanCognition/reap/internal/output"
	"github.com/SanCognition/reap/internal/purge"
)

// renderDetailsPanel renders the right-side details panel
func (m Model) renderDetailsPanel(width int) string {
	availableHeight := m.height - 5

	c := m.currentCandidate()
	if c == nil {
		empty := lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(width).
			Height(availableHeight).
			Align(lipgloss.Center, lipgloss.Center).
			Render("Nothing to reap")
		return detailsPanelStyle.Width(width).Height(availableHeight).Render(empty)
	}

	var sections []string

	// Candidate title
	title := detailsTitleStyle.Render(fmt.Sprintf("PID %d", c.PID))
	sections = append(sections, title)

	// Verdict
	sections = append(sections, m.renderDetailSection("VERDICT", verdictLabel(c.Verdict), width-4))

	// Full command line, wrapped
	if c.Cmdline != "" {
		cmdline := wrap.String(output.Sanitize(c.Cmdline), width-4)
		sections = append(sections, m.renderDetailSection("COMMAND", cmdline, width-4))
	}

	// Resources
	resources := fmt.Sprintf("MEM %s  CPU %s", formatMem(c.MemoryBytes), c.CPUTime.Round(10*time.Millisecond))
	sections = append(sections, m.renderDetailSection("RESOURCES", resources, width-4))

	// Uptime & start time
	running := "unknown start time"
	if !c.StartedAt.IsZero() {
		running = fmt.Sprintf("%s • since %s",
			output.FormatUptime(c.Uptime(time.Now())),
			c.StartedAt.Format("Jan 2 15:04:05"))
	}
	sections = append(sections, m.renderDetailSection("RUNNING", running, width-4))

	// Responding
	responding := "yes"
	if !c.Responding {
		responding = respondingNoStyle.Render("NO")
	}
	sections = append(sections, m.renderDetailSection("RESPONDING", responding, width-4))

	// Parent
	parent := "-"
	if c.ParentPID > 0 {
		parent = strconv.Itoa(c.ParentPID)
	}
	sections = append(sections, m.renderDetailSection("PARENT", parent, width-4))

	// Descendants
	if desc := m.renderDescendantsSection(c.Descendants, width-4); desc != "" {
		sections = append(sections, desc)
	}

	// Outcome of the last kill attempt, if this pid survived one
	if a, ok := m.attempts[c.PID]; ok {
		sections = append(sections, m.renderDetailSection("LAST KILL", attemptLabel(a), width-4))
	}

	content := strings.Join(sections, "\n\n")

	return detailsPanelStyle.
		Width(width).
		Height(availableHeight).
		Render(content)
}

// renderDetailSection renders a labeled section
func (m Model) renderDetailSection(label, value string, width int) string {
	labelStr := detailsLabelStyle.Render(label)
	valueStr := detailsValueStyle.Width(width).Render(value)
	return labelStr + "\n" + valueStr
}

// renderDescendantsSection lists descendant pids, parents first
func (m Model) renderDescendantsSection(pids []int, width int) string {
	if len(pids) == 0 {
		return ""
	}

	const maxShown = 8

	var lines []string
	lines = append(lines, detailsLabelStyle.Render(fmt.Sprintf("DESCENDANTS (%d)", len(pids))))

	shown := pids
	if len(shown) > maxShown {
		shown = shown[:maxShown]
	}
	strs := make([]string, 0, len(shown)+1)
	for _, pid := range shown {
		strs = append(strs, strconv.Itoa(pid))
	}
	if len(pids) > maxShown {
		strs = append(strs, "...")
	}
	lines = append(lines, detailsValueStyle.Width(width).Render(strings.Join(strs, " ")))

	return strings.Join(lines, "\n")
}

// attemptLabel renders a kill outcome with its failure reason
func attemptLabel(a purge.Attempt) string {
	if a.Outcome == purge.Failed {
		reason := "unknown error"
		if a.Err != nil {
			reason = a.Err.Error()
		}
		return killFailedStyle.Render(fmt.Sprintf("failed (%s)", reason))
	}
	return killOKStyle.Render(a.Outcome.String())
}
