package internal

import (
	"fmt"
	"strings"
	"time"

	"runcheck/internal/runner"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Align(lipgloss.Center)

	fileItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	fileItemSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")).
				Background(lipgloss.Color("235")).
				Padding(0, 1)

	runtimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("69")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82")).
			Bold(true)

	failureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	historyHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("86")).
				Bold(true)

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

func formatRuntime(d time.Duration) string {
	return fmt.Sprintf("%.3f s", d.Seconds())
}

func statusStyleFor(status runner.Status) lipgloss.Style {
	if status == runner.StatusSuccess {
		return successStyle
	}
	return failureStyle
}

func (m *Model) emptyStateView() string {
	return lipgloss.Place(
		80, 24,
		lipgloss.Center, lipgloss.Center,
		titleStyle.Render("Runtime Checker")+"\n\n"+
			inactiveStyle.Render("No supported files in "+m.WorkDir)+"\n"+
			inactiveStyle.Render("Drop .py, .c, .cpp or .java files there, then press 'r'.")+"\n\n"+
			helpStyle.Render("Refresh: r | History: h | Quit: q"),
	)
}

func (m *Model) fileListView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Width(80).Render("Runtime Checker"))
	sb.WriteString("\n")
	sb.WriteString(pathStyle.Width(80).Align(lipgloss.Center).Render(m.WorkDir))
	sb.WriteString("\n\n")

	var list strings.Builder
	list.WriteString("Files\n\n")
	for i, f := range m.Files {
		if i == m.SelectedIndex {
			list.WriteString(fileItemSelectedStyle.Render(f))
		} else {
			list.WriteString(fileItemStyle.Render(inactiveStyle.Render(f)))
		}
		list.WriteString("\n")
	}
	sb.WriteString(boxStyle.Width(60).Height(15).Render(list.String()))
	sb.WriteString("\n\n")

	if m.Err != nil {
		sb.WriteString(failureStyle.Render(m.Err.Error()))
		sb.WriteString("\n")
	}
	sb.WriteString(helpStyle.Render("Navigate: Up/Down | Run: Enter | Refresh: r | History: h | Quit: q"))

	return sb.String()
}

func (m *Model) inputFormView() string {
	label := inputStyle.Render("→ Input: ")

	form := fmt.Sprintf(
		"%s\n\n%s%s\n\n%s",
		fmt.Sprintf("Run %s", runtimeStyle.Render(m.PendingFile)),
		label, m.StdinInput.View(),
		helpStyle.Render("Enter: Run (empty = no input) | Esc: Cancel"),
	)

	return lipgloss.Place(
		80, 24,
		lipgloss.Center, lipgloss.Center,
		boxStyle.Width(60).Render(form),
	)
}

func (m *Model) runningView() string {
	return lipgloss.Place(
		80, 24,
		lipgloss.Center, lipgloss.Center,
		titleStyle.Render("Running "+m.PendingFile)+"\n\n"+
			inactiveStyle.Render("Waiting for the program to finish..."),
	)
}

func (m *Model) resultView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Width(80).Render("Result"))
	sb.WriteString("\n\n")

	if m.RunErr != nil {
		sb.WriteString(failureStyle.Render("Error: " + m.RunErr.Error()))
		sb.WriteString("\n\n")
		sb.WriteString(helpStyle.Render("Enter/Esc: Back | Ctrl+C: Quit"))
		return sb.String()
	}

	r := m.Result
	var body strings.Builder
	body.WriteString(fmt.Sprintf("File:     %s\n", r.File))
	body.WriteString(fmt.Sprintf("Language: %s\n", r.Language))
	body.WriteString(fmt.Sprintf("Status:   %s\n", statusStyleFor(r.Status).Render(string(r.Status))))
	if r.Status != runner.StatusToolMissing {
		body.WriteString(fmt.Sprintf("Runtime:  %s\n", runtimeStyle.Render(formatRuntime(r.Runtime))))
	}

	if r.Output != "" {
		body.WriteString("\nOutput:\n")
		body.WriteString(clipLines(r.Output, 10))
		body.WriteString("\n")
	}
	if r.Stderr != "" {
		body.WriteString("\n")
		body.WriteString(failureStyle.Render("Error:"))
		body.WriteString("\n")
		body.WriteString(clipLines(r.Stderr, 10))
		body.WriteString("\n")
	}

	sb.WriteString(boxStyle.Width(70).Render(body.String()))
	sb.WriteString("\n\n")
	sb.WriteString(helpStyle.Render("Enter/Esc: Back | Ctrl+C: Quit"))

	return sb.String()
}

func (m *Model) historyView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Width(80).Render("Run History"))
	sb.WriteString("\n\n")

	if len(m.HistoryRuns) == 0 {
		sb.WriteString(inactiveStyle.Render("No runs recorded yet."))
		sb.WriteString("\n\n")
		sb.WriteString(helpStyle.Render("Back: h/q/Esc"))
		return sb.String()
	}

	sb.WriteString(historyHeaderStyle.Render(fmt.Sprintf("  %-24s %-8s %-22s %-10s %s",
		"File", "Lang", "Status", "Runtime", "When")))
	sb.WriteString("\n")

	const visible = 15
	start := m.HistoryScroll
	if start > len(m.HistoryRuns)-1 {
		start = len(m.HistoryRuns) - 1
	}
	end := start + visible
	if end > len(m.HistoryRuns) {
		end = len(m.HistoryRuns)
	}

	for _, run := range m.HistoryRuns[start:end] {
		line := fmt.Sprintf("  %-24s %-8s %-22s %-10s %s",
			clip(run.File, 24), run.Language, run.Status,
			formatRuntime(run.Runtime), humanize.Time(run.RanAt))
		if run.Status == string(runner.StatusSuccess) {
			sb.WriteString(line)
		} else {
			sb.WriteString(inactiveStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("Scroll: Up/Down | Back: h/q/Esc"))

	return sb.String()
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + "\n" + inactiveStyle.Render(fmt.Sprintf("... (%d more lines)", len(lines)-n))
}
