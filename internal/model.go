package internal

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"runcheck/internal/history"
	"runcheck/internal/runner"
	"runcheck/internal/workdir"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// historyFile is the sqlite database kept next to dest.txt.
const historyFile = "runcheck.db"

// MsgRunFinished carries the outcome of a run back into the update loop.
type MsgRunFinished struct {
	Result *runner.Result
	Err    error
}

type Model struct {
	BaseDir string
	WorkDir string

	Files         []string
	SelectedIndex int

	ShowInputForm bool
	ShowResult    bool
	ShowHistory   bool
	Running       bool

	PendingFile string
	StdinInput  textinput.Model

	Result *runner.Result
	RunErr error
	Err    error

	HistoryRuns   []history.Run
	HistoryScroll int

	Options runner.Options

	repo *history.Repository
}

func NewModel(baseDir string, opts runner.Options) (*Model, error) {
	workDir, err := workdir.Resolve(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working folder: %w", err)
	}

	files, err := workdir.ListSources(workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read working folder: %w", err)
	}

	repo, err := history.NewRepository(filepath.Join(baseDir, historyFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	si := textinput.New()
	si.Placeholder = "stdin data (use \\n for new lines)..."
	si.CharLimit = 500

	m := &Model{
		BaseDir:    baseDir,
		WorkDir:    workDir,
		Files:      files,
		StdinInput: si,
		Options:    opts,
		repo:       repo,
	}

	return m, nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgRunFinished:
		m.Running = false
		m.Result = msg.Result
		m.RunErr = msg.Err
		m.ShowResult = true
		if msg.Result != nil {
			run := &history.Run{
				File:     msg.Result.File,
				Language: msg.Result.Language,
				Status:   string(msg.Result.Status),
				Runtime:  msg.Result.Runtime,
				RanAt:    time.Now(),
			}
			m.repo.Create(run)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m, nil
	}
	return m, nil
}

func (m *Model) View() string {
	if m.Running {
		return m.runningView()
	}

	if m.ShowResult {
		return m.resultView()
	}

	if m.ShowHistory {
		return m.historyView()
	}

	if m.ShowInputForm {
		return m.inputFormView()
	}

	if len(m.Files) == 0 {
		return m.emptyStateView()
	}

	return m.fileListView()
}

func (m *Model) SelectedFile() string {
	if m.SelectedIndex >= 0 && m.SelectedIndex < len(m.Files) {
		return m.Files[m.SelectedIndex]
	}
	return ""
}

// RefreshFiles re-reads the working folder, keeping the cursor in range.
func (m *Model) RefreshFiles() {
	files, err := workdir.ListSources(m.WorkDir)
	if err != nil {
		m.Err = err
		return
	}
	m.Err = nil
	m.Files = files
	if m.SelectedIndex >= len(m.Files) {
		m.SelectedIndex = len(m.Files) - 1
	}
	if m.SelectedIndex < 0 {
		m.SelectedIndex = 0
	}
}

func (m *Model) startRun(file, stdin string) tea.Cmd {
	opts := m.Options
	// The prompt collects newlines as a literal backslash-n.
	opts.Stdin = strings.ReplaceAll(stdin, "\\n", "\n")
	target := filepath.Join(m.WorkDir, file)

	return func() tea.Msg {
		res, err := runner.Run(context.Background(), target, opts)
		return MsgRunFinished{Result: res, Err: err}
	}
}

func (m *Model) Close() error {
	return m.repo.Close()
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Running {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.ShowResult {
		return m.handleResultInput(msg)
	}

	if m.ShowHistory {
		return m.handleHistoryInput(msg)
	}

	if m.ShowInputForm {
		return m.handleInputForm(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.SelectedIndex > 0 {
			m.SelectedIndex--
		}
	case "down", "j":
		if m.SelectedIndex < len(m.Files)-1 {
			m.SelectedIndex++
		}
	case "enter":
		file := m.SelectedFile()
		if file != "" {
			m.PendingFile = file
			m.StdinInput.SetValue("")
			m.StdinInput.Focus()
			m.ShowInputForm = true
		}
	case "r":
		m.RefreshFiles()
	case "h":
		runs, err := m.repo.Recent(50)
		if err == nil {
			m.HistoryRuns = runs
		} else {
			m.HistoryRuns = nil
		}
		m.ShowHistory = true
		m.HistoryScroll = 0
	}
	return m, nil
}

func (m *Model) handleInputForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.ShowInputForm = false
		m.StdinInput.Blur()
		m.PendingFile = ""
		return m, nil
	case "enter":
		m.ShowInputForm = false
		m.StdinInput.Blur()
		m.Running = true
		return m, m.startRun(m.PendingFile, m.StdinInput.Value())
	}

	var cmd tea.Cmd
	m.StdinInput, cmd = m.StdinInput.Update(msg)
	return m, cmd
}

func (m *Model) handleResultInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc", "enter":
		m.ShowResult = false
		m.Result = nil
		m.RunErr = nil
		m.PendingFile = ""
		m.RefreshFiles()
	}
	return m, nil
}

func (m *Model) handleHistoryInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc", "h":
		m.ShowHistory = false
		m.HistoryRuns = nil
	case "up", "k":
		if m.HistoryScroll > 0 {
			m.HistoryScroll--
		}
	case "down", "j":
		maxScroll := len(m.HistoryRuns) - 1
		if maxScroll < 0 {
			maxScroll = 0
		}
		if m.HistoryScroll < maxScroll {
			m.HistoryScroll++
		}
	}
	return m, nil
}
