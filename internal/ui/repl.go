// Package ui contains the Bubble Tea models used by interactive CLI
// modes.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CheckFunc runs one snippet through a checker instance and returns the
// verdict. The function runs on the UI's command goroutine; the checker
// itself is only ever touched from here, one call at a time.
type CheckFunc func(snippet string) (valid bool, messages []string, err error)

type resultMsg struct {
	valid    bool
	messages []string
	err      error
}

var (
	replTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	replHintStyle   = lipgloss.NewStyle().Faint(true)
	replOKStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	replFailStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	replErrStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	replResultFrame = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// ReplModel is an interactive snippet-checking session.
type ReplModel struct {
	input   textarea.Model
	spin    spinner.Model
	check   CheckFunc
	running bool
	checked bool
	result  resultMsg
	width   int
}

// NewRepl returns a model wired to check.
func NewRepl(check CheckFunc) *ReplModel {
	ta := textarea.New()
	ta.Placeholder = `var s string = "hello"`
	ta.Focus()
	ta.SetHeight(6)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	return &ReplModel{
		input: ta,
		spin:  sp,
		check: check,
		width: 80,
	}
}

func (m *ReplModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *ReplModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+s":
			if m.running {
				return m, nil
			}
			snippet := m.input.Value()
			if strings.TrimSpace(snippet) == "" {
				return m, nil
			}
			m.running = true
			return m, tea.Batch(m.spin.Tick, m.runCheck(snippet))
		}
	case resultMsg:
		m.running = false
		m.checked = true
		m.result = msg
		return m, nil
	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.input.SetWidth(msg.Width - 4)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ReplModel) runCheck(snippet string) tea.Cmd {
	return func() tea.Msg {
		valid, messages, err := m.check(snippet)
		return resultMsg{valid: valid, messages: messages, err: err}
	}
}

func (m *ReplModel) View() string {
	var b strings.Builder
	b.WriteString(replTitleStyle.Render("typeprobe repl"))
	b.WriteString("\n")
	b.WriteString(replHintStyle.Render("ctrl+s to check · esc to quit"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.running:
		b.WriteString(m.spin.View())
		b.WriteString(" checking...")
	case m.checked:
		b.WriteString(m.resultView())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *ReplModel) resultView() string {
	if m.result.err != nil {
		return replResultFrame.Render(replErrStyle.Render(fmt.Sprintf("error: %v", m.result.err)))
	}
	if m.result.valid {
		return replResultFrame.Render(replOKStyle.Render("ok: snippet type-checks"))
	}
	body := replFailStyle.Render("FAIL") + "\n" + strings.Join(m.result.messages, "\n\n")
	return replResultFrame.Render(body)
}
