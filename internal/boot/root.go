package boot

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/VinitSadhanapada/Offline-Deploy-12Sep/internal/provision"
)

type stepMsg string
type lineMsg string
type doneMsg struct{ err error }

// errAborted is returned when the user quits mid-run. Provisioning may
// be half done at that point, so the run must not report success.
var errAborted = errors.New("provisioning aborted by user")

var (
	stepStyle = lipgloss.NewStyle().Bold(true)
	lineStyle = lipgloss.NewStyle().Faint(true)
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

type model struct {
	spinner  spinner.Model
	events   chan tea.Msg
	message  string
	lines    []string
	quitting bool
	err      error
}

func initialModel(events chan tea.Msg) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return model{
		spinner: s,
		events:  events,
		message: "Starting provisioning...",
	}
}

func (m model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.events
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForEvent())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			if m.err == nil {
				m.err = errAborted
			}
			return m, tea.Quit
		default:
			return m, nil
		}

	case stepMsg:
		m.message = string(msg)
		return m, m.waitForEvent()

	case lineMsg:
		m.lines = append(m.lines, string(msg))
		return m, m.waitForEvent()

	case doneMsg:
		m.err = msg.err
		m.quitting = true
		if m.err == nil {
			m.message = "Provisioning complete"
		}
		return m, tea.Quit

	default:
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m model) View() string {
	if m.err != nil {
		return m.err.Error() + "\n"
	}
	var b strings.Builder
	if m.quitting {
		b.WriteString("\n  " + okStyle.Render("✓") + " " + m.message + "\n")
	} else {
		b.WriteString("\n  " + m.spinner.View() + " " + stepStyle.Render(m.message) + "\n")
	}
	for _, line := range m.lines {
		b.WriteString("    " + lineStyle.Render(line) + "\n")
	}
	return b.String()
}

// indirection for testability
var runFn = provision.Run

// Start runs the provisioning pipeline behind a spinner UI and returns
// the pipeline's error, if any. The pipeline itself executes in a
// goroutine and reports through a channel the program drains.
func Start(opts provision.Options) error {
	events := make(chan tea.Msg, 16)

	go func() {
		_, err := runFn(opts, provision.Reporter{
			OnStep: func(s string) { events <- stepMsg(s) },
			OnLine: func(l string) { events <- lineMsg(l) },
		})
		events <- doneMsg{err: err}
	}()

	final, err := tea.NewProgram(initialModel(events)).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(model); ok {
		return m.err
	}
	return nil
}
