// Package tui is the interactive terminal interface of the prover.
//
// The screen shows the current proof in a scrollable viewport, a status line, and a
// prompt where rule requests and meta commands are typed. Validity checks run as
// commands, outside of the update loop.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/uben0/prove/sequent"
	"github.com/uben0/prove/session"
	"github.com/uben0/prove/theme"
)

const (
	headerHeight = 1
	footerHeight = 2 // Status line and prompt
)

// Config configures the interface.
type Config struct {
	Theme        *theme.Theme  // Defaults to theme.None()
	CheckTimeout time.Duration // Maximum duration of a validity check, 0 for none
}

// checkMsg carries the result of a validity check.
type checkMsg struct {
	outcome session.Outcome
	err     error
}

type styles struct {
	header lipgloss.Style
	err    lipgloss.Style
	info   lipgloss.Style
	solved lipgloss.Style
	help   lipgloss.Style
}

func newStyles(th *theme.Theme) styles {
	r := th.Renderer()
	return styles{
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		err:    r.NewStyle().Foreground(lipgloss.Color("196")),
		info:   r.NewStyle().Foreground(lipgloss.Color("241")),
		solved: r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		help:   r.NewStyle().Padding(0, 1),
	}
}

// Model is the bubbletea model of an interactive session.
type Model struct {
	sess    *session.Session
	config  Config
	styles  styles
	input   textinput.Model
	view    viewport.Model
	ready   bool
	width   int
	height  int
	status  string
	isError bool

	history      []string
	historyIndex int    // -1 when not browsing the history
	currentInput string // Input being typed when browsing started

	showHelp bool
	checking bool
	quitting bool
}

// New returns the model driving sess.
func New(sess *session.Session, config Config) Model {
	if config.Theme == nil {
		config.Theme = theme.None()
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "rule or :h for help"
	ti.CharLimit = 1024
	ti.Focus()
	return Model{
		sess:         sess,
		config:       config,
		styles:       newStyles(config.Theme),
		input:        ti,
		historyIndex: -1,
		status:       "type :h for help",
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		height := max(m.height-headerHeight-footerHeight, 1)
		if !m.ready {
			m.view = viewport.New(m.width, height)
			m.ready = true
		} else {
			m.view.Width = m.width
			m.view.Height = height
		}
		m.input.Width = max(m.width-len(m.input.Prompt)-1, 1)
		m.refresh()
		return m, nil

	case checkMsg:
		m.checking = false
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setStatus(msg.outcome.Message)
		}
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			switch msg.Type {
			case tea.KeyCtrlC:
				m.quitting = true
				return m, tea.Quit
			case tea.KeyEsc, tea.KeyEnter:
				m.showHelp = false
			}
			return m, nil
		}
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.SetValue("")
			return m.exec(line)
		case tea.KeyUp:
			m.historyUp()
			return m, nil
		case tea.KeyDown:
			m.historyDown()
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.view, cmd = m.view.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) exec(line string) (tea.Model, tea.Cmd) {
	line = strings.TrimSpace(line)
	if line != "" {
		m.history = append(m.history, line)
	}
	m.historyIndex = -1
	switch line {
	case ":c", ":w":
		if m.sess.Done() {
			break
		}
		if m.checking {
			m.setStatus("a check is already running")
			return m, nil
		}
		m.checking = true
		m.setStatus("checking...")
		return m, m.check(line, m.sess.Goal())
	}
	out, err := m.sess.Exec(context.Background(), line)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	switch out.Kind {
	case session.Quit:
		m.quitting = true
		return m, tea.Quit
	case session.Finished:
		m.quitting = true
		m.setStatus(out.Message)
		return m, tea.Quit
	case session.Help:
		m.showHelp = true
		return m, nil
	case session.Solved:
		m.setStatus("solved, press enter for the next sequent")
	default:
		m.setStatus(out.Message)
	}
	m.refresh()
	return m, nil
}

// check returns the command checking goal, the session being left untouched.
func (m Model) check(line string, goal sequent.Sequent) tea.Cmd {
	timeout := m.config.CheckTimeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		var msg checkMsg
		if line == ":c" {
			msg.outcome, msg.err = session.Check(ctx, goal)
		} else {
			msg.outcome, msg.err = session.Needed(ctx, goal)
		}
		return msg
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.isError = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.isError = true
}

func (m *Model) historyUp() {
	if len(m.history) == 0 {
		return
	}
	if m.historyIndex == -1 {
		m.currentInput = m.input.Value()
		m.historyIndex = len(m.history) - 1
	} else if m.historyIndex > 0 {
		m.historyIndex--
	}
	m.input.SetValue(m.history[m.historyIndex])
	m.input.CursorEnd()
}

func (m *Model) historyDown() {
	if m.historyIndex == -1 {
		return
	}
	if m.historyIndex < len(m.history)-1 {
		m.historyIndex++
		m.input.SetValue(m.history[m.historyIndex])
	} else {
		m.historyIndex = -1
		m.input.SetValue(m.currentInput)
	}
	m.input.CursorEnd()
}

// refresh puts the current proof in the viewport, its conclusion being visible.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.view.SetContent(strings.TrimRight(m.sess.Render(), "\n"))
	m.view.GotoBottom()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading...\n"
	}
	var b strings.Builder
	b.WriteString(m.styles.header.Render("prove " + m.sess.Status()))
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.styles.help.Render(session.Usage))
	} else {
		b.WriteString(m.view.View())
	}
	b.WriteString("\n")
	switch {
	case m.isError:
		b.WriteString(m.styles.err.Render(m.status))
	case !m.sess.Done() && m.sess.Proof().Complete():
		b.WriteString(m.styles.solved.Render(m.status))
	default:
		b.WriteString(m.styles.info.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}

// Status returns the text of the status line.
func (m Model) Status() string { return m.status }

// Run runs the interface until the user quits or ctx is done.
func Run(ctx context.Context, sess *session.Session, config Config, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(New(sess, config), opts...).Run()
	return err
}
