package focus

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	focusdto "studyplan/internal/modules/focus/dto"
	"studyplan/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type FocusPort interface {
	Pause() focusdto.StateOutput
	Resume() focusdto.StateOutput
	Extend(minutes int) focusdto.StateOutput
	TogglePomodoro() focusdto.StateOutput
	Skip(ctx context.Context) (focusdto.StopOutput, error)
	Stop(ctx context.Context) (focusdto.StopOutput, error)
	State() focusdto.StateOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

// TickedMsg carries the engine state after a clock tick. The app model owns
// the ticker and broadcasts this regardless of which tab is visible.
type TickedMsg struct {
	State focusdto.StateOutput
}

// EndedMsg bubbles to the app model so it can surface the focused total and
// the journal path in the status bar.
type EndedMsg struct {
	Out     focusdto.StopOutput
	Outcome string
	Err     error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port   FocusPort
	state  focusdto.StateOutput
	width  int
	height int
}

func New(port FocusPort) Model {
	m := Model{port: port}
	if port != nil {
		m.state = port.State()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickedMsg:
		m.state = msg.State

	case EndedMsg:
		if msg.Err == nil {
			m.state = msg.Out.State
		}

	case tea.KeyMsg:
		if m.port == nil || !m.state.Active {
			return m, nil
		}
		switch msg.String() {
		case " ":
			if m.state.Paused {
				m.state = m.port.Resume()
			} else {
				m.state = m.port.Pause()
			}
		case "e":
			m.state = m.port.Extend(5)
		case "p":
			m.state = m.port.TogglePomodoro()
		case "k":
			return m, m.endCmd("skipped", m.port.Skip)
		case "x":
			return m, m.endCmd("stopped", m.port.Stop)
		}
	}
	return m, nil
}

func (m Model) View() string {
	var body string
	if !m.state.Active {
		body = m.renderIdle()
	} else {
		body = m.renderActive()
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderIdle() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("No focus session") + "\n\n")
	sb.WriteString(theme.Muted.Render("Pick a session on the Schedule tab and press enter to begin."))
	return sb.String()
}

func (m Model) renderActive() string {
	s := m.state

	countdownStyle := theme.Running
	label := "focusing"
	switch {
	case s.Paused:
		countdownStyle = theme.Paused
		label = "paused"
	case s.Phase == "break":
		countdownStyle = theme.Break
		label = "break"
	}

	var sb strings.Builder
	title := s.Focus
	if title == "" {
		title = s.TaskTitle
	}
	if title == "" {
		title = s.SessionID
	}
	sb.WriteString(theme.Title.Render(title) + "\n")
	if s.TaskTitle != "" && s.TaskTitle != title {
		sb.WriteString(theme.Muted.Render("task: ") + s.TaskTitle + "\n")
	}
	if s.SubjectName != "" {
		sb.WriteString(theme.Muted.Render("subject: ") + s.SubjectName + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(countdownStyle.Render(FormatCountdown(s.RemainingSeconds)))
	sb.WriteString("  " + theme.Muted.Render(label) + "\n\n")

	if s.PomodoroOn {
		sb.WriteString(theme.Hot.Render(fmt.Sprintf("pomodoro round %d", s.Round)))
		sb.WriteString(theme.Muted.Render("  phase: "+s.Phase) + "\n")
	}
	if s.QuickTrackMinutes > 0 {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("includes %d min already tracked", s.QuickTrackMinutes)) + "\n")
	}
	if !s.StartTime.IsZero() {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("scheduled %s – %s",
			s.StartTime.Local().Format("15:04"), s.EndTime.Local().Format("15:04"))) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("space: pause/resume  e: +5 min  p: pomodoro  k: skip  x: stop"))
	return sb.String()
}

func (m Model) endCmd(outcome string, op func(context.Context) (focusdto.StopOutput, error)) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		out, err := op(ctx)
		return EndedMsg{Out: out, Outcome: outcome, Err: err}
	}
}

// FormatCountdown renders whole seconds as mm:ss, spilling into hours for
// extended sessions.
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	mm := (seconds % 3600) / 60
	ss := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mm, ss)
	}
	return fmt.Sprintf("%02d:%02d", mm, ss)
}
