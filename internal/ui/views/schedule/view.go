package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	plannerdto "studyplan/internal/modules/planner/dto"
	trackingdto "studyplan/internal/modules/tracking/dto"
	"studyplan/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type SchedulePort interface {
	UpcomingSessions(ctx context.Context, from, to time.Time) ([]plannerdto.SessionOutput, error)
}

type TrackingPort interface {
	Options(input trackingdto.OptionsInput) trackingdto.OptionsOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

type SessionsLoadedMsg struct {
	Sessions []plannerdto.SessionOutput
	Err      error
}

// StartFocusMsg bubbles to the app model, which owns the focus engine and
// the tab switch that follows a successful start.
type StartFocusMsg struct {
	SessionID string
}

// ─── list item ───────────────────────────────────────────────────────────────

type sessionItem struct {
	session plannerdto.SessionOutput
}

func (i sessionItem) Title() string {
	if i.session.Focus != "" {
		return i.session.Focus
	}
	return i.session.ID
}

func (i sessionItem) Description() string {
	return fmt.Sprintf("%s  %s  %dmin",
		i.session.StartTime.Local().Format("Mon Jan 2 15:04"),
		i.session.Status,
		i.session.EstimatedMinutes)
}

func (i sessionItem) FilterValue() string { return i.session.Focus }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	schedule SchedulePort
	tracking TrackingPort

	list    list.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(schedule SchedulePort, tracking TrackingPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Schedule"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		schedule: schedule,
		tracking: tracking,
		list:     l,
		spinner:  sp,
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadSessionsCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height-2)

	case SessionsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Schedule — " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Schedule"
		items := make([]list.Item, len(msg.Sessions))
		for i, s := range msg.Sessions {
			items[i] = sessionItem{session: s}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		item, ok := m.list.SelectedItem().(sessionItem)
		if !ok {
			break
		}
		switch msg.String() {
		case "enter":
			options := m.options(item.session)
			if options.CanStartFocus || options.CanConvert {
				sessionID := item.session.ID
				return m, func() tea.Msg { return StartFocusMsg{SessionID: sessionID} }
			}
		case "r":
			return m, m.loadSessionsCmd()
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading schedule…")
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), m.renderHints())
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Reload re-fetches the schedule, used after a focus session ends.
func (m Model) Reload() tea.Cmd {
	return m.loadSessionsCmd()
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderHints() string {
	item, ok := m.list.SelectedItem().(sessionItem)
	if !ok {
		return theme.Muted.Render(" r: refresh")
	}
	options := m.options(item.session)
	switch {
	case options.InFocus:
		return theme.Hot.Render(" ● focusing now") + theme.Muted.Render("  r: refresh")
	case options.CanConvert:
		return theme.Muted.Render(fmt.Sprintf(" enter: start focus (%d min already tracked)  r: refresh", options.QuickTrackMinutes))
	case options.CanStartFocus:
		return theme.Muted.Render(" enter: start focus  r: refresh")
	case options.Blocked:
		return theme.Muted.Render(" a focus session is already running  r: refresh")
	}
	return theme.Muted.Render(" r: refresh")
}

func (m Model) options(session plannerdto.SessionOutput) trackingdto.OptionsOutput {
	return m.tracking.Options(trackingdto.OptionsInput{
		SessionID: session.ID,
		TaskID:    session.TaskID,
	})
}

func (m Model) loadSessionsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		from := time.Now().UTC()
		sessions, err := m.schedule.UpcomingSessions(ctx, from, from.AddDate(0, 0, 7))
		return SessionsLoadedMsg{Sessions: sessions, Err: err}
	}
}
