package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	plannerdto "studyplan/internal/modules/planner/dto"
	quicktrackdto "studyplan/internal/modules/quicktrack/dto"
	trackingdto "studyplan/internal/modules/tracking/dto"
	"studyplan/internal/ui/theme"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type TasksPort interface {
	ListTasks(ctx context.Context) ([]plannerdto.TaskOutput, error)
	AddTaskTime(ctx context.Context, taskID string, minutes int, status string) (plannerdto.TaskOutput, error)
}

type TimerPort interface {
	Start(ctx context.Context, taskID string) (quicktrackdto.TimerOutput, error)
	Stop(ctx context.Context, taskID string, save bool) (quicktrackdto.StopOutput, error)
}

type TrackingPort interface {
	Options(input trackingdto.OptionsInput) trackingdto.OptionsOutput
}

// ─── messages ────────────────────────────────────────────────────────────────

type TasksLoadedMsg struct {
	Tasks []plannerdto.TaskOutput
	Err   error
}

// TimersMsg carries the current quick-track snapshot. The app model sends it
// on every clock tick so elapsed counters stay live.
type TimersMsg struct {
	Timers []quicktrackdto.TimerOutput
}

type TimerStartedMsg struct {
	Out quicktrackdto.TimerOutput
	Err error
}

type TimerStoppedMsg struct {
	Out   quicktrackdto.StopOutput
	Saved bool
	Err   error
}

// ─── list item ───────────────────────────────────────────────────────────────

type taskItem struct {
	task    plannerdto.TaskOutput
	elapsed int
	running bool
}

func (i taskItem) Title() string { return i.task.Title }

func (i taskItem) Description() string {
	base := fmt.Sprintf("%s  tracked %dmin / est %dmin", i.task.Status, i.task.TimerMinutesSpent, i.task.EstimatedMinutes)
	if i.running {
		return base + fmt.Sprintf("  ⏱ %dmin", i.elapsed)
	}
	return base
}

func (i taskItem) FilterValue() string { return i.task.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	tasks    TasksPort
	timers   TimerPort
	tracking TrackingPort

	list    list.Model
	spinner spinner.Model
	loading bool
	running map[string]int
	width   int
	height  int
}

func New(tasks TasksPort, timers TimerPort, tracking TrackingPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Tasks"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		tasks:    tasks,
		timers:   timers,
		tracking: tracking,
		list:     l,
		spinner:  sp,
		loading:  true,
		running:  map[string]int{},
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadTasksCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.height-2)

	case TasksLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Tasks — " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Tasks"
		items := make([]list.Item, len(msg.Tasks))
		for i, t := range msg.Tasks {
			elapsed, running := m.running[t.ID]
			items[i] = taskItem{task: t, elapsed: elapsed, running: running}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case TimersMsg:
		m.running = map[string]int{}
		for _, t := range msg.Timers {
			m.running[t.TaskID] = t.ElapsedMinutes
		}
		m.refreshItems()

	case TimerStartedMsg:
		if msg.Err == nil {
			m.running[msg.Out.TaskID] = msg.Out.ElapsedMinutes
			m.refreshItems()
		}

	case TimerStoppedMsg:
		if msg.Err == nil {
			delete(m.running, msg.Out.TaskID)
			// Re-read tasks so the recorded minutes show up.
			cmds = append(cmds, m.loadTasksCmd())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		item, ok := m.list.SelectedItem().(taskItem)
		if !ok {
			break
		}
		options := m.tracking.Options(trackingdto.OptionsInput{TaskID: item.task.ID, AllowQuickTrack: true})
		switch msg.String() {
		case "t":
			if options.CanStartQuickTrack {
				return m, m.startTimerCmd(item.task.ID)
			}
		case "x":
			if options.CanStopQuickTrack {
				return m, m.stopTimerCmd(item.task.ID, true)
			}
		case "d":
			if options.CanStopQuickTrack {
				return m, m.stopTimerCmd(item.task.ID, false)
			}
		case "r":
			return m, m.loadTasksCmd()
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
			m.spinner.View()+" Loading tasks…")
	}
	hints := m.renderHints()
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), hints)
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

// renderHints shows only the legal actions for the selected row.
func (m Model) renderHints() string {
	item, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return theme.Muted.Render(" r: refresh")
	}
	options := m.tracking.Options(trackingdto.OptionsInput{TaskID: item.task.ID, AllowQuickTrack: true})
	switch {
	case options.InFocus:
		return theme.Hot.Render(" ● in focus") + theme.Muted.Render("  r: refresh")
	case options.CanStopQuickTrack:
		return theme.Muted.Render(fmt.Sprintf(" ⏱ %dmin  x: stop & save  d: discard  r: refresh", options.QuickTrackMinutes))
	case options.CanStartQuickTrack:
		return theme.Muted.Render(" t: track time  r: refresh")
	case options.Blocked:
		return theme.Muted.Render(" another timer is running  r: refresh")
	}
	return theme.Muted.Render(" r: refresh")
}

func (m *Model) refreshItems() {
	items := m.list.Items()
	for idx, raw := range items {
		item, ok := raw.(taskItem)
		if !ok {
			continue
		}
		elapsed, running := m.running[item.task.ID]
		item.elapsed = elapsed
		item.running = running
		items[idx] = item
	}
	m.list.SetItems(items)
}

func (m Model) loadTasksCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		tasks, err := m.tasks.ListTasks(ctx)
		return TasksLoadedMsg{Tasks: tasks, Err: err}
	}
}

func (m Model) startTimerCmd(taskID string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.timers.Start(context.Background(), taskID)
		return TimerStartedMsg{Out: out, Err: err}
	}
}

func (m Model) stopTimerCmd(taskID string, save bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.timers.Stop(context.Background(), taskID, save)
		if err != nil {
			return TimerStoppedMsg{Err: err}
		}
		saved := false
		if out.Save && out.ElapsedMinutes > 0 {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if _, err := m.tasks.AddTaskTime(ctx, out.TaskID, out.ElapsedMinutes, ""); err != nil {
				return TimerStoppedMsg{Out: out, Err: err}
			}
			saved = true
		}
		return TimerStoppedMsg{Out: out, Saved: saved}
	}
}
