package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	focusdto "studyplan/internal/modules/focus/dto"
	plannerdto "studyplan/internal/modules/planner/dto"
	quicktrackdto "studyplan/internal/modules/quicktrack/dto"
	trackingdto "studyplan/internal/modules/tracking/dto"
	"studyplan/internal/ui/components"
	"studyplan/internal/ui/theme"
	focusview "studyplan/internal/ui/views/focus"
	scheduleview "studyplan/internal/ui/views/schedule"
	tasksview "studyplan/internal/ui/views/tasks"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type plannerPort interface {
	UpcomingSessions(ctx context.Context, from, to time.Time) ([]plannerdto.SessionOutput, error)
	ListTasks(ctx context.Context) ([]plannerdto.TaskOutput, error)
	AddTaskTime(ctx context.Context, taskID string, minutes int, status string) (plannerdto.TaskOutput, error)
}

type quicktrackPort interface {
	Start(ctx context.Context, taskID string) (quicktrackdto.TimerOutput, error)
	Stop(ctx context.Context, taskID string, save bool) (quicktrackdto.StopOutput, error)
	List(ctx context.Context) []quicktrackdto.TimerOutput
}

type focusPort interface {
	Start(ctx context.Context, sessionID string) (focusdto.StartOutput, error)
	Pause() focusdto.StateOutput
	Resume() focusdto.StateOutput
	PauseOnNavigate() focusdto.StateOutput
	ResumeOnReturn() focusdto.StateOutput
	Extend(minutes int) focusdto.StateOutput
	TogglePomodoro() focusdto.StateOutput
	Skip(ctx context.Context) (focusdto.StopOutput, error)
	Stop(ctx context.Context) (focusdto.StopOutput, error)
	Tick(ctx context.Context) (focusdto.StateOutput, error)
	State() focusdto.StateOutput
}

type trackingPort interface {
	Options(input trackingdto.OptionsInput) trackingdto.OptionsOutput
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabFocus tabID = iota
	tabTasks
	tabSchedule
	tabCount
)

var tabLabels = [tabCount]string{
	"Focus", "Tasks", "Schedule",
}

// ─── async messages ───────────────────────────────────────────────────────────

// tickMsg is the 1 Hz heartbeat that drives the focus countdown and the
// quick-track elapsed displays.
type tickMsg time.Time

type engineTickedMsg struct {
	state  focusdto.StateOutput
	timers []quicktrackdto.TimerOutput
	err    error
}

type focusStartedMsg struct {
	out focusdto.StartOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Enter    key.Binding
	PauseKey key.Binding
	Extend   key.Binding
	Pomodoro key.Binding
	Track    key.Binding
	StopKey  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start focus")),
		PauseKey: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause/resume")),
		Extend:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "+5 min")),
		Pomodoro: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pomodoro")),
		Track:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "track task")),
		StopKey:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter, k.Track},
		{k.PauseKey, k.Extend, k.Pomodoro, k.StopKey},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the shared 1 Hz
// tick, the help overlay, and the command palette. Timer semantics live in
// the port interfaces; rendering is delegated to sub-views.
type Model struct {
	planner    plannerPort
	quicktrack quicktrackPort
	focus      focusPort
	tracking   trackingPort

	focusView    focusview.Model
	tasksView    tasksview.Model
	scheduleView scheduleview.Model

	activeTab  tabID
	keys       keyMap
	help       help.Model
	showHelp   bool
	palette    components.Palette
	wasRunning bool
	status     string
	width      int
	height     int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(planner plannerPort, quicktrack quicktrackPort, focus focusPort, tracking trackingPort) Model {
	return Model{
		planner:      planner,
		quicktrack:   quicktrack,
		focus:        focus,
		tracking:     tracking,
		focusView:    focusview.New(focus),
		tasksView:    tasksview.New(tasksPortBridge{p: planner}, timerPortBridge{p: quicktrack}, tracking),
		scheduleView: scheduleview.New(schedulePortBridge{p: planner}, tracking),
		activeTab:    tabSchedule,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.focusView.Init(),
		m.tasksView.Init(),
		m.scheduleView.Init(),
		m.tickCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open, but the heartbeat must
	// keep flowing so a running countdown does not stall.
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	case tickMsg:
		return m, tea.Batch(m.tickCmd(), m.engineTickCmd())

	case engineTickedMsg:
		if msg.err != nil {
			m.status = "tick: " + msg.err.Error()
		}
		if m.wasRunning && !msg.state.Active {
			// The engine completed a pomodoro cycle on its own.
			m.status = "focus cycle complete"
			cmds = append(cmds, m.scheduleView.Reload())
		}
		m.wasRunning = msg.state.Active
		var fCmd tea.Cmd
		m.focusView, fCmd = m.focusView.Update(focusview.TickedMsg{State: msg.state})
		cmds = append(cmds, fCmd)
		var tCmd tea.Cmd
		m.tasksView, tCmd = m.tasksView.Update(tasksview.TimersMsg{Timers: msg.timers})
		cmds = append(cmds, tCmd)
		return m, tea.Batch(cmds...)

	case scheduleview.StartFocusMsg:
		return m, m.startFocusCmd(msg.SessionID)

	case focusStartedMsg:
		if msg.err != nil {
			m.status = "focus start failed: " + msg.err.Error()
			return m, nil
		}
		m.activeTab = tabFocus
		m.wasRunning = true
		if msg.out.ConvertedMinutes > 0 {
			m.status = fmt.Sprintf("focus started, %d min carried over from tracking", msg.out.ConvertedMinutes)
		} else {
			m.status = "focus started"
		}
		var cmd tea.Cmd
		m.focusView, cmd = m.focusView.Update(focusview.TickedMsg{State: msg.out.State})
		return m, cmd

	case focusview.EndedMsg:
		if msg.Err != nil {
			m.status = "focus " + msg.Outcome + " failed: " + msg.Err.Error()
		} else {
			m.wasRunning = false
			m.status = fmt.Sprintf("focus %s, %d min logged → %s", msg.Outcome, msg.Out.FocusedMinutes, msg.Out.LogPath)
			cmds = append(cmds, m.scheduleView.Reload())
		}
		var cmd tea.Cmd
		m.focusView, cmd = m.focusView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case tasksview.TimerStartedMsg, tasksview.TimerStoppedMsg:
		// Timer lifecycle messages always route home, even if another tab
		// is visible when the async command completes.
		var cmd tea.Cmd
		m.tasksView, cmd = m.tasksView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.switchTab((m.activeTab + 1) % tabCount)
		case "shift+tab":
			m.switchTab((m.activeTab + tabCount - 1) % tabCount)
		case "?":
			m.showHelp = !m.showHelp
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabFocus:
		m.focusView, tabCmd = m.focusView.Update(msg)
	case tabTasks:
		m.tasksView, tabCmd = m.tasksView.Update(msg)
	case tabSchedule:
		m.scheduleView, tabCmd = m.scheduleView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// switchTab moves between tabs and applies the auto-pause rule: leaving the
// Focus tab pauses a running countdown, returning resumes only what the
// navigation itself paused.
func (m *Model) switchTab(next tabID) {
	if next == m.activeTab {
		return
	}
	if m.activeTab == tabFocus {
		m.focus.PauseOnNavigate()
	}
	if next == tabFocus {
		m.focus.ResumeOnReturn()
	}
	m.activeTab = next
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabFocus:
		return m.focusView.View()
	case tabTasks:
		return m.tasksView.View()
	case tabSchedule:
		return m.scheduleView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "studyplan  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	state := m.focus.State()
	if state.Active {
		marker := theme.Running.Render("● " + focusview.FormatCountdown(state.RemainingSeconds))
		if state.Paused {
			marker = theme.Paused.Render("⏸ " + focusview.FormatCountdown(state.RemainingSeconds))
		}
		left = marker + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "focus:start":
		if len(parts) < 2 {
			m.status = "usage: focus:start <session-id>"
			return m, nil
		}
		return m, m.startFocusCmd(parts[1])

	case "focus:pause":
		m.focus.Pause()
		m.status = "paused"

	case "focus:resume":
		m.focus.Resume()
		m.status = "resumed"

	case "focus:extend":
		minutes := 5
		if len(parts) >= 2 {
			if n, err := strconv.Atoi(parts[1]); err == nil {
				minutes = n
			}
		}
		m.focus.Extend(minutes)
		m.status = fmt.Sprintf("extended by %d min", minutes)

	case "focus:pomodoro":
		state := m.focus.TogglePomodoro()
		if state.PomodoroOn {
			m.status = "pomodoro on"
		} else {
			m.status = "pomodoro off"
		}

	case "focus:skip":
		m.activeTab = tabFocus
		return m, func() tea.Msg {
			out, err := m.focus.Skip(context.Background())
			return focusview.EndedMsg{Out: out, Outcome: "skipped", Err: err}
		}

	case "focus:stop":
		m.activeTab = tabFocus
		return m, func() tea.Msg {
			out, err := m.focus.Stop(context.Background())
			return focusview.EndedMsg{Out: out, Outcome: "stopped", Err: err}
		}

	case "track:start":
		if len(parts) < 2 {
			m.status = "usage: track:start <task-id>"
			return m, nil
		}
		taskID := parts[1]
		m.activeTab = tabTasks
		return m, func() tea.Msg {
			out, err := m.quicktrack.Start(context.Background(), taskID)
			return tasksview.TimerStartedMsg{Out: out, Err: err}
		}

	case "track:stop", "track:discard":
		if len(parts) < 2 {
			m.status = "usage: " + parts[0] + " <task-id>"
			return m, nil
		}
		taskID := parts[1]
		save := parts[0] == "track:stop"
		m.activeTab = tabTasks
		return m, m.stopTimerCmd(taskID, save)

	case "refresh":
		return m, tea.Batch(m.scheduleView.Reload(), m.tasksView.Init())

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabTasks:
		return m.tasksView.Filtering()
	case tabSchedule:
		return m.scheduleView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.focusView, _ = m.focusView.Update(sz)
	m.tasksView, _ = m.tasksView.Update(sz)
	m.scheduleView, _ = m.scheduleView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) engineTickCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		state, err := m.focus.Tick(ctx)
		timers := m.quicktrack.List(ctx)
		return engineTickedMsg{state: state, timers: timers, err: err}
	}
}

func (m Model) startFocusCmd(sessionID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		out, err := m.focus.Start(ctx, sessionID)
		return focusStartedMsg{out: out, err: err}
	}
}

func (m Model) stopTimerCmd(taskID string, save bool) tea.Cmd {
	return func() tea.Msg {
		out, err := m.quicktrack.Stop(context.Background(), taskID, save)
		if err != nil {
			return tasksview.TimerStoppedMsg{Err: err}
		}
		saved := false
		if out.Save && out.ElapsedMinutes > 0 {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if _, err := m.planner.AddTaskTime(ctx, out.TaskID, out.ElapsedMinutes, ""); err != nil {
				return tasksview.TimerStoppedMsg{Out: out, Err: err}
			}
			saved = true
		}
		return tasksview.TimerStoppedMsg{Out: out, Saved: saved}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed
// by a specific sub-view.

type tasksPortBridge struct{ p plannerPort }

func (b tasksPortBridge) ListTasks(ctx context.Context) ([]plannerdto.TaskOutput, error) {
	return b.p.ListTasks(ctx)
}
func (b tasksPortBridge) AddTaskTime(ctx context.Context, taskID string, minutes int, status string) (plannerdto.TaskOutput, error) {
	return b.p.AddTaskTime(ctx, taskID, minutes, status)
}

type timerPortBridge struct{ p quicktrackPort }

func (b timerPortBridge) Start(ctx context.Context, taskID string) (quicktrackdto.TimerOutput, error) {
	return b.p.Start(ctx, taskID)
}
func (b timerPortBridge) Stop(ctx context.Context, taskID string, save bool) (quicktrackdto.StopOutput, error) {
	return b.p.Stop(ctx, taskID, save)
}

type schedulePortBridge struct{ p plannerPort }

func (b schedulePortBridge) UpcomingSessions(ctx context.Context, from, to time.Time) ([]plannerdto.SessionOutput, error) {
	return b.p.UpcomingSessions(ctx, from, to)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
