package domain

import "time"

type Phase string

const (
	PhaseNone  Phase = "none"
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// SessionRef is the scheduled session a focus run is tied to.
type SessionRef struct {
	ID        string
	TaskID    string
	SubjectID string
	Focus     string
	StartTime time.Time
	EndTime   time.Time
}

// ScheduledSpan is the planned work budget before any quick-track credit.
func (r SessionRef) ScheduledSpan() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

type TaskRef struct {
	ID    string
	Title string
}

type SubjectRef struct {
	ID   string
	Name string
}

// TickEvent reports what a tick pass did beyond refreshing the countdown.
type TickEvent int

const (
	TickNone TickEvent = iota
	TickBreakStarted
	TickWorkStarted
	TickCompleted
)

// State is the single live focus-session record. All mutation goes through
// the methods below; the tick pass is the only writer of Remaining outside
// explicit transitions. Illegal transitions are silent no-ops so out-of-order
// calls cannot corrupt the machine.
type State struct {
	Session *SessionRef
	Task    *TaskRef
	Subject *SubjectRef

	Active bool
	Paused bool

	// BeganAt is the wall-clock start of the whole run, kept for the log.
	BeganAt time.Time

	// StartedAt anchors the current unpaused run; Resume advances it by the
	// pause span so paused time is excluded exactly once.
	StartedAt time.Time
	PausedAt  time.Time

	// Duration is the budget of the current phase only. Work phases restart
	// from the scheduled session span, break phases from the configured
	// break length, so extending one phase never leaks into the next.
	Duration  time.Duration
	Remaining int

	// Accrued collects the budgets of completed work phases. Together with
	// PhaseElapsed it yields the focused time to persist on stop.
	Accrued time.Duration

	// QuickTrackCredit is carried for display; it was already subtracted
	// from the first work budget at start.
	QuickTrackCredit time.Duration

	PomodoroOn bool
	Phase      Phase
	Round      int
}

// RemainingSeconds is the shared countdown primitive: whole seconds left of
// the budget, frozen at pausedAt while a pause is in effect, never negative.
func RemainingSeconds(duration time.Duration, startedAt, pausedAt, now time.Time) int {
	ref := now
	if !pausedAt.IsZero() {
		ref = pausedAt
	}
	left := duration - ref.Sub(startedAt)
	if left <= 0 {
		return 0
	}
	return int(left / time.Second)
}

// PhaseElapsed is the unpaused time spent in the current phase, capped at its
// budget. Re-anchoring on resume makes the plain subtraction correct.
func (s *State) PhaseElapsed(now time.Time) time.Duration {
	if !s.Active {
		return 0
	}
	ref := now
	if s.Paused {
		ref = s.PausedAt
	}
	elapsed := ref.Sub(s.StartedAt)
	if elapsed < 0 {
		return 0
	}
	if elapsed > s.Duration {
		return s.Duration
	}
	return elapsed
}

// Start enters the active work state. The budget is the scheduled span minus
// any quick-track credit, clamped at zero. A no-op while already active.
func (s *State) Start(session SessionRef, task *TaskRef, subject *SubjectRef, credit time.Duration, now time.Time) {
	if s.Active {
		return
	}
	budget := session.ScheduledSpan() - credit
	if budget < 0 {
		budget = 0
	}
	ref := session
	*s = State{
		Session:          &ref,
		Task:             task,
		Subject:          subject,
		Active:           true,
		BeganAt:          now,
		StartedAt:        now,
		Duration:         budget,
		Remaining:        int(budget / time.Second),
		QuickTrackCredit: credit,
		Phase:            PhaseNone,
	}
}

func (s *State) Pause(now time.Time) {
	if !s.Active || s.Paused {
		return
	}
	s.Paused = true
	s.PausedAt = now
	s.Remaining = RemainingSeconds(s.Duration, s.StartedAt, s.PausedAt, now)
}

func (s *State) Resume(now time.Time) {
	if !s.Active || !s.Paused {
		return
	}
	s.StartedAt = s.StartedAt.Add(now.Sub(s.PausedAt))
	s.Paused = false
	s.PausedAt = time.Time{}
}

// Extend adds whole minutes to the current phase budget and the cached
// countdown without re-anchoring.
func (s *State) Extend(minutes int, _ time.Time) {
	if !s.Active || minutes <= 0 {
		return
	}
	s.Duration += time.Duration(minutes) * time.Minute
	s.Remaining += minutes * 60
}

// TogglePomodoro overlays or clears the work/break cycle on a running
// session. Enabling with no phase set begins the first work round; disabling
// clears the phase but leaves the countdown untouched.
func (s *State) TogglePomodoro() {
	if !s.Active {
		return
	}
	if s.PomodoroOn {
		s.PomodoroOn = false
		s.Phase = PhaseNone
		return
	}
	s.PomodoroOn = true
	if s.Phase == PhaseNone {
		s.Phase = PhaseWork
		if s.Round == 0 {
			s.Round = 1
		}
	}
}

// Stop resets to idle in full. Terminal from any state.
func (s *State) Stop() {
	*s = State{}
}

// Tick refreshes the countdown and, when the Pomodoro overlay is on and the
// budget ran out, advances the phase. The advance is evaluated once per pass
// and every switch re-anchors with a fresh budget, so a countdown pinned at
// zero cannot advance twice. On completion (final break over) it returns the
// accrued work time, captured before the state resets.
func (s *State) Tick(now time.Time, breakBudget time.Duration, rounds int) (TickEvent, time.Duration) {
	if !s.Active || s.Paused || s.Duration <= 0 {
		return TickNone, 0
	}
	s.Remaining = RemainingSeconds(s.Duration, s.StartedAt, s.PausedAt, now)
	if !s.PomodoroOn || s.Session == nil || s.Remaining > 0 {
		return TickNone, 0
	}

	switch s.Phase {
	case PhaseWork:
		s.Accrued += s.Duration
		s.Phase = PhaseBreak
		s.Duration = breakBudget
		s.StartedAt = now
		s.Remaining = int(breakBudget / time.Second)
		return TickBreakStarted, 0
	case PhaseBreak:
		if s.Round >= rounds {
			focused := s.Accrued
			s.Stop()
			return TickCompleted, focused
		}
		// The work budget is recomputed from the scheduled session, not
		// from any running total.
		budget := s.Session.ScheduledSpan()
		s.Phase = PhaseWork
		s.Round++
		s.Duration = budget
		s.StartedAt = now
		s.Remaining = int(budget / time.Second)
		return TickWorkStarted, 0
	}
	return TickNone, 0
}

// FocusedTime is the total unpaused work time so far: completed work phases
// plus the current phase when it is not a break.
func (s *State) FocusedTime(now time.Time) time.Duration {
	total := s.Accrued
	if s.Active && s.Phase != PhaseBreak {
		total += s.PhaseElapsed(now)
	}
	return total
}
