package service

import (
	"sync"
	"time"

	"studyplan/internal/modules/focus/domain"
	"studyplan/internal/platform/clock"
)

// TickResult carries what a tick pass produced. Completed holds the pre-reset
// snapshot when the Pomodoro cycle exhausted its final round.
type TickResult struct {
	Event     domain.TickEvent
	State     domain.State
	Completed *Completion
}

type Completion struct {
	Snapshot domain.State
	Focused  time.Duration
	EndedAt  time.Time
}

// FocusService owns the one live focus state. It is the only writer; readers
// get value copies. A mutex guards the handful of goroutines the TUI and
// scheduler run on.
type FocusService struct {
	mu    sync.Mutex
	clock clock.Clock
	state domain.State

	breakBudget time.Duration
	rounds      int
}

func NewFocusService(clk clock.Clock, breakBudget time.Duration, rounds int) *FocusService {
	return &FocusService{clock: clk, breakBudget: breakBudget, rounds: rounds}
}

func (s *FocusService) Start(session domain.SessionRef, task *domain.TaskRef, subject *domain.SubjectRef, credit time.Duration) domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Start(session, task, subject, credit, s.clock.Now())
	return s.state
}

func (s *FocusService) Pause() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Pause(s.clock.Now())
	return s.state
}

func (s *FocusService) Resume() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Resume(s.clock.Now())
	return s.state
}

func (s *FocusService) Extend(minutes int) domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Extend(minutes, s.clock.Now())
	return s.state
}

func (s *FocusService) TogglePomodoro() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.TogglePomodoro()
	return s.state
}

// Stop tears the session down and reports the pre-reset snapshot along with
// the focused time, so the caller can persist both.
func (s *FocusService) Stop() (domain.State, time.Duration, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	snapshot := s.state
	focused := s.state.FocusedTime(now)
	s.state.Stop()
	return snapshot, focused, now
}

// Tick runs one pass of the countdown refresh and phase-advance evaluation.
func (s *FocusService) Tick() TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	snapshot := s.state
	event, focused := s.state.Tick(now, s.breakBudget, s.rounds)
	result := TickResult{Event: event, State: s.state}
	if event == domain.TickCompleted {
		result.Completed = &Completion{Snapshot: snapshot, Focused: focused, EndedAt: now}
	}
	return result
}

func (s *FocusService) State() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Remaining reads the countdown live without mutating the cached value.
func (s *FocusService) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Active {
		return 0
	}
	return domain.RemainingSeconds(s.state.Duration, s.state.StartedAt, s.state.PausedAt, s.clock.Now())
}
