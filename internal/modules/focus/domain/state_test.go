package domain_test

import (
	"testing"
	"time"

	"studyplan/internal/modules/focus/domain"
)

var base = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func sessionRef(minutes int) domain.SessionRef {
	return domain.SessionRef{
		ID:        "ses-1",
		TaskID:    "task-1",
		Focus:     "algebra review",
		StartTime: base,
		EndTime:   base.Add(time.Duration(minutes) * time.Minute),
	}
}

func TestRemainingSeconds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		duration time.Duration
		started  time.Time
		paused   time.Time
		now      time.Time
		want     int
	}{
		{"fresh", 25 * time.Minute, base, time.Time{}, base, 1500},
		{"partway", 25 * time.Minute, base, time.Time{}, base.Add(10 * time.Minute), 900},
		{"frozen at pause", 25 * time.Minute, base, base.Add(5 * time.Minute), base.Add(20 * time.Minute), 1200},
		{"expired clamps", 25 * time.Minute, base, time.Time{}, base.Add(30 * time.Minute), 0},
		{"subsecond floors", 25 * time.Minute, base, time.Time{}, base.Add(500 * time.Millisecond), 1499},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := domain.RemainingSeconds(tt.duration, tt.started, tt.paused, tt.now)
			if got != tt.want {
				t.Fatalf("RemainingSeconds = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStartSubtractsQuickTrackCredit(t *testing.T) {
	t.Parallel()

	s := domain.State{}
	s.Start(sessionRef(60), nil, nil, 20*time.Minute, base)

	if !s.Active {
		t.Fatal("expected active state")
	}
	if s.Duration != 40*time.Minute {
		t.Fatalf("Duration = %v, want 40m", s.Duration)
	}
	if s.Remaining != 2400 {
		t.Fatalf("Remaining = %d, want 2400", s.Remaining)
	}
	if s.QuickTrackCredit != 20*time.Minute {
		t.Fatalf("QuickTrackCredit = %v", s.QuickTrackCredit)
	}
}

func TestStartCreditExceedingSpanClampsToZero(t *testing.T) {
	t.Parallel()

	s := domain.State{}
	s.Start(sessionRef(30), nil, nil, 45*time.Minute, base)

	if s.Duration != 0 || s.Remaining != 0 {
		t.Fatalf("Duration = %v Remaining = %d, want zero budget", s.Duration, s.Remaining)
	}
}

func TestStartWhileActiveIsNoOp(t *testing.T) {
	t.Parallel()

	s := domain.State{}
	s.Start(sessionRef(60), nil, nil, 0, base)
	s.Start(sessionRef(30), nil, nil, 0, base.Add(time.Minute))

	if s.Session.ID != "ses-1" || s.Duration != 60*time.Minute {
		t.Fatalf("second start mutated state: %+v", s)
	}
}

func TestPauseResumeExcludesPausedTimeOnce(t *testing.T) {
	t.Parallel()

	s := domain.State{}
	s.Start(sessionRef(25), nil, nil, 0, base)

	s.Pause(base.Add(10 * time.Minute))
	if !s.Paused || s.Remaining != 900 {
		t.Fatalf("after pause Remaining = %d, want 900", s.Remaining)
	}

	// A long pause must not consume budget.
	s.Resume(base.Add(40 * time.Minute))
	if s.Paused {
		t.Fatal("still paused after resume")
	}
	got := domain.RemainingSeconds(s.Duration, s.StartedAt, s.PausedAt, base.Add(45*time.Minute))
	if got != 600 {
		t.Fatalf("Remaining after resume+5m = %d, want 600", got)
	}
}

func TestPauseResumeIllegalTransitionsAreNoOps(t *testing.T) {
	t.Parallel()

	s := domain.State{}
	s.Pause(base)
	if s.Paused {
		t.Fatal("pause on idle state took effect")
	}

	s.Start(sessionRef(25), nil, nil, 0, base)
	s.Resume(base.Add(time.Minute))
	if s.Paused || s.StartedAt != base {
		t.Fatal("resume on running state re-anchored")
	}

	s.Pause(base.Add(2 * time.Minute))
	remaining := s.Remaining
	s.Pause(base.Add(10 * time.Minute))
	if s.Remaining != remaining {
		t.Fatal("second pause moved the freeze point")
	}
}

func TestExtendAddsToCurrentPhaseOnly(t *testing.T) {
	t.Parallel()

	s := domain.State{}
	s.Start(sessionRef(25), nil, nil, 0, base)
	s.Extend(10, base.Add(time.Minute))

	if s.Duration != 35*time.Minute {
		t.Fatalf("Duration = %v, want 35m", s.Duration)
	}
	got := domain.RemainingSeconds(s.Duration, s.StartedAt, s.PausedAt, base.Add(time.Minute))
	if got != 34*60 {
		t.Fatalf("Remaining = %d, want %d", got, 34*60)
	}

	s.Extend(0, base)
	s.Extend(-5, base)
	if s.Duration != 35*time.Minute {
		t.Fatal("non-positive extend took effect")
	}
}

func TestPomodoroFullCycle(t *testing.T) {
	t.Parallel()

	const rounds = 4
	breakBudget := 5 * time.Minute
	span := 25 * time.Minute

	s := domain.State{}
	s.Start(sessionRef(25), nil, nil, 0, base)
	s.TogglePomodoro()
	if !s.PomodoroOn || s.Phase != domain.PhaseWork || s.Round != 1 {
		t.Fatalf("after toggle: %+v", s)
	}

	now := base
	for round := 1; round <= rounds; round++ {
		now = now.Add(span)
		event, _ := s.Tick(now, breakBudget, rounds)
		if event != domain.TickBreakStarted {
			t.Fatalf("round %d work end: event = %v", round, event)
		}
		if s.Phase != domain.PhaseBreak || s.Duration != breakBudget {
			t.Fatalf("round %d break state: %+v", round, s)
		}

		now = now.Add(breakBudget)
		event, focused := s.Tick(now, breakBudget, rounds)
		if round < rounds {
			if event != domain.TickWorkStarted {
				t.Fatalf("round %d break end: event = %v", round, event)
			}
			if s.Round != round+1 || s.Duration != span {
				t.Fatalf("round %d next work: %+v", round, s)
			}
			continue
		}
		if event != domain.TickCompleted {
			t.Fatalf("final break end: event = %v", event)
		}
		if focused != 4*span {
			t.Fatalf("focused = %v, want %v", focused, 4*span)
		}
		if s.Active {
			t.Fatal("state still active after completion")
		}
	}
}

func TestTickDoesNotAdvanceTwiceAtZero(t *testing.T) {
	t.Parallel()

	s := domain.State{}
	s.Start(sessionRef(25), nil, nil, 0, base)
	s.TogglePomodoro()

	now := base.Add(25 * time.Minute)
	if event, _ := s.Tick(now, 5*time.Minute, 4); event != domain.TickBreakStarted {
		t.Fatal("expected break start")
	}
	// Immediately ticking again must stay in the fresh break.
	if event, _ := s.Tick(now.Add(time.Second), 5*time.Minute, 4); event != domain.TickNone {
		t.Fatal("phase advanced twice off one expiry")
	}
}

func TestTickWithoutPomodoroPinsAtZero(t *testing.T) {
	t.Parallel()

	s := domain.State{}
	s.Start(sessionRef(25), nil, nil, 0, base)

	event, _ := s.Tick(base.Add(time.Hour), 5*time.Minute, 4)
	if event != domain.TickNone {
		t.Fatalf("event = %v, want none", event)
	}
	if !s.Active || s.Remaining != 0 {
		t.Fatalf("state after overrun: active=%t remaining=%d", s.Active, s.Remaining)
	}
}

func TestTickWhilePausedIsFrozen(t *testing.T) {
	t.Parallel()

	s := domain.State{}
	s.Start(sessionRef(25), nil, nil, 0, base)
	s.Pause(base.Add(5 * time.Minute))

	before := s.Remaining
	s.Tick(base.Add(20*time.Minute), 5*time.Minute, 4)
	if s.Remaining != before {
		t.Fatalf("Remaining moved while paused: %d -> %d", before, s.Remaining)
	}
}

func TestFocusedTimeAcrossPhases(t *testing.T) {
	t.Parallel()

	s := domain.State{}
	s.Start(sessionRef(25), nil, nil, 0, base)
	s.TogglePomodoro()

	now := base.Add(25 * time.Minute)
	s.Tick(now, 5*time.Minute, 4)

	// During the break the focused total holds at the completed work phase.
	if got := s.FocusedTime(now.Add(2 * time.Minute)); got != 25*time.Minute {
		t.Fatalf("FocusedTime during break = %v, want 25m", got)
	}

	now = now.Add(5 * time.Minute)
	s.Tick(now, 5*time.Minute, 4)
	if got := s.FocusedTime(now.Add(10 * time.Minute)); got != 35*time.Minute {
		t.Fatalf("FocusedTime in round 2 = %v, want 35m", got)
	}
}

func TestTogglePomodoroOffKeepsCountdown(t *testing.T) {
	t.Parallel()

	s := domain.State{}
	s.Start(sessionRef(25), nil, nil, 0, base)
	s.TogglePomodoro()
	s.Extend(5, base)
	s.TogglePomodoro()

	if s.PomodoroOn || s.Phase != domain.PhaseNone {
		t.Fatalf("after toggle off: %+v", s)
	}
	if s.Duration != 30*time.Minute {
		t.Fatal("toggle off touched the budget")
	}
}
