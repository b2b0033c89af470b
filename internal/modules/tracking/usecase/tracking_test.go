package usecase_test

import (
	"context"
	"testing"
	"time"

	focusdto "studyplan/internal/modules/focus/dto"
	quicktrackdto "studyplan/internal/modules/quicktrack/dto"
	"studyplan/internal/modules/tracking/dto"
	"studyplan/internal/modules/tracking/usecase"
)

type fakeFocus struct {
	state focusdto.StateOutput
}

func (f *fakeFocus) Start(context.Context, focusdto.StartInput) (focusdto.StartOutput, error) {
	return focusdto.StartOutput{}, nil
}
func (f *fakeFocus) Pause() focusdto.StateOutput           { return f.state }
func (f *fakeFocus) Resume() focusdto.StateOutput          { return f.state }
func (f *fakeFocus) PauseOnNavigate() focusdto.StateOutput { return f.state }
func (f *fakeFocus) ResumeOnReturn() focusdto.StateOutput  { return f.state }
func (f *fakeFocus) Extend(int) focusdto.StateOutput       { return f.state }
func (f *fakeFocus) TogglePomodoro() focusdto.StateOutput  { return f.state }
func (f *fakeFocus) Skip(context.Context) (focusdto.StopOutput, error) {
	return focusdto.StopOutput{}, nil
}
func (f *fakeFocus) Stop(context.Context) (focusdto.StopOutput, error) {
	return focusdto.StopOutput{}, nil
}
func (f *fakeFocus) Tick(context.Context) (focusdto.StateOutput, error) { return f.state, nil }
func (f *fakeFocus) State() focusdto.StateOutput                        { return f.state }

type fakeQuickTrack struct {
	active map[string]int
}

func (f *fakeQuickTrack) Start(_ context.Context, taskID string) (quicktrackdto.TimerOutput, error) {
	return quicktrackdto.TimerOutput{TaskID: taskID}, nil
}
func (f *fakeQuickTrack) Stop(_ context.Context, taskID string, save bool) (quicktrackdto.StopOutput, error) {
	return quicktrackdto.StopOutput{TaskID: taskID, Save: save}, nil
}
func (f *fakeQuickTrack) IsActive(taskID string) bool {
	_, ok := f.active[taskID]
	return ok
}
func (f *fakeQuickTrack) Elapsed(taskID string) int { return f.active[taskID] }
func (f *fakeQuickTrack) StartedAt(string) (time.Time, bool) {
	return time.Time{}, false
}
func (f *fakeQuickTrack) Snapshot() []quicktrackdto.TimerOutput { return nil }
func (f *fakeQuickTrack) Tick(time.Time)                        {}

func TestOptionsRowInFocus(t *testing.T) {
	t.Parallel()

	focus := &fakeFocus{state: focusdto.StateOutput{Active: true, SessionID: "ses-1", TaskID: "task-1"}}
	uc := usecase.NewInteractor(focus, &fakeQuickTrack{})

	bySession := uc.Options(dto.OptionsInput{SessionID: "ses-1"})
	if !bySession.InFocus {
		t.Fatalf("session row: %+v", bySession)
	}
	byTask := uc.Options(dto.OptionsInput{TaskID: "task-1", AllowQuickTrack: true})
	if !byTask.InFocus || byTask.CanStartQuickTrack {
		t.Fatalf("task row: %+v", byTask)
	}
}

func TestOptionsQuickTrackRunning(t *testing.T) {
	t.Parallel()

	quicktrack := &fakeQuickTrack{active: map[string]int{"task-1": 12}}

	idle := usecase.NewInteractor(&fakeFocus{}, quicktrack)
	out := idle.Options(dto.OptionsInput{TaskID: "task-1", AllowQuickTrack: true})
	if !out.CanStopQuickTrack || !out.CanConvert {
		t.Fatalf("idle focus: %+v", out)
	}
	if out.QuickTrackMinutes != 12 {
		t.Fatalf("QuickTrackMinutes = %d, want 12", out.QuickTrackMinutes)
	}

	// With another focus session running the timer can stop but not convert.
	busy := usecase.NewInteractor(&fakeFocus{state: focusdto.StateOutput{Active: true, SessionID: "ses-9"}}, quicktrack)
	out = busy.Options(dto.OptionsInput{TaskID: "task-1", AllowQuickTrack: true})
	if !out.CanStopQuickTrack || out.CanConvert {
		t.Fatalf("busy focus: %+v", out)
	}
}

func TestOptionsStartable(t *testing.T) {
	t.Parallel()

	uc := usecase.NewInteractor(&fakeFocus{}, &fakeQuickTrack{})

	out := uc.Options(dto.OptionsInput{TaskID: "task-1", SessionID: "ses-1", AllowQuickTrack: true})
	if !out.CanStartQuickTrack || !out.CanStartFocus || out.Blocked {
		t.Fatalf("out = %+v", out)
	}

	// Session-only rows never offer quick-track.
	out = uc.Options(dto.OptionsInput{SessionID: "ses-1"})
	if out.CanStartQuickTrack || !out.CanStartFocus {
		t.Fatalf("session-only row: %+v", out)
	}
}

func TestOptionsBlockedByActiveFocus(t *testing.T) {
	t.Parallel()

	focus := &fakeFocus{state: focusdto.StateOutput{Active: true, SessionID: "ses-9", TaskID: "task-9"}}
	uc := usecase.NewInteractor(focus, &fakeQuickTrack{})

	out := uc.Options(dto.OptionsInput{SessionID: "ses-1"})
	if out.CanStartFocus || !out.Blocked {
		t.Fatalf("out = %+v", out)
	}

	// A task row may still quick-track while an unrelated focus session runs.
	out = uc.Options(dto.OptionsInput{TaskID: "task-1", AllowQuickTrack: true})
	if !out.CanStartQuickTrack || out.Blocked {
		t.Fatalf("task row: %+v", out)
	}
}
