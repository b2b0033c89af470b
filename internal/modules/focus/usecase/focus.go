package usecase

import (
	"context"
	"time"

	"studyplan/internal/modules/focus/domain"
	"studyplan/internal/modules/focus/dto"
	focusin "studyplan/internal/modules/focus/port/in"
	focusout "studyplan/internal/modules/focus/port/out"
	"studyplan/internal/modules/focus/service"
	plannerdto "studyplan/internal/modules/planner/dto"
	plannerin "studyplan/internal/modules/planner/port/in"
	quicktrackin "studyplan/internal/modules/quicktrack/port/in"
	"studyplan/internal/platform/clock"
	apperrors "studyplan/internal/platform/errors"
	"studyplan/internal/platform/id"
)

// Interactor orchestrates the focus engine against its collaborators: the
// planner (session lookup, task timer writes), the quick-track store
// (conversion), and the session-log journal.
type Interactor struct {
	svc        *service.FocusService
	planner    plannerin.Usecase
	quicktrack quicktrackin.Usecase
	logs       focusout.LogStore
	clock      clock.Clock
	idGen      id.Generator
}

func NewInteractor(
	svc *service.FocusService,
	planner plannerin.Usecase,
	quicktrack quicktrackin.Usecase,
	logs focusout.LogStore,
	clk clock.Clock,
	idGen id.Generator,
) focusin.Usecase {
	return &Interactor{svc: svc, planner: planner, quicktrack: quicktrack, logs: logs, clock: clk, idGen: idGen}
}

// Start begins a focus session for a scheduled session. When the session's
// task has a live quick-track timer, its elapsed minutes are persisted to the
// task record first, the timer is stopped, and the new session's budget is
// shortened by the same amount, so converted time is neither lost nor
// re-earned. A failed persist leaves the quick-track timer running.
func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error) {
	if input.SessionID == "" {
		return dto.StartOutput{}, apperrors.ErrInvalidInput
	}
	if i.svc.State().Active {
		return dto.StartOutput{}, apperrors.ErrFocusActive
	}

	session, err := i.planner.GetSession(ctx, input.SessionID)
	if err != nil {
		return dto.StartOutput{}, err
	}

	var taskRef *domain.TaskRef
	if session.TaskID != "" {
		if task, taskErr := i.planner.GetTask(ctx, session.TaskID); taskErr == nil {
			taskRef = &domain.TaskRef{ID: task.ID, Title: task.Title}
		} else {
			taskRef = &domain.TaskRef{ID: session.TaskID}
		}
	}
	var subjectRef *domain.SubjectRef
	if session.SubjectID != "" {
		subjectRef = &domain.SubjectRef{ID: session.SubjectID}
	}

	converted := 0
	if i.quicktrack != nil && session.TaskID != "" {
		if startedAt, active := i.quicktrack.StartedAt(session.TaskID); active {
			converted = elapsedMinutes(startedAt, i.clock.Now())
			_, err := i.planner.AddTaskTime(ctx, plannerdto.AddTaskTimeInput{
				TaskID:  session.TaskID,
				Minutes: converted,
				Status:  "in_progress",
			})
			if err != nil {
				return dto.StartOutput{}, err
			}
			if _, err := i.quicktrack.Stop(ctx, session.TaskID, false); err != nil {
				return dto.StartOutput{}, err
			}
		}
	}

	state := i.svc.Start(domain.SessionRef{
		ID:        session.ID,
		TaskID:    session.TaskID,
		SubjectID: session.SubjectID,
		Focus:     session.Focus,
		StartTime: session.StartTime,
		EndTime:   session.EndTime,
	}, taskRef, subjectRef, time.Duration(converted)*time.Minute)

	return dto.StartOutput{State: stateOutput(state), ConvertedMinutes: converted}, nil
}

func (i *Interactor) Pause() dto.StateOutput  { return stateOutput(i.svc.Pause()) }
func (i *Interactor) Resume() dto.StateOutput { return stateOutput(i.svc.Resume()) }

// PauseOnNavigate and ResumeOnReturn share the pause/resume transitions but
// stay separate entry points so a host UI can auto-pause without conflating
// it with a manual pause.
func (i *Interactor) PauseOnNavigate() dto.StateOutput { return stateOutput(i.svc.Pause()) }
func (i *Interactor) ResumeOnReturn() dto.StateOutput  { return stateOutput(i.svc.Resume()) }

func (i *Interactor) Extend(minutes int) dto.StateOutput {
	return stateOutput(i.svc.Extend(minutes))
}

func (i *Interactor) TogglePomodoro() dto.StateOutput {
	return stateOutput(i.svc.TogglePomodoro())
}

func (i *Interactor) Skip(ctx context.Context) (dto.StopOutput, error) {
	return i.finish(ctx, "skipped")
}

func (i *Interactor) Stop(ctx context.Context) (dto.StopOutput, error) {
	return i.finish(ctx, "stopped")
}

// Tick drives one pass of the countdown. When the Pomodoro cycle completes
// on this pass, the finished run is persisted exactly as an explicit stop.
func (i *Interactor) Tick(ctx context.Context) (dto.StateOutput, error) {
	result := i.svc.Tick()
	if result.Completed != nil {
		if _, err := i.record(ctx, result.Completed.Snapshot, result.Completed.Focused, result.Completed.EndedAt, "completed"); err != nil {
			return stateOutput(result.State), err
		}
	}
	return stateOutput(result.State), nil
}

func (i *Interactor) State() dto.StateOutput {
	return stateOutput(i.svc.State())
}

func (i *Interactor) finish(ctx context.Context, outcome string) (dto.StopOutput, error) {
	snapshot, focused, endedAt := i.svc.Stop()
	if !snapshot.Active {
		return dto.StopOutput{State: stateOutput(domain.State{})}, nil
	}
	return i.record(ctx, snapshot, focused, endedAt, outcome)
}

func (i *Interactor) record(ctx context.Context, snapshot domain.State, focused time.Duration, endedAt time.Time, outcome string) (dto.StopOutput, error) {
	minutes := int(focused / time.Minute)

	if snapshot.Session != nil && snapshot.Session.TaskID != "" && i.planner != nil {
		_, err := i.planner.AddTaskTime(ctx, plannerdto.AddTaskTimeInput{
			TaskID:  snapshot.Session.TaskID,
			Minutes: minutes,
		})
		if err != nil {
			return dto.StopOutput{State: stateOutput(domain.State{}), FocusedMinutes: minutes}, err
		}
	}

	path := ""
	if i.logs != nil && snapshot.Session != nil {
		log := domain.SessionLog{
			ID:                i.idGen.New(),
			SessionID:         snapshot.Session.ID,
			Focus:             snapshot.Session.Focus,
			StartedAt:         snapshot.BeganAt,
			EndedAt:           endedAt,
			FocusedMinutes:    minutes,
			QuickTrackMinutes: int(snapshot.QuickTrackCredit / time.Minute),
			PomodoroRounds:    snapshot.Round,
			Outcome:           outcome,
		}
		if snapshot.Task != nil {
			log.TaskID = snapshot.Task.ID
			log.TaskTitle = snapshot.Task.Title
		}
		if snapshot.Subject != nil {
			log.SubjectName = snapshot.Subject.Name
		}
		saved, err := i.logs.Save(ctx, log)
		if err != nil {
			return dto.StopOutput{State: stateOutput(domain.State{}), FocusedMinutes: minutes}, err
		}
		path = saved
	}

	return dto.StopOutput{State: stateOutput(domain.State{}), FocusedMinutes: minutes, LogPath: path}, nil
}

func elapsedMinutes(startedAt, now time.Time) int {
	minutes := int(now.Sub(startedAt) / time.Minute)
	if minutes < 0 {
		return 0
	}
	return minutes
}

func stateOutput(state domain.State) dto.StateOutput {
	out := dto.StateOutput{
		Active:            state.Active,
		Paused:            state.Paused,
		RemainingSeconds:  state.Remaining,
		DurationSeconds:   int(state.Duration / time.Second),
		QuickTrackMinutes: int(state.QuickTrackCredit / time.Minute),
		PomodoroOn:        state.PomodoroOn,
		Phase:             string(state.Phase),
		Round:             state.Round,
	}
	if out.Phase == "" {
		out.Phase = string(domain.PhaseNone)
	}
	if state.Session != nil {
		out.SessionID = state.Session.ID
		out.TaskID = state.Session.TaskID
		out.Focus = state.Session.Focus
		out.StartTime = state.Session.StartTime
		out.EndTime = state.Session.EndTime
	}
	if state.Task != nil {
		out.TaskTitle = state.Task.Title
	}
	if state.Subject != nil {
		out.SubjectName = state.Subject.Name
	}
	return out
}
