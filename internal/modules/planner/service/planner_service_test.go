package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"studyplan/internal/modules/planner/domain"
	"studyplan/internal/modules/planner/service"
	apperrors "studyplan/internal/platform/errors"
)

var base = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type fakeAPI struct {
	sessions []domain.Session
	tasks    []domain.Task
	err      error

	timerCalls []timerCall
}

type timerCall struct {
	id      string
	minutes int
	status  domain.Status
}

func (a *fakeAPI) ListSessions(context.Context, time.Time, time.Time) ([]domain.Session, error) {
	return a.sessions, a.err
}

func (a *fakeAPI) GetSession(_ context.Context, id string) (domain.Session, error) {
	if a.err != nil {
		return domain.Session{}, a.err
	}
	for _, s := range a.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.Session{}, apperrors.ErrNotFound
}

func (a *fakeAPI) ListTasks(context.Context) ([]domain.Task, error) { return a.tasks, a.err }

func (a *fakeAPI) GetTask(_ context.Context, id string) (domain.Task, error) {
	if a.err != nil {
		return domain.Task{}, a.err
	}
	for _, t := range a.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Task{}, apperrors.ErrNotFound
}

func (a *fakeAPI) UpdateTaskTimer(_ context.Context, id string, minutes int, status domain.Status) (domain.Task, error) {
	if a.err != nil {
		return domain.Task{}, a.err
	}
	a.timerCalls = append(a.timerCalls, timerCall{id: id, minutes: minutes, status: status})
	return domain.Task{ID: id, TimerMinutesSpent: minutes}, nil
}

type fakeProjector struct {
	sessions map[string]domain.Session
	tasks    map[string]domain.Task
	err      error
}

func newFakeProjector() *fakeProjector {
	return &fakeProjector{sessions: map[string]domain.Session{}, tasks: map[string]domain.Task{}}
}

func (p *fakeProjector) UpsertSession(_ context.Context, session domain.Session) error {
	if p.err != nil {
		return p.err
	}
	p.sessions[session.ID] = session
	return nil
}

func (p *fakeProjector) UpsertTask(_ context.Context, task domain.Task) error {
	if p.err != nil {
		return p.err
	}
	p.tasks[task.ID] = task
	return nil
}

func (p *fakeProjector) ListSessions(context.Context, time.Time, time.Time) ([]domain.Session, error) {
	if p.err != nil {
		return nil, p.err
	}
	out := make([]domain.Session, 0, len(p.sessions))
	for _, s := range p.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (p *fakeProjector) ListTasks(context.Context) ([]domain.Task, error) {
	if p.err != nil {
		return nil, p.err
	}
	out := make([]domain.Task, 0, len(p.tasks))
	for _, t := range p.tasks {
		out = append(out, t)
	}
	return out, nil
}

func (p *fakeProjector) GetSession(_ context.Context, id string) (domain.Session, error) {
	if s, ok := p.sessions[id]; ok {
		return s, nil
	}
	return domain.Session{}, apperrors.ErrNotFound
}

func (p *fakeProjector) GetTask(_ context.Context, id string) (domain.Task, error) {
	if t, ok := p.tasks[id]; ok {
		return t, nil
	}
	return domain.Task{}, apperrors.ErrNotFound
}

func TestUpcomingSessionsProjectsOnTheWayThrough(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{sessions: []domain.Session{{ID: "ses-1", Focus: "algebra", StartTime: base}}}
	projector := newFakeProjector()
	svc := service.NewPlannerService(api, projector)

	sessions, err := svc.UpcomingSessions(context.Background(), base, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d", len(sessions))
	}
	if _, ok := projector.sessions["ses-1"]; !ok {
		t.Fatal("session not projected")
	}
}

func TestUpcomingSessionsFallsBackToProjection(t *testing.T) {
	t.Parallel()

	projector := newFakeProjector()
	projector.sessions["ses-1"] = domain.Session{ID: "ses-1", Focus: "algebra"}
	svc := service.NewPlannerService(&fakeAPI{err: errors.New("connection refused")}, projector)

	sessions, err := svc.UpcomingSessions(context.Background(), base, base.Add(time.Hour))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 1 || sessions[0].ID != "ses-1" {
		t.Fatalf("sessions = %v", sessions)
	}
}

func TestUpcomingSessionsBothSidesDown(t *testing.T) {
	t.Parallel()

	projector := newFakeProjector()
	projector.err = errors.New("no such table")
	svc := service.NewPlannerService(&fakeAPI{err: errors.New("connection refused")}, projector)

	_, err := svc.UpcomingSessions(context.Background(), base, base.Add(time.Hour))
	if !errors.Is(err, apperrors.ErrUnreachable) {
		t.Fatalf("err = %v, want ErrUnreachable", err)
	}
}

func TestListTasksFallsBackToProjection(t *testing.T) {
	t.Parallel()

	projector := newFakeProjector()
	projector.tasks["task-1"] = domain.Task{ID: "task-1", Title: "readings"}
	svc := service.NewPlannerService(&fakeAPI{err: errors.New("timeout")}, projector)

	tasks, err := svc.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "task-1" {
		t.Fatalf("tasks = %v", tasks)
	}
}

func TestAddTaskTimeWritesRemoteFirst(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	projector := newFakeProjector()
	svc := service.NewPlannerService(api, projector)

	task, err := svc.AddTaskTime(context.Background(), "task-1", 25, domain.StatusInProgress)
	if err != nil {
		t.Fatalf("add time: %v", err)
	}
	if len(api.timerCalls) != 1 {
		t.Fatalf("timer calls = %d", len(api.timerCalls))
	}
	call := api.timerCalls[0]
	if call.id != "task-1" || call.minutes != 25 || call.status != domain.StatusInProgress {
		t.Fatalf("call = %+v", call)
	}
	if _, ok := projector.tasks[task.ID]; !ok {
		t.Fatal("task not projected after write")
	}
}

func TestAddTaskTimeNeverProjectsOnRemoteFailure(t *testing.T) {
	t.Parallel()

	projector := newFakeProjector()
	svc := service.NewPlannerService(&fakeAPI{err: errors.New("500")}, projector)

	if _, err := svc.AddTaskTime(context.Background(), "task-1", 25, ""); err == nil {
		t.Fatal("expected error")
	}
	if len(projector.tasks) != 0 {
		t.Fatal("projection written despite remote failure")
	}
}

func TestAddTaskTimeValidation(t *testing.T) {
	t.Parallel()

	svc := service.NewPlannerService(&fakeAPI{}, nil)

	if _, err := svc.AddTaskTime(context.Background(), "", 5, ""); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("empty id: %v", err)
	}
	if _, err := svc.AddTaskTime(context.Background(), "task-1", -1, ""); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("negative minutes: %v", err)
	}
	if _, err := svc.AddTaskTime(context.Background(), "task-1", 5, "doing"); err == nil {
		t.Fatal("unknown status accepted")
	}
}

func TestGetTaskReadsThroughAndFallsBack(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{tasks: []domain.Task{{ID: "task-1", Title: "readings"}}}
	projector := newFakeProjector()
	svc := service.NewPlannerService(api, projector)

	if _, err := svc.GetTask(context.Background(), "task-1"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, ok := projector.tasks["task-1"]; !ok {
		t.Fatal("task not projected")
	}

	// The projection now answers even with the API gone.
	api.err = errors.New("connection refused")
	task, err := svc.GetTask(context.Background(), "task-1")
	if err != nil {
		t.Fatalf("offline get: %v", err)
	}
	if task.Title != "readings" {
		t.Fatalf("task = %+v", task)
	}
}
