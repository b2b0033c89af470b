package usecase

import (
	"context"
	"time"

	"studyplan/internal/modules/planner/domain"
	"studyplan/internal/modules/planner/dto"
	plannerin "studyplan/internal/modules/planner/port/in"
	"studyplan/internal/modules/planner/service"
)

type Interactor struct {
	svc *service.PlannerService
}

func NewInteractor(svc *service.PlannerService) plannerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) UpcomingSessions(ctx context.Context, from, to time.Time) ([]dto.SessionOutput, error) {
	sessions, err := i.svc.UpcomingSessions(ctx, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionOutput, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, sessionOutput(session))
	}
	return out, nil
}

func (i *Interactor) GetSession(ctx context.Context, id string) (dto.SessionOutput, error) {
	session, err := i.svc.GetSession(ctx, id)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return sessionOutput(session), nil
}

func (i *Interactor) ListTasks(ctx context.Context) ([]dto.TaskOutput, error) {
	tasks, err := i.svc.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskOutput, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskOutput(task))
	}
	return out, nil
}

func (i *Interactor) GetTask(ctx context.Context, id string) (dto.TaskOutput, error) {
	task, err := i.svc.GetTask(ctx, id)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return taskOutput(task), nil
}

func (i *Interactor) AddTaskTime(ctx context.Context, input dto.AddTaskTimeInput) (dto.TaskOutput, error) {
	task, err := i.svc.AddTaskTime(ctx, input.TaskID, input.Minutes, domain.Status(input.Status))
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return taskOutput(task), nil
}

func sessionOutput(session domain.Session) dto.SessionOutput {
	return dto.SessionOutput{
		ID:               session.ID,
		TaskID:           session.TaskID,
		SubjectID:        session.SubjectID,
		Focus:            session.Focus,
		StartTime:        session.StartTime,
		EndTime:          session.EndTime,
		Status:           string(session.Status),
		EstimatedMinutes: session.EstimatedMinutes,
	}
}

func taskOutput(task domain.Task) dto.TaskOutput {
	return dto.TaskOutput{
		ID:                task.ID,
		SubjectID:         task.SubjectID,
		Title:             task.Title,
		Status:            string(task.Status),
		EstimatedMinutes:  task.EstimatedMinutes,
		TimerMinutesSpent: task.TimerMinutesSpent,
	}
}
