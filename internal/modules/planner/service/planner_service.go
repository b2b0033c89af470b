package service

import (
	"context"
	"fmt"
	"time"

	"studyplan/internal/modules/planner/domain"
	plannerout "studyplan/internal/modules/planner/port/out"
	apperrors "studyplan/internal/platform/errors"
)

// PlannerService reads through the remote API and keeps the local projection
// fresh as a side effect, so listings keep working while offline.
type PlannerService struct {
	api       plannerout.API
	projector plannerout.Projector
}

func NewPlannerService(api plannerout.API, projector plannerout.Projector) *PlannerService {
	return &PlannerService{api: api, projector: projector}
}

func (s *PlannerService) UpcomingSessions(ctx context.Context, from, to time.Time) ([]domain.Session, error) {
	sessions, err := s.api.ListSessions(ctx, from, to)
	if err != nil {
		if s.projector == nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrUnreachable, err)
		}
		cached, cacheErr := s.projector.ListSessions(ctx, from, to)
		if cacheErr != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrUnreachable, err)
		}
		return cached, nil
	}
	if s.projector != nil {
		for _, session := range sessions {
			if err := s.projector.UpsertSession(ctx, session); err != nil {
				return nil, fmt.Errorf("project session %s: %w", session.ID, err)
			}
		}
	}
	return sessions, nil
}

func (s *PlannerService) GetSession(ctx context.Context, id string) (domain.Session, error) {
	if id == "" {
		return domain.Session{}, apperrors.ErrInvalidInput
	}
	session, err := s.api.GetSession(ctx, id)
	if err != nil {
		if s.projector == nil {
			return domain.Session{}, err
		}
		return s.projector.GetSession(ctx, id)
	}
	if s.projector != nil {
		if err := s.projector.UpsertSession(ctx, session); err != nil {
			return domain.Session{}, fmt.Errorf("project session %s: %w", session.ID, err)
		}
	}
	return session, nil
}

func (s *PlannerService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.api.ListTasks(ctx)
	if err != nil {
		if s.projector == nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrUnreachable, err)
		}
		cached, cacheErr := s.projector.ListTasks(ctx)
		if cacheErr != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrUnreachable, err)
		}
		return cached, nil
	}
	if s.projector != nil {
		for _, task := range tasks {
			if err := s.projector.UpsertTask(ctx, task); err != nil {
				return nil, fmt.Errorf("project task %s: %w", task.ID, err)
			}
		}
	}
	return tasks, nil
}

func (s *PlannerService) GetTask(ctx context.Context, id string) (domain.Task, error) {
	if id == "" {
		return domain.Task{}, apperrors.ErrInvalidInput
	}
	task, err := s.api.GetTask(ctx, id)
	if err != nil {
		if s.projector == nil {
			return domain.Task{}, err
		}
		return s.projector.GetTask(ctx, id)
	}
	if s.projector != nil {
		if err := s.projector.UpsertTask(ctx, task); err != nil {
			return domain.Task{}, fmt.Errorf("project task %s: %w", task.ID, err)
		}
	}
	return task, nil
}

// AddTaskTime adds tracked minutes to a task's running total on the remote
// store. The write must land remotely before the projection is touched, so a
// failed call never fabricates local minutes.
func (s *PlannerService) AddTaskTime(ctx context.Context, id string, minutes int, status domain.Status) (domain.Task, error) {
	if id == "" || minutes < 0 {
		return domain.Task{}, apperrors.ErrInvalidInput
	}
	if status != "" {
		if err := status.Validate(); err != nil {
			return domain.Task{}, err
		}
	}
	task, err := s.api.UpdateTaskTimer(ctx, id, minutes, status)
	if err != nil {
		return domain.Task{}, fmt.Errorf("update task timer: %w", err)
	}
	if s.projector != nil {
		if err := s.projector.UpsertTask(ctx, task); err != nil {
			return domain.Task{}, fmt.Errorf("project task %s: %w", task.ID, err)
		}
	}
	return task, nil
}
