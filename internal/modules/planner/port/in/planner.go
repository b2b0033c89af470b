package in

import (
	"context"
	"time"

	"studyplan/internal/modules/planner/dto"
)

type Usecase interface {
	UpcomingSessions(ctx context.Context, from, to time.Time) ([]dto.SessionOutput, error)
	GetSession(ctx context.Context, id string) (dto.SessionOutput, error)
	ListTasks(ctx context.Context) ([]dto.TaskOutput, error)
	GetTask(ctx context.Context, id string) (dto.TaskOutput, error)
	AddTaskTime(ctx context.Context, input dto.AddTaskTimeInput) (dto.TaskOutput, error)
}
