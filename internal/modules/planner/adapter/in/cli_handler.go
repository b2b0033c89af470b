package in

import (
	"context"
	"time"

	"studyplan/internal/modules/planner/dto"
	plannerin "studyplan/internal/modules/planner/port/in"
)

type CLIHandler struct {
	usecase plannerin.Usecase
}

func NewCLIHandler(usecase plannerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) UpcomingSessions(ctx context.Context, from, to time.Time) ([]dto.SessionOutput, error) {
	return h.usecase.UpcomingSessions(ctx, from, to)
}

func (h CLIHandler) ListTasks(ctx context.Context) ([]dto.TaskOutput, error) {
	return h.usecase.ListTasks(ctx)
}

func (h CLIHandler) AddTaskTime(ctx context.Context, taskID string, minutes int, status string) (dto.TaskOutput, error) {
	return h.usecase.AddTaskTime(ctx, dto.AddTaskTimeInput{TaskID: taskID, Minutes: minutes, Status: status})
}
