package in

import (
	"context"
	"time"

	"studyplan/internal/modules/quicktrack/dto"
)

type Usecase interface {
	Start(ctx context.Context, taskID string) (dto.TimerOutput, error)
	Stop(ctx context.Context, taskID string, save bool) (dto.StopOutput, error)
	IsActive(taskID string) bool
	Elapsed(taskID string) int
	StartedAt(taskID string) (time.Time, bool)
	Snapshot() []dto.TimerOutput
	Tick(now time.Time)
}
