package in

import (
	"context"

	"studyplan/internal/modules/focus/dto"
)

// Usecase is the focus engine surface. Transition calls under illegal
// preconditions return the unchanged state rather than an error; only
// operations that touch collaborators (start, stop, tick) can fail.
type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	Pause() dto.StateOutput
	Resume() dto.StateOutput
	PauseOnNavigate() dto.StateOutput
	ResumeOnReturn() dto.StateOutput
	Extend(minutes int) dto.StateOutput
	TogglePomodoro() dto.StateOutput
	Skip(ctx context.Context) (dto.StopOutput, error)
	Stop(ctx context.Context) (dto.StopOutput, error)
	Tick(ctx context.Context) (dto.StateOutput, error)
	State() dto.StateOutput
}
