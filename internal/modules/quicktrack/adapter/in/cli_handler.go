package in

import (
	"context"

	"studyplan/internal/modules/quicktrack/dto"
	quicktrackin "studyplan/internal/modules/quicktrack/port/in"
)

type CLIHandler struct {
	usecase quicktrackin.Usecase
}

func NewCLIHandler(usecase quicktrackin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, taskID string) (dto.TimerOutput, error) {
	return h.usecase.Start(ctx, taskID)
}

func (h CLIHandler) Stop(ctx context.Context, taskID string, save bool) (dto.StopOutput, error) {
	return h.usecase.Stop(ctx, taskID, save)
}

func (h CLIHandler) List(_ context.Context) []dto.TimerOutput {
	return h.usecase.Snapshot()
}
