package in

import (
	"context"

	"studyplan/internal/modules/notify/dto"
	notifyin "studyplan/internal/modules/notify/port/in"
)

type CLIHandler struct {
	usecase notifyin.Usecase
}

func NewCLIHandler(usecase notifyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Enable(ctx context.Context) error {
	return h.usecase.Enable(ctx)
}

func (h CLIHandler) Disable(ctx context.Context) error {
	return h.usecase.Disable(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (dto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Run(ctx context.Context) error {
	return h.usecase.Run(ctx)
}
