package in

import (
	"context"

	"studyplan/internal/modules/focus/dto"
	focusin "studyplan/internal/modules/focus/port/in"
)

// TUIHandler is the focus engine's host-UI surface. The engine lives and
// dies with the process, so this is the adapter the TUI drives every tick.
type TUIHandler struct {
	usecase focusin.Usecase
}

func NewTUIHandler(usecase focusin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Start(ctx context.Context, sessionID string) (dto.StartOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{SessionID: sessionID})
}

func (h TUIHandler) Pause() dto.StateOutput           { return h.usecase.Pause() }
func (h TUIHandler) Resume() dto.StateOutput          { return h.usecase.Resume() }
func (h TUIHandler) PauseOnNavigate() dto.StateOutput { return h.usecase.PauseOnNavigate() }
func (h TUIHandler) ResumeOnReturn() dto.StateOutput  { return h.usecase.ResumeOnReturn() }
func (h TUIHandler) Extend(minutes int) dto.StateOutput {
	return h.usecase.Extend(minutes)
}
func (h TUIHandler) TogglePomodoro() dto.StateOutput { return h.usecase.TogglePomodoro() }

func (h TUIHandler) Skip(ctx context.Context) (dto.StopOutput, error) { return h.usecase.Skip(ctx) }
func (h TUIHandler) Stop(ctx context.Context) (dto.StopOutput, error) { return h.usecase.Stop(ctx) }

func (h TUIHandler) Tick(ctx context.Context) (dto.StateOutput, error) { return h.usecase.Tick(ctx) }
func (h TUIHandler) State() dto.StateOutput                            { return h.usecase.State() }
