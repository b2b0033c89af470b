package usecase

import (
	"context"
	"time"

	"studyplan/internal/modules/quicktrack/dto"
	quicktrackin "studyplan/internal/modules/quicktrack/port/in"
	"studyplan/internal/modules/quicktrack/service"
)

type Interactor struct {
	svc *service.QuickTrackService
}

func NewInteractor(svc *service.QuickTrackService) quicktrackin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(ctx context.Context, taskID string) (dto.TimerOutput, error) {
	return i.svc.Start(ctx, taskID)
}

func (i *Interactor) Stop(ctx context.Context, taskID string, save bool) (dto.StopOutput, error) {
	return i.svc.Stop(ctx, taskID, save)
}

func (i *Interactor) IsActive(taskID string) bool { return i.svc.IsActive(taskID) }

func (i *Interactor) Elapsed(taskID string) int { return i.svc.Elapsed(taskID) }

func (i *Interactor) StartedAt(taskID string) (time.Time, bool) { return i.svc.StartedAt(taskID) }

func (i *Interactor) Snapshot() []dto.TimerOutput { return i.svc.Snapshot() }

func (i *Interactor) Tick(now time.Time) { i.svc.Tick(now) }
