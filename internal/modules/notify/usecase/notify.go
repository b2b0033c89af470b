package usecase

import (
	"context"
	"time"

	"studyplan/internal/modules/notify/dto"
	notifyin "studyplan/internal/modules/notify/port/in"
	notifyout "studyplan/internal/modules/notify/port/out"
	"studyplan/internal/modules/notify/service"
)

type Interactor struct {
	svc      *service.NotifyService
	notifier notifyout.Notifier
	settings notifyout.SettingsStore
	interval time.Duration
}

func NewInteractor(svc *service.NotifyService, notifier notifyout.Notifier, settings notifyout.SettingsStore, interval time.Duration) notifyin.Usecase {
	return &Interactor{svc: svc, notifier: notifier, settings: settings, interval: interval}
}

// Enable turns the durable flag on and asks the platform for permission when
// it has not been granted yet.
func (i *Interactor) Enable(ctx context.Context) error {
	if err := i.settings.SetEnabled(ctx, true); err != nil {
		return err
	}
	if i.notifier.Supported(ctx) && !i.notifier.PermissionGranted(ctx) {
		return i.notifier.RequestPermission(ctx)
	}
	return nil
}

func (i *Interactor) Disable(ctx context.Context) error {
	return i.settings.SetEnabled(ctx, false)
}

func (i *Interactor) Status(ctx context.Context) (dto.StatusOutput, error) {
	enabled, err := i.settings.Enabled(ctx)
	if err != nil {
		return dto.StatusOutput{}, err
	}
	return dto.StatusOutput{
		Enabled:           enabled,
		Supported:         i.notifier.Supported(ctx),
		PermissionGranted: i.notifier.PermissionGranted(ctx),
	}, nil
}

func (i *Interactor) ShouldPoll(ctx context.Context) bool {
	enabled, err := i.settings.Enabled(ctx)
	if err != nil || !enabled {
		return false
	}
	return i.notifier.Supported(ctx)
}

func (i *Interactor) PollOnce(ctx context.Context) (dto.PollOutput, error) {
	fired, err := i.svc.PollPass(ctx)
	if err != nil {
		return dto.PollOutput{}, err
	}
	return dto.PollOutput{Fired: fired > 0, Count: fired}, nil
}

// Run polls on the configured interval until the context ends. The enabled
// flag is re-read every cycle so a disable from another process takes effect
// without restarting the loop; poll errors are absorbed, the next cycle
// simply tries again.
func (i *Interactor) Run(ctx context.Context) error {
	ticker := time.NewTicker(i.interval)
	defer ticker.Stop()

	for {
		if i.ShouldPoll(ctx) {
			_, _ = i.svc.PollPass(ctx)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
