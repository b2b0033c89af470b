package service

import (
	"context"
	"fmt"
	"time"

	"studyplan/internal/modules/notify/domain"
	notifyout "studyplan/internal/modules/notify/port/out"
	plannerin "studyplan/internal/modules/planner/port/in"
	"studyplan/internal/platform/clock"
)

// NotifyService runs the lead-time alert pass. It only ever reads planner
// state; the focus and quick-track containers are never touched from here.
type NotifyService struct {
	clock    clock.Clock
	planner  plannerin.Usecase
	notifier notifyout.Notifier
	leases   notifyout.LeaseStore
	notified notifyout.NotifiedStore

	holder string
	lead   time.Duration
	ttl    time.Duration
}

func NewNotifyService(
	clk clock.Clock,
	planner plannerin.Usecase,
	notifier notifyout.Notifier,
	leases notifyout.LeaseStore,
	notified notifyout.NotifiedStore,
	holder string,
	lead, ttl time.Duration,
) *NotifyService {
	return &NotifyService{
		clock:    clk,
		planner:  planner,
		notifier: notifier,
		leases:   leases,
		notified: notified,
		holder:   holder,
		lead:     lead,
		ttl:      ttl,
	}
}

// PollPass announces every planned session entering the lead window, once
// each. The lease is acquired (or refreshed) before the first alert of a
// pass; if another process holds it, this pass defers entirely. A missed
// alert is not a correctness failure, so notifier errors are discarded — the
// key is marked either way and never retried.
func (s *NotifyService) PollPass(ctx context.Context) (int, error) {
	if !s.notifier.Supported(ctx) || !s.notifier.PermissionGranted(ctx) {
		return 0, nil
	}
	now := s.clock.Now()
	sessions, err := s.planner.UpcomingSessions(ctx, now, now.Add(s.lead))
	if err != nil {
		return 0, fmt.Errorf("list upcoming sessions: %w", err)
	}

	fired := 0
	for _, session := range sessions {
		if session.Status != "planned" {
			continue
		}
		if !domain.InLeadWindow(session.StartTime, now, s.lead) {
			continue
		}
		key := domain.AlertKey(session.ID, session.StartTime)
		if s.notified.Seen(key) {
			continue
		}

		acquired, err := s.leases.Acquire(ctx, s.holder, now, s.ttl)
		if err != nil || !acquired {
			// Another process owns the notifier for this window.
			return fired, nil
		}

		minutes := int(session.StartTime.Sub(now) / time.Minute)
		_ = s.notifier.Notify(ctx, domain.Alert{
			Title: "Study session soon",
			Body:  fmt.Sprintf("%s starts in %d min", session.Focus, minutes),
			Tag:   key,
		})
		s.notified.Mark(key)
		fired++
	}
	return fired, nil
}

func (s *NotifyService) Holder() string { return s.holder }
