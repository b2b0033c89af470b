package out

import (
	"context"
	"time"

	"studyplan/internal/modules/notify/domain"
)

// Notifier is the platform alert facility. Every method is checked
// defensively: an unsupported or unpermitted platform degrades to no-op.
type Notifier interface {
	Supported(ctx context.Context) bool
	PermissionGranted(ctx context.Context) bool
	RequestPermission(ctx context.Context) error
	Notify(ctx context.Context, alert domain.Alert) error
}

// LeaseStore persists the notifier lease in storage shared by all studyplan
// processes. Acquire succeeds iff the stored lease is absent, expired, or
// already held by this holder; success always refreshes the expiry.
type LeaseStore interface {
	Acquire(ctx context.Context, holder string, now time.Time, ttl time.Duration) (bool, error)
	Release(ctx context.Context, holder string) error
}

// NotifiedStore is the volatile dedup record. It lives and dies with the
// process, so a restart may legitimately re-announce a still-upcoming
// session.
type NotifiedStore interface {
	Seen(key string) bool
	Mark(key string)
}

// SettingsStore keeps the durable notifications-enabled flag.
type SettingsStore interface {
	Enabled(ctx context.Context) (bool, error)
	SetEnabled(ctx context.Context, enabled bool) error
}
