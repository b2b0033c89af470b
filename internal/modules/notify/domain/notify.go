package domain

import (
	"fmt"
	"time"
)

// Lease is the advisory cross-process marker deciding which studyplan
// process may emit alerts. Ownership transfers to whoever last refreshed it
// within the TTL window; a crashed holder is superseded after expiry. It is
// best-effort, not transactional: a brief double-notify window after a crash
// is accepted.
type Lease struct {
	Holder     string    `json:"holder"`
	AcquiredAt time.Time `json:"acquired_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

func (l Lease) Expired(now time.Time) bool {
	return now.After(l.ExpiresAt)
}

func (l Lease) HeldBy(holder string) bool {
	return l.Holder == holder
}

// Alert is one fire-and-forget notification. Tag keys idempotent replacement
// at the platform; dedup correctness lives in the notified set, not here.
type Alert struct {
	Title string
	Body  string
	Tag   string
}

// AlertKey identifies one scheduled session instance, so a rescheduled
// session notifies again but the same instance never does twice.
func AlertKey(sessionID string, startTime time.Time) string {
	return fmt.Sprintf("%s|%s", sessionID, startTime.UTC().Format(time.RFC3339))
}

// InLeadWindow reports whether a session starting at startTime should be
// announced now: at most lead ahead, and not already begun.
func InLeadWindow(startTime, now time.Time, lead time.Duration) bool {
	until := startTime.Sub(now)
	return until >= 0 && until <= lead
}
