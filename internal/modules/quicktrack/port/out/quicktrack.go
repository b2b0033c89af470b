package out

import (
	"context"
	"time"
)

// TimerStore persists the active quick-track map so timers survive a restart.
// Save rewrites the whole document; an empty map removes it entirely.
type TimerStore interface {
	Save(ctx context.Context, active map[string]time.Time) error
	Load(ctx context.Context) (map[string]time.Time, error)
}
