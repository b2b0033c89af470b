package out

import (
	"context"

	"studyplan/internal/modules/focus/domain"
)

// LogStore journals finished focus runs.
type LogStore interface {
	Save(ctx context.Context, log domain.SessionLog) (string, error)
}
