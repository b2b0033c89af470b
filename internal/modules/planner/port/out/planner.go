package out

import (
	"context"
	"time"

	"studyplan/internal/modules/planner/domain"
)

// API is the remote planner store.
type API interface {
	ListSessions(ctx context.Context, from, to time.Time) ([]domain.Session, error)
	GetSession(ctx context.Context, id string) (domain.Session, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, id string) (domain.Task, error)
	UpdateTaskTimer(ctx context.Context, id string, addMinutes int, status domain.Status) (domain.Task, error)
}

// Projector maintains the local read model used when the API is unreachable.
type Projector interface {
	UpsertSession(ctx context.Context, session domain.Session) error
	UpsertTask(ctx context.Context, task domain.Task) error
	ListSessions(ctx context.Context, from, to time.Time) ([]domain.Session, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetSession(ctx context.Context, id string) (domain.Session, error)
	GetTask(ctx context.Context, id string) (domain.Task, error)
}
