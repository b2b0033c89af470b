package in

import (
	"context"

	"studyplan/internal/modules/notify/dto"
)

type Usecase interface {
	Enable(ctx context.Context) error
	Disable(ctx context.Context) error
	Status(ctx context.Context) (dto.StatusOutput, error)
	// ShouldPoll is the single gate for running the poll at all: the
	// durable enabled flag plus platform support.
	ShouldPoll(ctx context.Context) bool
	PollOnce(ctx context.Context) (dto.PollOutput, error)
	Run(ctx context.Context) error
}
