package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"studyplan/internal/modules/quicktrack/domain"
	"studyplan/internal/modules/quicktrack/dto"
	quicktrackout "studyplan/internal/modules/quicktrack/port/out"
	"studyplan/internal/platform/clock"
	apperrors "studyplan/internal/platform/errors"
)

// QuickTrackService is the single writer for quick-track state. Every
// structural change is written through the store so an interrupted process
// picks its timers back up on restart.
type QuickTrackService struct {
	mu     sync.Mutex
	clock  clock.Clock
	store  quicktrackout.TimerStore
	timers *domain.Timers
}

func NewQuickTrackService(clk clock.Clock, store quicktrackout.TimerStore) *QuickTrackService {
	svc := &QuickTrackService{clock: clk, store: store, timers: domain.NewTimers()}
	if store != nil {
		// Corrupt or missing state rehydrates as no active timers.
		if active, err := store.Load(context.Background()); err == nil {
			svc.timers.Rehydrate(active, clk.Now())
		}
	}
	return svc
}

func (s *QuickTrackService) Start(ctx context.Context, taskID string) (dto.TimerOutput, error) {
	if taskID == "" {
		return dto.TimerOutput{}, apperrors.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	s.timers.Start(taskID, now)
	if err := s.persist(ctx); err != nil {
		return dto.TimerOutput{}, err
	}
	return dto.TimerOutput{TaskID: taskID, StartedAt: now, ElapsedMinutes: 0}, nil
}

func (s *QuickTrackService) Stop(ctx context.Context, taskID string, save bool) (dto.StopOutput, error) {
	if taskID == "" {
		return dto.StopOutput{}, apperrors.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	minutes := s.timers.Stop(taskID, s.clock.Now())
	if err := s.persist(ctx); err != nil {
		return dto.StopOutput{}, err
	}
	return dto.StopOutput{TaskID: taskID, ElapsedMinutes: minutes, Save: save}, nil
}

func (s *QuickTrackService) IsActive(taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timers.IsActive(taskID)
}

func (s *QuickTrackService) Elapsed(taskID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timers.Elapsed[taskID]
}

func (s *QuickTrackService) StartedAt(taskID string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	startedAt, ok := s.timers.Active[taskID]
	return startedAt, ok
}

func (s *QuickTrackService) Snapshot() []dto.TimerOutput {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]dto.TimerOutput, 0, len(s.timers.Active))
	for taskID, startedAt := range s.timers.Active {
		out = append(out, dto.TimerOutput{
			TaskID:         taskID,
			StartedAt:      startedAt,
			ElapsedMinutes: s.timers.Elapsed[taskID],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TaskID < out[j].TaskID })
	return out
}

// Tick refreshes the elapsed cache for all active timers off one instant.
func (s *QuickTrackService) Tick(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers.Recompute(now)
}

func (s *QuickTrackService) persist(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(ctx, s.timers.Active); err != nil {
		return fmt.Errorf("persist quick-track timers: %w", err)
	}
	return nil
}
