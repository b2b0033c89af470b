package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"studyplan/internal/modules/quicktrack/service"
	apperrors "studyplan/internal/platform/errors"
)

var base = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type memStore struct {
	active map[string]time.Time
	saves  int
	err    error
}

func (s *memStore) Save(_ context.Context, active map[string]time.Time) error {
	if s.err != nil {
		return s.err
	}
	s.saves++
	s.active = map[string]time.Time{}
	for k, v := range active {
		s.active[k] = v
	}
	return nil
}

func (s *memStore) Load(context.Context) (map[string]time.Time, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := map[string]time.Time{}
	for k, v := range s.active {
		out[k] = v
	}
	return out, nil
}

func TestStartStopRoundsDownToWholeMinutes(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: base}
	svc := service.NewQuickTrackService(clk, &memStore{})

	if _, err := svc.Start(context.Background(), "task-1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.now = base.Add(90 * time.Second)

	out, err := svc.Stop(context.Background(), "task-1", true)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if out.ElapsedMinutes != 1 {
		t.Fatalf("ElapsedMinutes = %d, want 1", out.ElapsedMinutes)
	}
	if !out.Save {
		t.Fatal("save flag dropped")
	}
	if svc.IsActive("task-1") {
		t.Fatal("timer still active")
	}
}

func TestStopUnknownTaskReturnsZero(t *testing.T) {
	t.Parallel()

	svc := service.NewQuickTrackService(&fakeClock{now: base}, &memStore{})
	out, err := svc.Stop(context.Background(), "task-9", true)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if out.ElapsedMinutes != 0 {
		t.Fatalf("ElapsedMinutes = %d, want 0", out.ElapsedMinutes)
	}
}

func TestStartEmptyTaskIDRejected(t *testing.T) {
	t.Parallel()

	svc := service.NewQuickTrackService(&fakeClock{now: base}, &memStore{})
	_, err := svc.Start(context.Background(), "")
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestRestartRehydratesFromStore(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: base}
	store := &memStore{}
	svc := service.NewQuickTrackService(clk, store)
	if _, err := svc.Start(context.Background(), "task-1"); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Elapsed time keeps accruing across the restart.
	clk2 := &fakeClock{now: base.Add(25 * time.Minute)}
	revived := service.NewQuickTrackService(clk2, store)
	if !revived.IsActive("task-1") {
		t.Fatal("timer lost across restart")
	}
	if got := revived.Elapsed("task-1"); got != 25 {
		t.Fatalf("Elapsed = %d, want 25", got)
	}
}

func TestStartOverwritesExistingTimer(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: base}
	svc := service.NewQuickTrackService(clk, &memStore{})
	if _, err := svc.Start(context.Background(), "task-1"); err != nil {
		t.Fatalf("start: %v", err)
	}

	clk.now = base.Add(30 * time.Minute)
	if _, err := svc.Start(context.Background(), "task-1"); err != nil {
		t.Fatalf("restart: %v", err)
	}

	clk.now = base.Add(35 * time.Minute)
	out, err := svc.Stop(context.Background(), "task-1", false)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
	if out.ElapsedMinutes != 5 {
		t.Fatalf("ElapsedMinutes = %d, want 5 from the fresh anchor", out.ElapsedMinutes)
	}
}

func TestSnapshotSortedAndTicked(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: base}
	svc := service.NewQuickTrackService(clk, &memStore{})
	for _, id := range []string{"task-b", "task-a"} {
		if _, err := svc.Start(context.Background(), id); err != nil {
			t.Fatalf("start %s: %v", id, err)
		}
	}

	svc.Tick(base.Add(3 * time.Minute))
	snapshot := svc.Snapshot()
	if len(snapshot) != 2 {
		t.Fatalf("snapshot len = %d", len(snapshot))
	}
	if snapshot[0].TaskID != "task-a" || snapshot[1].TaskID != "task-b" {
		t.Fatalf("snapshot order: %v, %v", snapshot[0].TaskID, snapshot[1].TaskID)
	}
	if snapshot[0].ElapsedMinutes != 3 {
		t.Fatalf("ElapsedMinutes = %d, want 3", snapshot[0].ElapsedMinutes)
	}
}

func TestIndependentTimersPerTask(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{now: base}
	svc := service.NewQuickTrackService(clk, &memStore{})
	if _, err := svc.Start(context.Background(), "task-1"); err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.now = base.Add(10 * time.Minute)
	if _, err := svc.Start(context.Background(), "task-2"); err != nil {
		t.Fatalf("start: %v", err)
	}

	clk.now = base.Add(30 * time.Minute)
	out1, _ := svc.Stop(context.Background(), "task-1", true)
	out2, _ := svc.Stop(context.Background(), "task-2", true)
	if out1.ElapsedMinutes != 30 || out2.ElapsedMinutes != 20 {
		t.Fatalf("elapsed = %d, %d; want 30, 20", out1.ElapsedMinutes, out2.ElapsedMinutes)
	}
}

func TestPersistFailureSurfacesOnStart(t *testing.T) {
	t.Parallel()

	store := &memStore{err: errors.New("disk full")}
	svc := service.NewQuickTrackService(&fakeClock{now: base}, store)
	if _, err := svc.Start(context.Background(), "task-1"); err == nil {
		t.Fatal("expected persist error")
	}
}
