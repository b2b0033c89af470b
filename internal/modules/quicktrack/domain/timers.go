package domain

import "time"

// Timers holds the background quick-track state: one start instant per task,
// plus the derived whole-minute elapsed cache. A task id appears in Elapsed
// iff it appears in Active.
type Timers struct {
	Active  map[string]time.Time
	Elapsed map[string]int
}

func NewTimers() *Timers {
	return &Timers{Active: map[string]time.Time{}, Elapsed: map[string]int{}}
}

// Rehydrate replaces the active set, recomputing the elapsed cache.
func (t *Timers) Rehydrate(active map[string]time.Time, now time.Time) {
	t.Active = map[string]time.Time{}
	t.Elapsed = map[string]int{}
	for taskID, startedAt := range active {
		t.Active[taskID] = startedAt
	}
	t.Recompute(now)
}

// Start begins tracking the task at now, replacing any previous timer for the
// same id.
func (t *Timers) Start(taskID string, now time.Time) {
	t.Active[taskID] = now
	t.Elapsed[taskID] = 0
}

// Stop removes the task's timer and returns its elapsed whole minutes.
// Stopping a task with no timer returns zero.
func (t *Timers) Stop(taskID string, now time.Time) int {
	startedAt, ok := t.Active[taskID]
	if !ok {
		return 0
	}
	delete(t.Active, taskID)
	delete(t.Elapsed, taskID)
	return ElapsedMinutes(startedAt, now)
}

// Recompute refreshes the elapsed cache for every active timer off a single
// shared instant.
func (t *Timers) Recompute(now time.Time) {
	for taskID, startedAt := range t.Active {
		t.Elapsed[taskID] = ElapsedMinutes(startedAt, now)
	}
}

func (t *Timers) IsActive(taskID string) bool {
	_, ok := t.Active[taskID]
	return ok
}

// ElapsedMinutes rounds a timer span down to whole minutes, never negative.
func ElapsedMinutes(startedAt, now time.Time) int {
	minutes := int(now.Sub(startedAt) / time.Minute)
	if minutes < 0 {
		return 0
	}
	return minutes
}
