package dto

import "time"

type TimerOutput struct {
	TaskID         string
	StartedAt      time.Time
	ElapsedMinutes int
}

type StopOutput struct {
	TaskID         string
	ElapsedMinutes int
	// Save is advisory: it tells the caller whether the elapsed minutes
	// should be written to the task record. The store itself never does.
	Save bool
}
