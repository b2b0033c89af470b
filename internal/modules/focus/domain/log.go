package domain

import "time"

const SchemaVersion = 1

// SessionLog is the record written to the local journal when a focus run
// ends, whether stopped, skipped, or completed through the Pomodoro cycle.
type SessionLog struct {
	ID                string
	SessionID         string
	Focus             string
	TaskID            string
	TaskTitle         string
	SubjectName       string
	StartedAt         time.Time
	EndedAt           time.Time
	FocusedMinutes    int
	QuickTrackMinutes int
	PomodoroRounds    int
	Outcome           string
}
