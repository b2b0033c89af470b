package dto

import "time"

// StateOutput is a display snapshot of the focus engine.
type StateOutput struct {
	Active bool
	Paused bool

	SessionID   string
	TaskID      string
	TaskTitle   string
	SubjectName string
	Focus       string

	StartTime time.Time
	EndTime   time.Time

	RemainingSeconds  int
	DurationSeconds   int
	QuickTrackMinutes int

	PomodoroOn bool
	Phase      string
	Round      int
}

type StartInput struct {
	SessionID string
	// Outcome of the conversion from a quick-track timer, if one was live.
	QuickTrackMinutes int
}

type StartOutput struct {
	State StateOutput
	// ConvertedMinutes is the quick-track time folded into the session.
	ConvertedMinutes int
}

type StopOutput struct {
	State          StateOutput
	FocusedMinutes int
	LogPath        string
}
