package domain

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusSkipped    Status = "skipped"
	StatusPartial    Status = "partial"
)

func (s Status) Validate() error {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusSkipped, StatusPartial:
		return nil
	default:
		return fmt.Errorf("unknown status: %s", s)
	}
}

// Session is a scheduled study block produced by the remote planner.
type Session struct {
	ID               string    `json:"id"`
	TaskID           string    `json:"task_id"`
	SubjectID        string    `json:"subject_id"`
	Focus            string    `json:"focus"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Status           Status    `json:"status"`
	EstimatedMinutes int       `json:"estimated_minutes"`
}

// ScheduledSpan is the planned length of the session.
func (s Session) ScheduledSpan() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

type Task struct {
	ID                string `json:"id"`
	SubjectID         string `json:"subject_id"`
	Title             string `json:"title"`
	Status            Status `json:"status"`
	EstimatedMinutes  int    `json:"estimated_minutes"`
	TimerMinutesSpent int    `json:"timer_minutes_spent"`
}

type Subject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
