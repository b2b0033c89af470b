package dto

import "time"

type SessionOutput struct {
	ID               string
	TaskID           string
	SubjectID        string
	Focus            string
	StartTime        time.Time
	EndTime          time.Time
	Status           string
	EstimatedMinutes int
}

type TaskOutput struct {
	ID                string
	SubjectID         string
	Title             string
	Status            string
	EstimatedMinutes  int
	TimerMinutesSpent int
}

type AddTaskTimeInput struct {
	TaskID  string
	Minutes int
	Status  string
}
