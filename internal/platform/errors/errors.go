package apperrors

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrNoActiveFocus = errors.New("no focus session is active")
	ErrFocusActive   = errors.New("a focus session is already active")
	ErrLeaseHeld     = errors.New("notifier lease held by another process")
	ErrUnreachable   = errors.New("planner api unreachable")
)
