package dto

// OptionsInput describes the context a control surface is rendering: a task
// row, a scheduled session row, or both. AllowQuickTrack lets callers
// suppress quick-track starts in contexts that are not task-scoped.
type OptionsInput struct {
	TaskID          string
	SessionID       string
	AllowQuickTrack bool
}

// OptionsOutput is the legal action set for one row. At most one of the
// groups is populated: in-focus, quick-track running, startable, or blocked.
type OptionsOutput struct {
	InFocus            bool
	CanStopQuickTrack  bool
	CanConvert         bool
	CanStartQuickTrack bool
	CanStartFocus      bool
	Blocked            bool

	QuickTrackMinutes int
}
