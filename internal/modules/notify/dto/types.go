package dto

type StatusOutput struct {
	Enabled           bool
	Supported         bool
	PermissionGranted bool
}

type PollOutput struct {
	// Fired is how many alerts this pass emitted.
	Fired bool
	Count int
}
