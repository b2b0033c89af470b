package usecase

import (
	focusin "studyplan/internal/modules/focus/port/in"
	quicktrackin "studyplan/internal/modules/quicktrack/port/in"
	"studyplan/internal/modules/tracking/dto"
	trackingin "studyplan/internal/modules/tracking/port/in"
)

// Interactor derives which timer may legally start for a given row. It holds
// no state of its own: correctness comes from reading one consistent
// snapshot of the focus engine and the quick-track store at decision time.
type Interactor struct {
	focus      focusin.Usecase
	quicktrack quicktrackin.Usecase
}

func NewInteractor(focus focusin.Usecase, quicktrack quicktrackin.Usecase) trackingin.Usecase {
	return &Interactor{focus: focus, quicktrack: quicktrack}
}

func (i *Interactor) Options(input dto.OptionsInput) dto.OptionsOutput {
	state := i.focus.State()

	inFocus := state.Active &&
		((input.SessionID != "" && input.SessionID == state.SessionID) ||
			(input.TaskID != "" && input.TaskID == state.TaskID))
	if inFocus {
		return dto.OptionsOutput{InFocus: true}
	}

	if input.TaskID != "" && i.quicktrack.IsActive(input.TaskID) {
		return dto.OptionsOutput{
			CanStopQuickTrack: true,
			// Conversion starts a focus session, so it obeys the same
			// single-active rule as a plain start.
			CanConvert:        !state.Active,
			QuickTrackMinutes: i.quicktrack.Elapsed(input.TaskID),
		}
	}

	out := dto.OptionsOutput{
		CanStartQuickTrack: input.AllowQuickTrack && input.TaskID != "",
		CanStartFocus:      !state.Active && input.SessionID != "",
	}
	if !out.CanStartQuickTrack && !out.CanStartFocus && state.Active {
		out.Blocked = true
	}
	return out
}
