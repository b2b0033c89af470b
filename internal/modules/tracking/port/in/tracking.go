package in

import "studyplan/internal/modules/tracking/dto"

type Usecase interface {
	Options(input dto.OptionsInput) dto.OptionsOutput
}
