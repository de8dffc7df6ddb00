package visiondomain

import (
	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
)

// User-facing outcome messages.
const (
	MessageSuccess      = "Results processed successfully."
	MessageCheckRequest = "Some values could not be read and were filled in with a best guess. Please confirm the results before saving."
)

// ValidateResults maps the processed triple to an outcome. It only inspects the flag.
func ValidateResults(players, winners []visiontypes.VisionPlayer, reqCheck bool) visiontypes.Outcome {
	data := visiontypes.OutcomeData{
		Players: nonNil(players),
		Winner:  nonNil(winners),
	}

	if reqCheck {
		return visiontypes.Outcome{
			Status:  visiontypes.StatusCheckRequest,
			Data:    data,
			Message: MessageCheckRequest,
		}
	}
	return visiontypes.Outcome{
		Status:  visiontypes.StatusSuccess,
		Data:    data,
		Message: MessageSuccess,
	}
}

// FailedOutcome is the structural-failure result: no players, no winners, a diagnostic.
func FailedOutcome(message string) visiontypes.Outcome {
	return visiontypes.Outcome{
		Status: visiontypes.StatusFailed,
		Data: visiontypes.OutcomeData{
			Players: []visiontypes.VisionPlayer{},
			Winner:  []visiontypes.VisionPlayer{},
		},
		Message: message,
	}
}

func nonNil(players []visiontypes.VisionPlayer) []visiontypes.VisionPlayer {
	if players == nil {
		return []visiontypes.VisionPlayer{}
	}
	return players
}
