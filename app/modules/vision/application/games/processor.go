package games

import (
	visiondomain "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain"
	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
)

// Processor is the per-game contract. Implementations are stateless and safe for
// concurrent use.
type Processor interface {
	Game() visiontypes.GameID
	DisplayName() string
	Shape() visiontypes.Shape

	// ProcessPlayers normalizes and reconciles every extracted player. A non-nil error is
	// structural; the returned batch still carries the review flag.
	ProcessPlayers(raw visiontypes.RawExtraction, roster []visiontypes.RosterPlayer) (PlayerBatch, error)

	// CalculateWinners applies the game's victory rule. Games without a rule return an empty list.
	CalculateWinners(players []visiontypes.VisionPlayer) []visiontypes.VisionPlayer

	// ValidateStats cleans a single raw reading for a declared field.
	ValidateStats(field, raw string, numPlayers int) visiondomain.StatCheck

	// ValidateResults maps the processed triple to an outcome.
	ValidateResults(players, winners []visiontypes.VisionPlayer, reqCheck bool) visiontypes.Outcome
}

// PlayerBatch is the output of ProcessPlayers.
type PlayerBatch struct {
	Players    []visiontypes.VisionPlayer
	ReqCheck   bool
	Unresolved []visiontypes.UnresolvedPlayer
}

// Options configures the built-in processors.
type Options struct {
	// SuggestionLimit caps the roster suggestions attached to each unresolved player.
	// Zero selects DefaultSuggestionLimit; a negative value disables suggestions.
	SuggestionLimit int
}

// DefaultSuggestionLimit is used when Options leaves SuggestionLimit unset.
const DefaultSuggestionLimit = 3

func (o Options) suggestionLimit() int {
	if o.SuggestionLimit == 0 {
		return DefaultSuggestionLimit
	}
	return o.SuggestionLimit
}
