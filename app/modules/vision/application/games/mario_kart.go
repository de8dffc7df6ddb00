package games

import (
	visiondomain "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain"
	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
)

// maxRacers is the largest Mario Kart field. The screen may show CPU racers or crop players,
// so positions are bounded by the field rather than by the extracted player count.
const maxRacers = 24

// MarioKart reads finishing positions directly from the results screen.
type MarioKart struct {
	base
}

// NewMarioKart creates the Mario Kart processor.
func NewMarioKart(opts Options) *MarioKart {
	return &MarioKart{
		base: newBase(visiontypes.GameMarioKart, "Mario Kart", visiontypes.ShapeIndividual,
			&visiontypes.WinnerConfig{
				Type:         visiontypes.WinnerIndividual,
				WinCondition: visiontypes.WinCondition{StatName: "MK_POS", Comparison: visiontypes.Lowest},
			},
			opts, "MK_POS", "MK_POINTS"),
	}
}

// ProcessPlayers resolves players and orders them by finishing position.
func (g *MarioKart) ProcessPlayers(raw visiontypes.RawExtraction, roster []visiontypes.RosterPlayer) (PlayerBatch, error) {
	batch, err := g.processPlayers(raw, roster, g.ValidateStats)
	if err != nil {
		return batch, err
	}
	batch.Players = visiondomain.SortByStat(batch.Players, "MK_POS", visiontypes.Lowest)
	return batch, nil
}

// ValidateStats bounds MK_POS by the full field size. Other stats keep the generic rules.
func (g *MarioKart) ValidateStats(field, raw string, numPlayers int) visiondomain.StatCheck {
	if field == "MK_POS" {
		return g.base.ValidateStats(field, raw, maxRacers)
	}
	return g.base.ValidateStats(field, raw, numPlayers)
}
