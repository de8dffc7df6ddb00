package games

import (
	visiondomain "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain"
	"github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/catalog"
	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
)

// CodGunGame is the Call of Duty free-for-all "Gun Game" mode. The scoreboard carries no
// placement column, so positions are derived from score.
type CodGunGame struct {
	base
	position catalog.Entry
}

// NewCodGunGame creates the gun game processor.
func NewCodGunGame(opts Options) *CodGunGame {
	return &CodGunGame{
		base: newBase(visiontypes.GameCodGunGame, "Call of Duty: Gun Game", visiontypes.ShapeIndividual,
			&visiontypes.WinnerConfig{
				Type:         visiontypes.WinnerIndividual,
				WinCondition: visiontypes.WinCondition{StatName: "COD_SCORE", Comparison: visiontypes.Highest},
			},
			opts, "COD_SCORE", "COD_KILLS", "COD_DEATHS"),
		position: catalog.Default().MustLookup("COD_POS"),
	}
}

// ProcessPlayers resolves players and ranks them by score.
func (g *CodGunGame) ProcessPlayers(raw visiontypes.RawExtraction, roster []visiontypes.RosterPlayer) (PlayerBatch, error) {
	batch, err := g.processPlayers(raw, roster, g.ValidateStats)
	if err != nil {
		return batch, err
	}
	batch.Players = visiondomain.AssignPositions(batch.Players, "COD_SCORE", g.position)
	return batch, nil
}
