package games

import (
	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
)

// CodHardpoint is the Call of Duty team objective mode. The team with the highest combined
// score wins.
type CodHardpoint struct {
	base
}

// NewCodHardpoint creates the hardpoint processor.
func NewCodHardpoint(opts Options) *CodHardpoint {
	return &CodHardpoint{
		base: newBase(visiontypes.GameCodHardpoint, "Call of Duty: Hardpoint", visiontypes.ShapeTeam,
			&visiontypes.WinnerConfig{
				Type:         visiontypes.WinnerTeam,
				WinCondition: visiontypes.WinCondition{StatName: "COD_SCORE", Comparison: visiontypes.Highest},
			},
			opts, "COD_SCORE", "COD_KILLS", "COD_DEATHS", "COD_OBJ_TIME"),
	}
}

func (g *CodHardpoint) ProcessPlayers(raw visiontypes.RawExtraction, roster []visiontypes.RosterPlayer) (PlayerBatch, error) {
	return g.processPlayers(raw, roster, g.ValidateStats)
}
