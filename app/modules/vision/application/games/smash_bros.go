package games

import (
	"strconv"
	"strings"

	visiondomain "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain"
	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
)

// maxStocks is the largest stock count a match can be configured with.
const maxStocks = 99

// SmashBros has no victory rule yet, so CalculateWinners always yields an empty list.
type SmashBros struct {
	base
}

// NewSmashBros creates the Smash Bros processor.
func NewSmashBros(opts Options) *SmashBros {
	return &SmashBros{
		base: newBase(visiontypes.GameSmashBros, "Super Smash Bros.", visiontypes.ShapeIndividual, nil,
			opts, "SSB_STOCKS", "SSB_DAMAGE", "SSB_KOS"),
	}
}

func (g *SmashBros) ProcessPlayers(raw visiontypes.RawExtraction, roster []visiontypes.RosterPlayer) (PlayerBatch, error) {
	return g.processPlayers(raw, roster, g.ValidateStats)
}

// ValidateStats reads stock and KO counts as whole numbers. Damage keeps the generic rules.
func (g *SmashBros) ValidateStats(field, raw string, numPlayers int) visiondomain.StatCheck {
	switch field {
	case "SSB_STOCKS", "SSB_KOS":
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 0 || (field == "SSB_STOCKS" && n > maxStocks) {
			return visiondomain.StatCheck{Value: visiondomain.DefaultStatValue, Source: visiontypes.SourceDefaulted, ReqCheck: true}
		}
		return visiondomain.StatCheck{Value: strconv.Itoa(n), Source: visiontypes.SourceObserved}
	}
	return g.base.ValidateStats(field, raw, numPlayers)
}
