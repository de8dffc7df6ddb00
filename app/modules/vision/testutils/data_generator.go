package testutils

import (
	"fmt"
	"strconv"
	"time"

	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
	"github.com/brianvoe/gofakeit/v7"
)

// TestDataGenerator builds rosters and raw extractions for tests.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed the generator was created with.
func (g *TestDataGenerator) Seed() int64 { return g.seed }

// GenerateRoster creates count players with ids 1..count. Every name carries a unique "#NNN"
// tag so no roster name contains another.
func (g *TestDataGenerator) GenerateRoster(count int) []visiontypes.RosterPlayer {
	roster := make([]visiontypes.RosterPlayer, count)
	for i := 0; i < count; i++ {
		roster[i] = visiontypes.RosterPlayer{
			PlayerID:   i + 1,
			PlayerName: fmt.Sprintf("%s #%03d", g.faker.FirstName(), i+1),
		}
	}
	return roster
}

// GenerateExtraction creates a clean extraction for game covering every roster player. Team
// games split the roster into two teams.
func (g *TestDataGenerator) GenerateExtraction(game visiontypes.GameID, roster []visiontypes.RosterPlayer) visiontypes.RawExtraction {
	players := make([]visiontypes.RawPlayer, len(roster))
	positions := make([]int, len(roster))
	for i := range positions {
		positions[i] = i
	}
	g.faker.ShuffleInts(positions)
	for i, r := range roster {
		players[i] = visiontypes.RawPlayer{Name: r.PlayerName, Stats: g.stats(game, positions[i]+1)}
	}

	if game != visiontypes.GameCodHardpoint {
		return visiontypes.RawExtraction{Players: players}
	}

	half := (len(players) + 1) / 2
	return visiontypes.RawExtraction{Teams: []visiontypes.RawTeam{
		{Name: g.faker.Color(), Players: players[:half]},
		{Name: g.faker.Color(), Players: players[half:]},
	}}
}

func (g *TestDataGenerator) stats(game visiontypes.GameID, position int) map[string]string {
	n := func(lo, hi int) string { return strconv.Itoa(g.faker.Number(lo, hi)) }

	switch game {
	case visiontypes.GameCodGunGame:
		return map[string]string{"COD_SCORE": n(0, 5000), "COD_KILLS": n(0, 40), "COD_DEATHS": n(0, 40)}
	case visiontypes.GameCodHardpoint:
		return map[string]string{
			"COD_SCORE":    n(0, 5000),
			"COD_KILLS":    n(0, 40),
			"COD_DEATHS":   n(0, 40),
			"COD_OBJ_TIME": fmt.Sprintf("%d:%02d", g.faker.Number(0, 4), g.faker.Number(0, 59)),
		}
	case visiontypes.GameMarioKart:
		return map[string]string{"MK_POS": strconv.Itoa(position), "MK_POINTS": n(0, 15)}
	case visiontypes.GameSmashBros:
		return map[string]string{"SSB_STOCKS": n(0, 3), "SSB_DAMAGE": n(0, 300) + "%", "SSB_KOS": n(0, 5)}
	}
	return map[string]string{}
}
