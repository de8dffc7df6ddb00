package visiondomain

import (
	"math"
	"sort"
	"strconv"

	"github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/catalog"
	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
)

// SortByStat returns a copy of players stably ordered by a stat. Ties keep extraction order.
// Under Lowest, players whose reading is missing or defaulted sort last.
func SortByStat(players []visiontypes.VisionPlayer, key string, cmp visiontypes.Comparison) []visiontypes.VisionPlayer {
	out := make([]visiontypes.VisionPlayer, len(players))
	for i, p := range players {
		out[i] = p.Clone()
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := rankValue(out[i], key, cmp), rankValue(out[j], key, cmp)
		if cmp == visiontypes.Lowest {
			return a < b
		}
		return a > b
	})
	return out
}

// AssignPositions ranks players by score, highest first, and writes a derived position stat.
// Running it on an already ranked list yields the same positions.
func AssignPositions(players []visiontypes.VisionPlayer, scoreKey string, position catalog.Entry) []visiontypes.VisionPlayer {
	ranked := SortByStat(players, scoreKey, visiontypes.Highest)
	for i := range ranked {
		ranked[i] = setStat(ranked[i], visiontypes.Stat{
			StatID:    position.ID,
			Stat:      position.Key,
			StatValue: strconv.Itoa(i + 1),
			Source:    visiontypes.SourceDerived,
		})
	}
	return ranked
}

// setStat updates the stat with the same key in place or appends it.
func setStat(p visiontypes.VisionPlayer, stat visiontypes.Stat) visiontypes.VisionPlayer {
	for i := range p.Stats {
		if p.Stats[i].Stat == stat.Stat {
			p.Stats[i] = stat
			return p
		}
	}
	p.Stats = append(p.Stats, stat)
	return p
}

// rankValue reads the stat that orders players. A missing or defaulted reading counts as 0,
// except under Lowest, where it ranks after every real reading.
func rankValue(p visiontypes.VisionPlayer, key string, cmp visiontypes.Comparison) float64 {
	for _, s := range p.Stats {
		if s.Stat != key {
			continue
		}
		if s.Source == visiontypes.SourceDefaulted && cmp == visiontypes.Lowest {
			return math.Inf(1)
		}
		return NumericValue(s.StatValue)
	}
	if cmp == visiontypes.Lowest {
		return math.Inf(1)
	}
	return 0
}
