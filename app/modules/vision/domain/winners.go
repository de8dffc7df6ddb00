package visiondomain

import (
	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
)

// CalculateWinners dispatches on the configured winner type. A nil config means the game has
// no winner rule yet, which yields an empty list rather than an error.
func CalculateWinners(players []visiontypes.VisionPlayer, cfg *visiontypes.WinnerConfig) []visiontypes.VisionPlayer {
	if cfg == nil {
		return []visiontypes.VisionPlayer{}
	}
	if cfg.Type == visiontypes.WinnerTeam {
		return CalculateTeamWinners(players, *cfg)
	}
	return CalculateIndividualWinners(players, *cfg)
}

// CalculateIndividualWinners returns every player sharing the extremal win-condition value.
// Missing or defaulted values count as 0, or rank last under Lowest. Ties are never broken.
func CalculateIndividualWinners(players []visiontypes.VisionPlayer, cfg visiontypes.WinnerConfig) []visiontypes.VisionPlayer {
	winners := []visiontypes.VisionPlayer{}
	if len(players) == 0 {
		return winners
	}

	key, cmp := cfg.WinCondition.StatName, cfg.WinCondition.Comparison
	best := rankValue(players[0], key, cmp)
	for _, p := range players[1:] {
		if v := rankValue(p, key, cmp); better(v, best, cmp) {
			best = v
		}
	}

	for _, p := range players {
		if rankValue(p, key, cmp) == best {
			winners = append(winners, p.Clone())
		}
	}
	return winners
}

// CalculateTeamWinners sums the win-condition stat per team and returns every member of
// every team sharing the extremal total, in input order.
func CalculateTeamWinners(players []visiontypes.VisionPlayer, cfg visiontypes.WinnerConfig) []visiontypes.VisionPlayer {
	winners := []visiontypes.VisionPlayer{}
	if len(players) == 0 {
		return winners
	}

	key, cmp := cfg.WinCondition.StatName, cfg.WinCondition.Comparison
	totals := make(map[int]float64)
	var order []int
	for _, p := range players {
		if _, seen := totals[p.Team]; !seen {
			order = append(order, p.Team)
		}
		totals[p.Team] += rankValue(p, key, cmp)
	}

	best := totals[order[0]]
	for _, team := range order[1:] {
		if better(totals[team], best, cmp) {
			best = totals[team]
		}
	}

	for _, p := range players {
		if totals[p.Team] == best {
			winners = append(winners, p.Clone())
		}
	}
	return winners
}

func better(candidate, current float64, cmp visiontypes.Comparison) bool {
	if cmp == visiontypes.Lowest {
		return candidate < current
	}
	return candidate > current
}
