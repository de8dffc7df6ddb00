package visiondomain

import (
	"fmt"
	"sort"
	"strings"

	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ReconcilePlayer matches a normalized player against the roster and returns a copy carrying
// the roster identity and canonical name.
//
// A roster entry is a candidate when either normalized name contains the other, which lets a
// misread prefix or suffix still land on the right person. When several entries are
// candidates, a single exact match wins; anything else is ambiguous. Roster order never
// affects the result.
func ReconcilePlayer(player visiontypes.VisionPlayer, roster []visiontypes.RosterPlayer) (visiontypes.VisionPlayer, error) {
	extracted := normalizeName(player.Name)
	if extracted == "" {
		return visiontypes.VisionPlayer{}, fmt.Errorf("%w: empty name", ErrNoRosterMatch)
	}

	byID := make(map[int]visiontypes.RosterPlayer)
	for _, r := range roster {
		candidate := normalizeName(r.PlayerName)
		if candidate == "" {
			continue
		}
		if !strings.Contains(candidate, extracted) && !strings.Contains(extracted, candidate) {
			continue
		}
		// The same identity listed twice is one candidate; keep the lowest name for determinism.
		if existing, ok := byID[r.PlayerID]; ok && existing.PlayerName <= r.PlayerName {
			continue
		}
		byID[r.PlayerID] = r
	}

	candidates := make([]visiontypes.RosterPlayer, 0, len(byID))
	for _, r := range byID {
		candidates = append(candidates, r)
	}

	switch len(candidates) {
	case 0:
		return visiontypes.VisionPlayer{}, fmt.Errorf("%w: %q", ErrNoRosterMatch, player.Name)
	case 1:
		return resolved(player, candidates[0]), nil
	}

	var exact []visiontypes.RosterPlayer
	for _, c := range candidates {
		if normalizeName(c.PlayerName) == extracted {
			exact = append(exact, c)
		}
	}
	if len(exact) == 1 {
		return resolved(player, exact[0]), nil
	}

	return visiontypes.VisionPlayer{}, fmt.Errorf("%w: %q matches %d roster players", ErrAmbiguousRosterMatch, player.Name, len(candidates))
}

// SuggestRosterNames ranks roster names by edit distance to an extracted name so a reviewer
// can pick the intended player.
func SuggestRosterNames(name string, roster []visiontypes.RosterPlayer, limit int) []string {
	target := normalizeName(name)
	if target == "" || limit <= 0 {
		return nil
	}

	type scored struct {
		name     string
		distance int
	}
	ranked := make([]scored, 0, len(roster))
	for _, r := range roster {
		candidate := normalizeName(r.PlayerName)
		if candidate == "" {
			continue
		}
		ranked = append(ranked, scored{name: r.PlayerName, distance: fuzzy.LevenshteinDistance(target, candidate)})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].distance != ranked[j].distance {
			return ranked[i].distance < ranked[j].distance
		}
		return ranked[i].name < ranked[j].name
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = s.name
	}
	return out
}

func resolved(player visiontypes.VisionPlayer, r visiontypes.RosterPlayer) visiontypes.VisionPlayer {
	out := player.Clone()
	out.PlayerID = r.PlayerID
	out.Name = r.PlayerName
	return out
}

// normalizeName lower-cases and drops all whitespace.
func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ""))
}
