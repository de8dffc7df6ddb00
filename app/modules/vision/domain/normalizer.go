package visiondomain

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/catalog"
	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
)

// DefaultStatValue is substituted for any numeric reading that is missing or unreadable.
const DefaultStatValue = "0"

// StatCheck is the result of validating one raw reading.
type StatCheck struct {
	Value    string
	Source   visiontypes.StatSource
	ReqCheck bool
}

// StatValidator validates a single raw reading for a declared field.
type StatValidator func(field, raw string, numPlayers int) StatCheck

// PlayerRules declares which stats a game reads and how each reading is validated.
type PlayerRules struct {
	Stats    []catalog.Entry
	Validate StatValidator
}

// NormalizePlayer converts one raw blob into a VisionPlayer. It never fails: unreadable
// stats are defaulted and reported through the returned review flag.
func NormalizePlayer(raw visiontypes.RawPlayer, rules PlayerRules, numPlayers int) (visiontypes.VisionPlayer, bool) {
	readings, conflicts := canonicalReadings(raw.Stats)

	player := visiontypes.VisionPlayer{
		PlayerID: visiontypes.UnresolvedPlayerID,
		Name:     strings.TrimSpace(raw.Name),
		Stats:    make([]visiontypes.Stat, 0, len(rules.Stats)),
	}

	reqCheck := false
	for _, entry := range rules.Stats {
		check := rules.Validate(entry.Key, readings[entry.Key], numPlayers)
		reqCheck = reqCheck || check.ReqCheck || conflicts[entry.Key]
		player.Stats = append(player.Stats, visiontypes.Stat{
			StatID:    entry.ID,
			Stat:      entry.Key,
			StatValue: check.Value,
			Source:    check.Source,
		})
	}

	return player, reqCheck
}

// canonicalReadings upper-cases raw stat keys. When several keys fold to one field, the key
// already in canonical form wins, otherwise the first in sorted order. Fields whose folded keys
// disagree on the value are reported as conflicts.
func canonicalReadings(stats map[string]string) (map[string]string, map[string]bool) {
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	readings := make(map[string]string, len(stats))
	exact := make(map[string]bool, len(stats))
	conflicts := make(map[string]bool)
	for _, k := range keys {
		field := strings.ToUpper(strings.TrimSpace(k))
		isExact := k == field
		if prev, seen := readings[field]; seen {
			if prev != stats[k] {
				conflicts[field] = true
			}
			if exact[field] || !isExact {
				continue
			}
		}
		readings[field] = stats[k]
		exact[field] = isExact
	}
	return readings, conflicts
}

// ValidateStat applies the catalog kind's cleaning rules to a raw reading.
func ValidateStat(kind catalog.Kind, raw string, numPlayers int) StatCheck {
	var (
		value string
		ok    bool
	)
	switch kind {
	case catalog.KindPosition:
		value, ok = cleanPosition(raw, numPlayers)
	case catalog.KindDuration:
		value, ok = cleanDuration(raw)
	default:
		value, ok = cleanNumeric(raw)
	}

	if !ok {
		return StatCheck{Value: DefaultStatValue, Source: visiontypes.SourceDefaulted, ReqCheck: true}
	}
	return StatCheck{Value: value, Source: visiontypes.SourceObserved}
}

// NumericValue parses a stored stat value. Anything unreadable counts as 0.
func NumericValue(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// cleanNumeric strips thousands separators, inner spaces and a trailing percent sign.
func cleanNumeric(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "%")
	s = strings.NewReplacer(",", "", " ", "").Replace(s)
	if s == "" {
		return "", false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

// cleanPosition accepts "3", "#3" and ordinals like "3rd". Positions are 1-based and,
// when the player count is known, bounded by it.
func cleanPosition(raw string, numPlayers int) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "#")
	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		if strings.HasSuffix(s, suffix) {
			s = strings.TrimSuffix(s, suffix)
			break
		}
	}

	pos, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || pos < 1 {
		return "", false
	}
	if numPlayers > 0 && pos > numPlayers {
		return "", false
	}
	return strconv.Itoa(pos), true
}

// cleanDuration normalizes "m:ss", "h:mm:ss" or plain seconds to whole seconds.
func cleanDuration(raw string) (string, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if s == "" {
		return "", false
	}

	if !strings.Contains(s, ":") {
		secs, err := strconv.Atoi(s)
		if err != nil || secs < 0 {
			return "", false
		}
		return strconv.Itoa(secs), true
	}

	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return "", false
	}

	total := 0
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return "", false
		}
		// Every field after the leading one is a base-60 digit.
		if i > 0 && (n >= 60 || len(part) != 2) {
			return "", false
		}
		total = total*60 + n
	}
	return strconv.Itoa(total), true
}
