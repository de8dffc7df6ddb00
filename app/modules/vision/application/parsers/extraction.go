package parsers

import (
	"fmt"
	"strings"

	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
	"github.com/tidwall/gjson"
)

// DecodeExtraction reads vision output JSON. The layout is either {"players": [...]} or
// {"teams": [{"name", "players"}]}; stats may be an object or a list of {key, value} pairs
// and values may be strings or numbers. Layout validation is left to the game processor, so
// a document carrying both players and teams decodes without error.
func DecodeExtraction(data []byte) (visiontypes.RawExtraction, error) {
	if !gjson.ValidBytes(data) {
		return visiontypes.RawExtraction{}, fmt.Errorf("%w: invalid JSON", ErrMalformedExtraction)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return visiontypes.RawExtraction{}, fmt.Errorf("%w: top level must be an object", ErrMalformedExtraction)
	}

	var out visiontypes.RawExtraction

	if players := root.Get("players"); players.Exists() && players.Type != gjson.Null {
		decoded, err := decodePlayers(players, "players")
		if err != nil {
			return visiontypes.RawExtraction{}, err
		}
		out.Players = decoded
	}

	if teams := root.Get("teams"); teams.Exists() && teams.Type != gjson.Null {
		if !teams.IsArray() {
			return visiontypes.RawExtraction{}, fmt.Errorf("%w: teams must be a list", ErrMalformedExtraction)
		}
		for i, t := range teams.Array() {
			if !t.IsObject() {
				return visiontypes.RawExtraction{}, fmt.Errorf("%w: teams[%d] must be an object", ErrMalformedExtraction, i)
			}
			members, err := decodePlayers(t.Get("players"), fmt.Sprintf("teams[%d].players", i))
			if err != nil {
				return visiontypes.RawExtraction{}, err
			}
			out.Teams = append(out.Teams, visiontypes.RawTeam{Name: strings.TrimSpace(t.Get("name").String()), Players: members})
		}
	}

	return out, nil
}

func decodePlayers(list gjson.Result, path string) ([]visiontypes.RawPlayer, error) {
	if !list.Exists() || list.Type == gjson.Null {
		return nil, nil
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: %s must be a list", ErrMalformedExtraction, path)
	}

	var players []visiontypes.RawPlayer
	for i, p := range list.Array() {
		if !p.IsObject() {
			return nil, fmt.Errorf("%w: %s[%d] must be an object", ErrMalformedExtraction, path, i)
		}
		players = append(players, visiontypes.RawPlayer{
			Name:  p.Get("name").String(),
			Stats: decodeStats(p.Get("stats")),
		})
	}
	return players, nil
}

// decodeStats accepts {"KEY": value} or [{"key": "KEY", "value": value}]. Null values and
// entries without a key are treated as missing readings.
func decodeStats(stats gjson.Result) map[string]string {
	out := make(map[string]string)

	put := func(key string, v gjson.Result) {
		key = strings.TrimSpace(key)
		if key == "" {
			return
		}
		if s, ok := readingText(v); ok {
			out[key] = s
		}
	}

	switch {
	case stats.IsObject():
		stats.ForEach(func(k, v gjson.Result) bool {
			put(k.String(), v)
			return true
		})
	case stats.IsArray():
		for _, entry := range stats.Array() {
			put(entry.Get("key").String(), entry.Get("value"))
		}
	}
	return out
}

// readingText keeps numbers exactly as written; the stat validator does the cleaning.
func readingText(v gjson.Result) (string, bool) {
	switch v.Type {
	case gjson.String:
		return v.Str, true
	case gjson.Number, gjson.True, gjson.False:
		return v.Raw, true
	default:
		return "", false
	}
}
