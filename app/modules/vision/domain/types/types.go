package visiontypes

// GameID identifies a supported game. It travels alongside every raw extraction so the
// pipeline never has to guess which rules apply.
type GameID string

const (
	GameCodGunGame   GameID = "cod_gun_game"
	GameCodHardpoint GameID = "cod_hardpoint"
	GameMarioKart    GameID = "mario_kart"
	GameSmashBros    GameID = "smash_bros"
)

func (g GameID) String() string { return string(g) }

// Shape is the discriminated layout of a raw extraction.
type Shape string

const (
	ShapeIndividual Shape = "individual"
	ShapeTeam       Shape = "team"
	ShapeInvalid    Shape = "invalid"
)

// RawPlayer is one vision-produced player blob. Stat readings are keyed by field key and
// may be missing, blank or non-numeric.
type RawPlayer struct {
	Name  string            `json:"name"`
	Stats map[string]string `json:"stats"`
}

// RawTeam groups raw players under a team label.
type RawTeam struct {
	Name    string      `json:"name"`
	Players []RawPlayer `json:"players"`
}

// RawExtraction is the output of the vision step for a single screenshot.
// Players and Teams are mutually exclusive.
type RawExtraction struct {
	Players []RawPlayer `json:"players,omitempty"`
	Teams   []RawTeam   `json:"teams,omitempty"`
}

// Shape discriminates the extraction layout.
func (r RawExtraction) Shape() Shape {
	switch {
	case len(r.Players) > 0 && len(r.Teams) == 0:
		return ShapeIndividual
	case len(r.Teams) > 0 && len(r.Players) == 0:
		return ShapeTeam
	default:
		return ShapeInvalid
	}
}

// PlayerCount returns the number of raw players regardless of shape.
func (r RawExtraction) PlayerCount() int {
	n := len(r.Players)
	for _, t := range r.Teams {
		n += len(t.Players)
	}
	return n
}

// StatSource records where a stat value came from.
type StatSource string

const (
	SourceObserved  StatSource = "observed"
	SourceDefaulted StatSource = "defaulted"
	SourceDerived   StatSource = "derived"
)

// Stat is a single canonical stat reading. Values stay strings until persistence.
type Stat struct {
	StatID    int        `json:"statId"`
	Stat      string     `json:"stat"`
	StatValue string     `json:"statValue"`
	Source    StatSource `json:"source"`
}

// UnresolvedPlayerID marks a VisionPlayer that has not been matched to the roster.
const UnresolvedPlayerID = 0

// VisionPlayer is a normalized player produced by the pipeline.
type VisionPlayer struct {
	PlayerID int    `json:"playerId"`
	Name     string `json:"name"`
	Team     int    `json:"team,omitempty"`
	Stats    []Stat `json:"stats"`
}

// StatValue returns the value for key and whether it is present.
func (p VisionPlayer) StatValue(key string) (string, bool) {
	for _, s := range p.Stats {
		if s.Stat == key {
			return s.StatValue, true
		}
	}
	return "", false
}

// Clone returns a deep copy so callers never share a stats slice.
func (p VisionPlayer) Clone() VisionPlayer {
	out := p
	out.Stats = make([]Stat, len(p.Stats))
	copy(out.Stats, p.Stats)
	return out
}

// RosterPlayer is a known identity eligible for the session.
type RosterPlayer struct {
	PlayerID   int    `json:"playerId" yaml:"player_id"`
	PlayerName string `json:"playerName" yaml:"player_name"`
}

// WinnerType selects individual or team victory.
type WinnerType string

const (
	WinnerIndividual WinnerType = "INDIVIDUAL"
	WinnerTeam       WinnerType = "TEAM"
)

// Comparison is the direction of a win condition.
type Comparison string

const (
	Highest Comparison = "highest"
	Lowest  Comparison = "lowest"
)

// WinCondition names the deciding stat and its direction.
type WinCondition struct {
	StatName   string     `json:"statName"`
	Comparison Comparison `json:"comparison"`
}

// WinnerConfig is the immutable per-game victory rule.
type WinnerConfig struct {
	Type         WinnerType   `json:"type"`
	WinCondition WinCondition `json:"winCondition"`
}

// Status is the three-state result code.
type Status string

const (
	StatusSuccess      Status = "success"
	StatusCheckRequest Status = "check_request"
	StatusFailed       Status = "failed"
)

// UnresolvedReason explains why an extracted player was left out.
type UnresolvedReason string

const (
	ReasonUnmatched UnresolvedReason = "unmatched"
	ReasonAmbiguous UnresolvedReason = "ambiguous"
	ReasonDuplicate UnresolvedReason = "duplicate"
)

// UnresolvedPlayer is an extracted name the pipeline could not place on the roster.
type UnresolvedPlayer struct {
	Name        string           `json:"name"`
	Reason      UnresolvedReason `json:"reason"`
	Suggestions []string         `json:"suggestions,omitempty"`
}

// OutcomeData carries whatever the pipeline inferred, even when review is required.
type OutcomeData struct {
	Players []VisionPlayer `json:"players"`
	Winner  []VisionPlayer `json:"winner"`
}

// Outcome is returned for every screenshot processed.
type Outcome struct {
	Status     Status             `json:"status"`
	Data       OutcomeData        `json:"data"`
	Message    string             `json:"message"`
	Unresolved []UnresolvedPlayer `json:"unresolved,omitempty"`
}
