package parsers

import (
	"fmt"

	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
	"gopkg.in/yaml.v3"
)

// YAMLRosterParser parses rosters of the form:
//
//	players:
//	  - player_id: 1
//	    player_name: Ghost
type YAMLRosterParser struct{}

// NewYAMLRosterParser creates a new YAML roster parser
func NewYAMLRosterParser() *YAMLRosterParser {
	return &YAMLRosterParser{}
}

func (p *YAMLRosterParser) Parse(data []byte) ([]visiontypes.RosterPlayer, error) {
	var doc struct {
		Players []visiontypes.RosterPlayer `yaml:"players"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode YAML roster: %w", err)
	}
	return validateRoster(doc.Players)
}
