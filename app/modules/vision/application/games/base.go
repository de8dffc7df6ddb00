package games

import (
	"errors"
	"fmt"

	visiondomain "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain"
	"github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/catalog"
	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
)

// base holds what every built-in game shares. Games embed it and override the hooks they need.
type base struct {
	game        visiontypes.GameID
	displayName string
	shape       visiontypes.Shape
	stats       []catalog.Entry
	winner      *visiontypes.WinnerConfig
	suggestions int
}

func newBase(game visiontypes.GameID, displayName string, shape visiontypes.Shape, winner *visiontypes.WinnerConfig, opts Options, keys ...string) base {
	c := catalog.Default()
	stats := make([]catalog.Entry, 0, len(keys))
	for _, k := range keys {
		stats = append(stats, c.MustLookup(k))
	}
	return base{
		game:        game,
		displayName: displayName,
		shape:       shape,
		stats:       stats,
		winner:      winner,
		suggestions: opts.suggestionLimit(),
	}
}

func (b base) Game() visiontypes.GameID { return b.game }
func (b base) DisplayName() string      { return b.displayName }
func (b base) Shape() visiontypes.Shape { return b.shape }

// DeclaredStats returns the catalog entries the game reads, in declaration order.
func (b base) DeclaredStats() []catalog.Entry {
	out := make([]catalog.Entry, len(b.stats))
	copy(out, b.stats)
	return out
}

// WinnerRule returns the game's victory rule, or nil when none is implemented.
func (b base) WinnerRule() *visiontypes.WinnerConfig {
	if b.winner == nil {
		return nil
	}
	cfg := *b.winner
	return &cfg
}

// ValidateStats cleans a reading according to the catalog kind of the field.
func (b base) ValidateStats(field, raw string, numPlayers int) visiondomain.StatCheck {
	kind := catalog.KindNumeric
	if e, ok := catalog.Default().Lookup(field); ok {
		kind = e.Kind
	}
	return visiondomain.ValidateStat(kind, raw, numPlayers)
}

func (b base) CalculateWinners(players []visiontypes.VisionPlayer) []visiontypes.VisionPlayer {
	return visiondomain.CalculateWinners(players, b.winner)
}

func (b base) ValidateResults(players, winners []visiontypes.VisionPlayer, reqCheck bool) visiontypes.Outcome {
	return visiondomain.ValidateResults(players, winners, reqCheck)
}

// processPlayers runs normalization and reconciliation for every extracted player. validate is
// passed explicitly so a game's ValidateStats override is honored.
func (b base) processPlayers(raw visiontypes.RawExtraction, roster []visiontypes.RosterPlayer, validate visiondomain.StatValidator) (PlayerBatch, error) {
	if got := raw.Shape(); got != b.shape {
		return PlayerBatch{ReqCheck: true}, &ImportError{
			Code:    CodeInvalidShape,
			Message: fmt.Sprintf("%s expects %s layout, got %s", b.game, b.shape, got),
			Err:     ErrInvalidShape,
		}
	}

	rules := visiondomain.PlayerRules{Stats: b.stats, Validate: validate}
	numPlayers := raw.PlayerCount()

	batch := PlayerBatch{Players: make([]visiontypes.VisionPlayer, 0, numPlayers)}
	claimed := make(map[int]bool, numPlayers)

	add := func(rp visiontypes.RawPlayer, team int) {
		player, flagged := visiondomain.NormalizePlayer(rp, rules, numPlayers)
		batch.ReqCheck = batch.ReqCheck || flagged
		player.Team = team

		resolved, err := visiondomain.ReconcilePlayer(player, roster)
		if err != nil {
			reason := visiontypes.ReasonUnmatched
			if errors.Is(err, visiondomain.ErrAmbiguousRosterMatch) {
				reason = visiontypes.ReasonAmbiguous
			}
			batch.ReqCheck = true
			batch.Unresolved = append(batch.Unresolved, visiontypes.UnresolvedPlayer{
				Name:        player.Name,
				Reason:      reason,
				Suggestions: visiondomain.SuggestRosterNames(player.Name, roster, b.suggestions),
			})
			return
		}

		if claimed[resolved.PlayerID] {
			batch.ReqCheck = true
			batch.Unresolved = append(batch.Unresolved, visiontypes.UnresolvedPlayer{
				Name:   player.Name,
				Reason: visiontypes.ReasonDuplicate,
			})
			return
		}
		claimed[resolved.PlayerID] = true
		batch.Players = append(batch.Players, resolved)
	}

	if b.shape == visiontypes.ShapeTeam {
		for i, t := range raw.Teams {
			for _, rp := range t.Players {
				add(rp, i+1)
			}
		}
	} else {
		for _, rp := range raw.Players {
			add(rp, 0)
		}
	}

	if len(batch.Players) == 0 {
		batch.ReqCheck = true
		return batch, &ImportError{
			Code:    CodeNoPlayersResolved,
			Message: fmt.Sprintf("none of %d extracted players matched the roster", numPlayers),
			Err:     ErrNoPlayersResolved,
		}
	}
	return batch, nil
}
