package visionservice

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/application/games"
	visiondomain "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain"
	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
	"github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func itemIDs(outcomes []ItemOutcome) []string {
	out := make([]string, len(outcomes))
	for i, o := range outcomes {
		out[i] = o.ItemID
	}
	return out
}

func TestVisionService_BulkImport_IsolatesFailures(t *testing.T) {
	gen := testutils.NewTestDataGenerator(42)
	bulkRoster := gen.GenerateRoster(6)

	req := BulkRequest{Game: visiontypes.GameCodGunGame, Roster: bulkRoster}
	for i := 1; i <= 5; i++ {
		req.Items = append(req.Items, BulkItem{
			ID:         fmt.Sprintf("item-%02d", i),
			Extraction: gen.GenerateExtraction(visiontypes.GameCodGunGame, bulkRoster),
		})
	}
	// Both players and teams set.
	req.Items[2].Extraction.Teams = []visiontypes.RawTeam{{Name: "stray"}}

	s, metrics := newTestService(t, nil, 3)
	result, err := s.BulkImport(context.Background(), req)
	require.NoError(t, err)

	require.NotEqual(t, uuid.Nil, result.BatchID)
	require.Equal(t, 5, result.Total())
	require.Equal(t, []string{"item-01", "item-02", "item-04", "item-05"}, itemIDs(result.Succeeded))
	require.Empty(t, result.NeedsReview)
	require.Equal(t, []string{"item-03"}, itemIDs(result.Failed))
	require.Equal(t, 4, metrics.Outcomes(visiontypes.StatusSuccess))
	require.Equal(t, 1, metrics.Outcomes(visiontypes.StatusFailed))

	for _, o := range result.Succeeded {
		require.Len(t, o.Outcome.Data.Players, len(bulkRoster))
		require.NotEmpty(t, o.Outcome.Data.Winner)
	}
}

func TestVisionService_BulkImport_PartitionsByStatus(t *testing.T) {
	registry := games.NewRegistry()
	require.NoError(t, registry.Register(panickingProcessor{games.NewCodGunGame(games.Options{})}))
	s, _ := newTestService(t, registry, 2)

	req := BulkRequest{
		Game:   visiontypes.GameCodGunGame,
		Roster: roster,
		Items: []BulkItem{
			{ID: "c-review", Extraction: visiontypes.RawExtraction{Players: []visiontypes.RawPlayer{{Name: "Ghost"}}}},
			{ID: "b-panic", Extraction: visiontypes.RawExtraction{Players: []visiontypes.RawPlayer{{Name: "boom"}}}},
			{ID: "a-ok", Extraction: visiontypes.RawExtraction{Players: []visiontypes.RawPlayer{gunGamePlayer("Soap", "9")}}},
			{ID: "d-empty", Extraction: visiontypes.RawExtraction{}},
		},
	}

	result, err := s.BulkImport(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, []string{"a-ok"}, itemIDs(result.Succeeded))
	require.Equal(t, []string{"c-review"}, itemIDs(result.NeedsReview))
	require.Equal(t, []string{"b-panic", "d-empty"}, itemIDs(result.Failed))
}

func TestVisionService_BulkImport_UnreadableItem(t *testing.T) {
	s, metrics := newTestService(t, nil, 2)

	result, err := s.BulkImport(context.Background(), BulkRequest{
		Game:   visiontypes.GameCodGunGame,
		Roster: roster,
		Items: []BulkItem{
			{ID: "ok", Extraction: visiontypes.RawExtraction{Players: []visiontypes.RawPlayer{gunGamePlayer("Ghost", "5")}}},
			{ID: "garbled", ReadError: errors.New("unexpected end of JSON input")},
		},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"ok"}, itemIDs(result.Succeeded))
	require.Equal(t, []string{"garbled"}, itemIDs(result.Failed))
	require.Equal(t, "The extraction could not be read: unexpected end of JSON input", result.Failed[0].Outcome.Message)
	require.Equal(t, 1, metrics.Outcomes(visiontypes.StatusFailed))
}

func TestVisionService_BulkImport_RejectsBadRequests(t *testing.T) {
	s, _ := newTestService(t, nil, 2)
	extraction := visiontypes.RawExtraction{Players: []visiontypes.RawPlayer{gunGamePlayer("Ghost", "1")}}

	tests := []struct {
		name    string
		items   []BulkItem
		wantErr error
	}{
		{
			name:    "empty id",
			items:   []BulkItem{{ID: "a", Extraction: extraction}, {ID: "", Extraction: extraction}},
			wantErr: ErrEmptyItemID,
		},
		{
			name:    "duplicate id",
			items:   []BulkItem{{ID: "a", Extraction: extraction}, {ID: "a", Extraction: extraction}},
			wantErr: ErrDuplicateItemID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.BulkImport(context.Background(), BulkRequest{Game: visiontypes.GameCodGunGame, Roster: roster, Items: tt.items})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestVisionService_BulkImport_Empty(t *testing.T) {
	s, _ := newTestService(t, nil, 2)
	result, err := s.BulkImport(context.Background(), BulkRequest{Game: visiontypes.GameMarioKart})
	require.NoError(t, err)
	require.Zero(t, result.Total())
	require.NotNil(t, result.Succeeded)
}

func TestVisionService_BulkImport_TeamGame(t *testing.T) {
	gen := testutils.NewTestDataGenerator(7)
	teamRoster := gen.GenerateRoster(8)

	req := BulkRequest{Game: visiontypes.GameCodHardpoint, Roster: teamRoster}
	for i := 0; i < 10; i++ {
		req.Items = append(req.Items, BulkItem{
			ID:         fmt.Sprintf("match-%02d", i),
			Extraction: gen.GenerateExtraction(visiontypes.GameCodHardpoint, teamRoster),
		})
	}

	s, _ := newTestService(t, nil, 4)
	result, err := s.BulkImport(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Succeeded, 10)
	for _, o := range result.Succeeded {
		totals := make(map[int]float64)
		for _, p := range o.Outcome.Data.Players {
			v, _ := p.StatValue("COD_SCORE")
			totals[p.Team] += visiondomain.NumericValue(v)
		}
		best := math.Inf(-1)
		for _, total := range totals {
			best = math.Max(best, total)
		}

		require.NotEmpty(t, o.Outcome.Data.Winner)
		for _, w := range o.Outcome.Data.Winner {
			require.Equal(t, best, totals[w.Team], "%s: winner %q is not on a top team", o.ItemID, w.Name)
		}
	}
}
