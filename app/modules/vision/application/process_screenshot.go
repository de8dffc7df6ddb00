package visionservice

import (
	"context"
	"fmt"

	"github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/application/games"
	visiondomain "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain"
	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
	"github.com/Black-And-White-Club/scorecard-vision/app/observability/attr"
)

// ProcessScreenshot resolves the game's processor and runs the pipeline: normalize and
// reconcile players, compute winners, then code the result. Structural problems and panics
// become a failed outcome.
func (s *VisionService) ProcessScreenshot(ctx context.Context, req ScreenshotRequest) visiontypes.Outcome {
	outcome, err := withTelemetry(s, ctx, "ProcessScreenshot", req.Game, req.ItemID, func(ctx context.Context) (visiontypes.Outcome, error) {
		return s.processScreenshot(ctx, req), nil
	})
	if err != nil {
		outcome = visiondomain.FailedOutcome("The screenshot could not be processed because of an internal error.")
	}

	s.metrics.RecordOutcome(ctx, req.Game, outcome.Status)
	return outcome
}

// UnreadableOutcome is the failed outcome for an extraction document that could not be decoded.
func UnreadableOutcome(err error) visiontypes.Outcome {
	return visiondomain.FailedOutcome(fmt.Sprintf("The extraction could not be read: %v", err))
}

func (s *VisionService) processScreenshot(ctx context.Context, req ScreenshotRequest) visiontypes.Outcome {
	processor, err := s.registry.Get(req.Game)
	if err != nil {
		s.logger.WarnContext(ctx, "Unknown game",
			attr.ExtractCorrelationID(ctx),
			attr.String("item_id", req.ItemID),
			attr.String("game", string(req.Game)),
		)
		return visiondomain.FailedOutcome(err.Error())
	}

	batch, err := processor.ProcessPlayers(req.Extraction, req.Roster)
	s.recordBatch(ctx, req.Game, batch)
	if err != nil {
		s.logger.WarnContext(ctx, "Extraction rejected",
			attr.ExtractCorrelationID(ctx),
			attr.String("item_id", req.ItemID),
			attr.String("game", string(req.Game)),
			attr.String("code", games.ErrorCode(err)),
			attr.Error(err),
		)
		outcome := visiondomain.FailedOutcome(err.Error())
		outcome.Unresolved = batch.Unresolved
		return outcome
	}

	winners := processor.CalculateWinners(batch.Players)
	outcome := processor.ValidateResults(batch.Players, winners, batch.ReqCheck)
	outcome.Unresolved = batch.Unresolved

	s.logger.InfoContext(ctx, "Screenshot processed",
		attr.ExtractCorrelationID(ctx),
		attr.String("item_id", req.ItemID),
		attr.String("game", string(req.Game)),
		attr.String("status", string(outcome.Status)),
		attr.Int("players", len(outcome.Data.Players)),
		attr.Int("winners", len(outcome.Data.Winner)),
		attr.Int("unresolved", len(outcome.Unresolved)),
	)
	return outcome
}

// recordBatch reports unresolved players by reason and defaulted stat readings.
func (s *VisionService) recordBatch(ctx context.Context, game visiontypes.GameID, batch games.PlayerBatch) {
	byReason := make(map[visiontypes.UnresolvedReason]int)
	for _, u := range batch.Unresolved {
		byReason[u.Reason]++
	}
	for reason, n := range byReason {
		s.metrics.RecordUnresolvedPlayers(ctx, game, reason, n)
	}

	defaulted := 0
	for _, p := range batch.Players {
		for _, st := range p.Stats {
			if st.Source == visiontypes.SourceDefaulted {
				defaulted++
			}
		}
	}
	s.metrics.RecordDefaultedStats(ctx, game, defaulted)
}
