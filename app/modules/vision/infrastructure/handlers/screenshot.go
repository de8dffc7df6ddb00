package visionhandlers

import (
	"context"

	"github.com/Black-And-White-Club/scorecard-vision/app/eventbus/handlerwrapper"
	visionservice "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/application"
	"github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/application/parsers"
	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
	visionevents "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/events"
	"github.com/Black-And-White-Club/scorecard-vision/app/observability/attr"
)

// HandleScreenshotSubmitted decodes the extraction, runs the pipeline and publishes the outcome
// on the topic matching its status. Undecodable extractions are reported as failed results.
func (h *VisionHandlers) HandleScreenshotSubmitted(ctx context.Context, payload *visionevents.ScreenshotSubmittedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, handlerwrapper.ErrNilPayload
	}
	ctx, span := h.startSpan(ctx, "HandleScreenshotSubmitted")
	defer span.End()

	h.logger.InfoContext(ctx, "Screenshot submitted",
		attr.ExtractCorrelationID(ctx),
		attr.String("item_id", payload.ItemID),
		attr.String("game", string(payload.Game)),
		attr.Int("roster_size", len(payload.Roster)),
	)

	raw, err := parsers.DecodeExtraction(payload.Extraction)
	if err != nil {
		h.logger.WarnContext(ctx, "Extraction could not be decoded",
			attr.ExtractCorrelationID(ctx),
			attr.String("item_id", payload.ItemID),
			attr.Error(err),
		)
		return []handlerwrapper.Result{h.resultFor(payload, visionservice.UnreadableOutcome(err))}, nil
	}

	outcome := h.service.ProcessScreenshot(ctx, visionservice.ScreenshotRequest{
		ItemID:     payload.ItemID,
		Game:       payload.Game,
		Extraction: raw,
		Roster:     payload.Roster,
	})

	h.logger.InfoContext(ctx, "Screenshot processed",
		attr.ExtractCorrelationID(ctx),
		attr.String("item_id", payload.ItemID),
		attr.String("status", string(outcome.Status)),
	)
	return []handlerwrapper.Result{h.resultFor(payload, outcome)}, nil
}

func (h *VisionHandlers) resultFor(payload *visionevents.ScreenshotSubmittedPayloadV1, outcome visiontypes.Outcome) handlerwrapper.Result {
	return handlerwrapper.Result{
		Topic: visionevents.ResultTopic(outcome.Status),
		Payload: &visionevents.ResultPayloadV1{
			ItemID:  payload.ItemID,
			Game:    payload.Game,
			Outcome: outcome,
		},
		Metadata: map[string]string{GameMetadataKey: string(payload.Game)},
	}
}
