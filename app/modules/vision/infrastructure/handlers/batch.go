package visionhandlers

import (
	"context"

	"github.com/Black-And-White-Club/scorecard-vision/app/eventbus/handlerwrapper"
	visionservice "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/application"
	"github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/application/parsers"
	visionevents "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/events"
	"github.com/Black-And-White-Club/scorecard-vision/app/observability/attr"
)

// HandleBatchSubmitted runs a bulk import and publishes one batch report. An item whose
// extraction cannot be decoded still takes its place in the batch and is reported as failed.
// Requests the service rejects outright produce a rejection event instead of a retry.
func (h *VisionHandlers) HandleBatchSubmitted(ctx context.Context, payload *visionevents.BatchSubmittedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, handlerwrapper.ErrNilPayload
	}
	ctx, span := h.startSpan(ctx, "HandleBatchSubmitted")
	defer span.End()

	h.logger.InfoContext(ctx, "Batch submitted",
		attr.ExtractCorrelationID(ctx),
		attr.String("game", string(payload.Game)),
		attr.Int("items", len(payload.Items)),
	)

	items := make([]visionservice.BulkItem, 0, len(payload.Items))
	for _, it := range payload.Items {
		raw, err := parsers.DecodeExtraction(it.Extraction)
		items = append(items, visionservice.BulkItem{ID: it.ID, Extraction: raw, ReadError: err})
	}

	result, err := h.service.BulkImport(ctx, visionservice.BulkRequest{
		Game:   payload.Game,
		Roster: payload.Roster,
		Items:  items,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "Batch rejected",
			attr.ExtractCorrelationID(ctx),
			attr.String("game", string(payload.Game)),
			attr.Error(err),
		)
		return []handlerwrapper.Result{{
			Topic:    visionevents.BatchRejectedV1,
			Payload:  &visionevents.BatchRejectedPayloadV1{Game: payload.Game, Reason: err.Error()},
			Metadata: map[string]string{GameMetadataKey: string(payload.Game)},
		}}, nil
	}

	h.logger.InfoContext(ctx, "Batch processed",
		attr.ExtractCorrelationID(ctx),
		attr.String("batch_id", result.BatchID.String()),
		attr.Int("succeeded", len(result.Succeeded)),
		attr.Int("needs_review", len(result.NeedsReview)),
		attr.Int("failed", len(result.Failed)),
	)

	return []handlerwrapper.Result{{
		Topic: visionevents.BatchProcessedV1,
		Payload: &visionevents.BatchProcessedPayloadV1{
			BatchID:     result.BatchID.String(),
			Game:        result.Game,
			Succeeded:   toItemResults(result.Succeeded),
			NeedsReview: toItemResults(result.NeedsReview),
			Failed:      toItemResults(result.Failed),
		},
		Metadata: map[string]string{
			GameMetadataKey: string(payload.Game),
			"batch_id":      result.BatchID.String(),
		},
	}}, nil
}

func toItemResults(in []visionservice.ItemOutcome) []visionevents.BatchItemResultV1 {
	out := make([]visionevents.BatchItemResultV1, len(in))
	for i, o := range in {
		out[i] = visionevents.BatchItemResultV1{ItemID: o.ItemID, Outcome: o.Outcome}
	}
	return out
}
