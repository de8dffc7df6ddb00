package visionevents

import (
	"encoding/json"

	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
)

// Inbound requests.
const (
	ScreenshotSubmittedV1 = "vision.screenshot.submitted.v1"
	BatchSubmittedV1      = "vision.batch.submitted.v1"
)

// Outbound results. A screenshot result is routed by its outcome status.
const (
	ResultProcessedV1      = "vision.result.processed.v1"
	ResultReviewRequiredV1 = "vision.result.review_required.v1"
	ResultFailedV1         = "vision.result.failed.v1"
	BatchProcessedV1       = "vision.batch.processed.v1"
	BatchRejectedV1        = "vision.batch.rejected.v1"
)

// ScreenshotSubmittedPayloadV1 asks for one extraction to be processed. Extraction is the raw
// vision output document.
type ScreenshotSubmittedPayloadV1 struct {
	ItemID     string                     `json:"item_id"`
	Game       visiontypes.GameID         `json:"game"`
	Extraction json.RawMessage            `json:"extraction"`
	Roster     []visiontypes.RosterPlayer `json:"roster"`
}

// ResultPayloadV1 carries the outcome for one screenshot.
type ResultPayloadV1 struct {
	ItemID  string              `json:"item_id"`
	Game    visiontypes.GameID  `json:"game"`
	Outcome visiontypes.Outcome `json:"outcome"`
}

// BatchItemV1 is one extraction within a batch request.
type BatchItemV1 struct {
	ID         string          `json:"id"`
	Extraction json.RawMessage `json:"extraction"`
}

// BatchSubmittedPayloadV1 asks for many extractions of the same game to be processed.
type BatchSubmittedPayloadV1 struct {
	Game   visiontypes.GameID         `json:"game"`
	Roster []visiontypes.RosterPlayer `json:"roster"`
	Items  []BatchItemV1              `json:"items"`
}

// BatchItemResultV1 pairs an item id with its outcome.
type BatchItemResultV1 struct {
	ItemID  string              `json:"item_id"`
	Outcome visiontypes.Outcome `json:"outcome"`
}

// BatchProcessedPayloadV1 reports a finished batch, partitioned by status.
type BatchProcessedPayloadV1 struct {
	BatchID     string              `json:"batch_id"`
	Game        visiontypes.GameID  `json:"game"`
	Succeeded   []BatchItemResultV1 `json:"succeeded"`
	NeedsReview []BatchItemResultV1 `json:"needs_review"`
	Failed      []BatchItemResultV1 `json:"failed"`
}

// BatchRejectedPayloadV1 reports a batch request that could not be accepted at all.
type BatchRejectedPayloadV1 struct {
	Game   visiontypes.GameID `json:"game"`
	Reason string             `json:"reason"`
}

// ResultTopic maps an outcome status to its result topic.
func ResultTopic(status visiontypes.Status) string {
	switch status {
	case visiontypes.StatusSuccess:
		return ResultProcessedV1
	case visiontypes.StatusCheckRequest:
		return ResultReviewRequiredV1
	default:
		return ResultFailedV1
	}
}
