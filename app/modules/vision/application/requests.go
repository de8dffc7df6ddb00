package visionservice

import (
	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
	"github.com/google/uuid"
)

// ScreenshotRequest is one extraction to process.
type ScreenshotRequest struct {
	ItemID     string                     `json:"itemId"`
	Game       visiontypes.GameID         `json:"game"`
	Extraction visiontypes.RawExtraction  `json:"extraction"`
	Roster     []visiontypes.RosterPlayer `json:"roster"`
}

// BulkItem is one extraction within a bulk import. ReadError records an extraction that could
// not be decoded; such an item fails without being processed but keeps its place in the batch.
type BulkItem struct {
	ID         string                    `json:"id"`
	Extraction visiontypes.RawExtraction `json:"extraction"`
	ReadError  error                     `json:"-"`
}

// BulkRequest is a batch of extractions sharing a game and roster.
type BulkRequest struct {
	Game   visiontypes.GameID         `json:"game"`
	Roster []visiontypes.RosterPlayer `json:"roster"`
	Items  []BulkItem                 `json:"items"`
}

// ItemOutcome pairs an item id with its outcome.
type ItemOutcome struct {
	ItemID  string              `json:"itemId"`
	Outcome visiontypes.Outcome `json:"outcome"`
}

// BatchResult partitions bulk outcomes by status. Each slice is sorted by item id.
type BatchResult struct {
	BatchID     uuid.UUID          `json:"batchId"`
	Game        visiontypes.GameID `json:"game"`
	Succeeded   []ItemOutcome      `json:"succeeded"`
	NeedsReview []ItemOutcome      `json:"needsReview"`
	Failed      []ItemOutcome      `json:"failed"`
}

// Total returns the number of items in the batch.
func (b BatchResult) Total() int {
	return len(b.Succeeded) + len(b.NeedsReview) + len(b.Failed)
}

// GameInfo describes a registered game.
type GameInfo struct {
	Game        visiontypes.GameID        `json:"game"`
	DisplayName string                    `json:"displayName"`
	Shape       visiontypes.Shape         `json:"shape"`
	Stats       []string                  `json:"stats"`
	Winner      *visiontypes.WinnerConfig `json:"winner,omitempty"`
}
