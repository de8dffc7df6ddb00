package visionservice

import (
	"context"

	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
)

// Service defines the vision pipeline entry points.
type Service interface {
	// ProcessScreenshot runs one extraction through its game's pipeline. It always returns
	// exactly one outcome.
	ProcessScreenshot(ctx context.Context, req ScreenshotRequest) visiontypes.Outcome

	// BulkImport runs many extractions of the same game concurrently.
	BulkImport(ctx context.Context, req BulkRequest) (BatchResult, error)

	// Games lists the supported games.
	Games() []GameInfo
}
