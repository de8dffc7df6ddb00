package visionhandlers

import (
	"context"

	"github.com/Black-And-White-Club/scorecard-vision/app/eventbus/handlerwrapper"
	visionevents "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/events"
)

// Handlers interface defines the vision event handlers.
type Handlers interface {
	HandleScreenshotSubmitted(ctx context.Context, payload *visionevents.ScreenshotSubmittedPayloadV1) ([]handlerwrapper.Result, error)
	HandleBatchSubmitted(ctx context.Context, payload *visionevents.BatchSubmittedPayloadV1) ([]handlerwrapper.Result, error)
}
