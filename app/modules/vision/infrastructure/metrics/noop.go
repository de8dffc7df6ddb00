package visionmetrics

import (
	"context"
	"time"

	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
)

// NoOpMetrics discards everything.
type NoOpMetrics struct{}

var _ VisionMetrics = (*NoOpMetrics)(nil)

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, visiontypes.GameID) {}

func (NoOpMetrics) RecordOperationSuccess(context.Context, string, visiontypes.GameID) {}

func (NoOpMetrics) RecordOperationFailure(context.Context, string, visiontypes.GameID) {}

func (NoOpMetrics) RecordOperationDuration(context.Context, string, visiontypes.GameID, time.Duration) {
}

func (NoOpMetrics) RecordOutcome(context.Context, visiontypes.GameID, visiontypes.Status) {}

func (NoOpMetrics) RecordUnresolvedPlayers(context.Context, visiontypes.GameID, visiontypes.UnresolvedReason, int) {
}

func (NoOpMetrics) RecordDefaultedStats(context.Context, visiontypes.GameID, int) {}

func (NoOpMetrics) RecordBatchSize(context.Context, visiontypes.GameID, int) {}

func (NoOpMetrics) RecordHandlerAttempt(context.Context, string) {}

func (NoOpMetrics) RecordHandlerSuccess(context.Context, string) {}

func (NoOpMetrics) RecordHandlerFailure(context.Context, string) {}

func (NoOpMetrics) RecordHandlerDuration(context.Context, string, time.Duration) {}
