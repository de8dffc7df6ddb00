package visionmetrics

import (
	"context"
	"time"

	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
)

// VisionMetrics records pipeline and handler telemetry.
type VisionMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string, game visiontypes.GameID)
	RecordOperationSuccess(ctx context.Context, operation string, game visiontypes.GameID)
	RecordOperationFailure(ctx context.Context, operation string, game visiontypes.GameID)
	RecordOperationDuration(ctx context.Context, operation string, game visiontypes.GameID, duration time.Duration)

	RecordOutcome(ctx context.Context, game visiontypes.GameID, status visiontypes.Status)
	RecordUnresolvedPlayers(ctx context.Context, game visiontypes.GameID, reason visiontypes.UnresolvedReason, count int)
	RecordDefaultedStats(ctx context.Context, game visiontypes.GameID, count int)
	RecordBatchSize(ctx context.Context, game visiontypes.GameID, size int)

	RecordHandlerAttempt(ctx context.Context, handler string)
	RecordHandlerSuccess(ctx context.Context, handler string)
	RecordHandlerFailure(ctx context.Context, handler string)
	RecordHandlerDuration(ctx context.Context, handler string, duration time.Duration)
}
