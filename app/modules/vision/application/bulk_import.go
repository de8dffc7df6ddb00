package visionservice

import (
	"context"
	"fmt"
	"sort"
	"sync"

	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
	"github.com/Black-And-White-Club/scorecard-vision/app/observability/attr"
	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
)

// BulkImport fans the items out on a bounded worker pool. Every item resolves to exactly one
// outcome; a failing item never affects the others. An error is returned only for malformed
// requests or when the pool itself fails.
func (s *VisionService) BulkImport(ctx context.Context, req BulkRequest) (BatchResult, error) {
	return withTelemetry(s, ctx, "BulkImport", req.Game, fmt.Sprintf("%d items", len(req.Items)), func(ctx context.Context) (BatchResult, error) {
		return s.bulkImport(ctx, req)
	})
}

func (s *VisionService) bulkImport(ctx context.Context, req BulkRequest) (BatchResult, error) {
	seen := make(map[string]struct{}, len(req.Items))
	for i, item := range req.Items {
		if item.ID == "" {
			return BatchResult{}, fmt.Errorf("%w: item %d", ErrEmptyItemID, i)
		}
		if _, dup := seen[item.ID]; dup {
			return BatchResult{}, fmt.Errorf("%w: %q", ErrDuplicateItemID, item.ID)
		}
		seen[item.ID] = struct{}{}
	}

	result := BatchResult{
		BatchID:     uuid.New(),
		Game:        req.Game,
		Succeeded:   []ItemOutcome{},
		NeedsReview: []ItemOutcome{},
		Failed:      []ItemOutcome{},
	}
	s.metrics.RecordBatchSize(ctx, req.Game, len(req.Items))
	if len(req.Items) == 0 {
		return result, nil
	}

	workerCount := s.workers
	if workerCount > len(req.Items) {
		workerCount = len(req.Items)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BatchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	outcomes := make(chan ItemOutcome, len(req.Items))

	var workers sync.WaitGroup
	for _, item := range req.Items {
		item := item
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			if item.ReadError != nil {
				outcomes <- ItemOutcome{ItemID: item.ID, Outcome: s.rejectUnreadable(ctx, req.Game, item)}
				return
			}
			outcomes <- ItemOutcome{
				ItemID: item.ID,
				Outcome: s.ProcessScreenshot(ctx, ScreenshotRequest{
					ItemID:     item.ID,
					Game:       req.Game,
					Extraction: item.Extraction,
					Roster:     req.Roster,
				}),
			}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return BatchResult{}, fmt.Errorf("submit item %q to worker pool: %w", item.ID, err)
		}
	}

	workers.Wait()
	close(outcomes)

	for o := range outcomes {
		switch o.Outcome.Status {
		case visiontypes.StatusSuccess:
			result.Succeeded = append(result.Succeeded, o)
		case visiontypes.StatusCheckRequest:
			result.NeedsReview = append(result.NeedsReview, o)
		default:
			result.Failed = append(result.Failed, o)
		}
	}
	for _, list := range [][]ItemOutcome{result.Succeeded, result.NeedsReview, result.Failed} {
		sort.Slice(list, func(i, j int) bool { return list[i].ItemID < list[j].ItemID })
	}

	s.logger.InfoContext(ctx, "Bulk import complete",
		attr.ExtractCorrelationID(ctx),
		attr.String("batch_id", result.BatchID.String()),
		attr.String("game", string(req.Game)),
		attr.Int("succeeded", len(result.Succeeded)),
		attr.Int("needs_review", len(result.NeedsReview)),
		attr.Int("failed", len(result.Failed)),
	)
	return result, nil
}

func (s *VisionService) rejectUnreadable(ctx context.Context, game visiontypes.GameID, item BulkItem) visiontypes.Outcome {
	s.logger.WarnContext(ctx, "Bulk item extraction unreadable",
		attr.ExtractCorrelationID(ctx),
		attr.String("item_id", item.ID),
		attr.Error(item.ReadError),
	)
	outcome := UnreadableOutcome(item.ReadError)
	s.metrics.RecordOutcome(ctx, game, outcome.Status)
	return outcome
}
