package visionservice

import (
	"context"
	"sync"
	"time"

	"github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/application/games"
	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
	visionmetrics "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/infrastructure/metrics"
)

// ------------------------
// Fake Metrics
// ------------------------

// FakeMetrics records every call. Safe for concurrent use.
type FakeMetrics struct {
	mu         sync.Mutex
	trace      []string
	outcomes   map[visiontypes.Status]int
	unresolved map[visiontypes.UnresolvedReason]int
	defaulted  int
	failures   int
}

func NewFakeMetrics() *FakeMetrics {
	return &FakeMetrics{
		outcomes:   make(map[visiontypes.Status]int),
		unresolved: make(map[visiontypes.UnresolvedReason]int),
	}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeMetrics) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeMetrics) Outcomes(status visiontypes.Status) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.outcomes[status]
}

func (f *FakeMetrics) Unresolved(reason visiontypes.UnresolvedReason) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unresolved[reason]
}

func (f *FakeMetrics) Defaulted() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.defaulted
}

func (f *FakeMetrics) Failures() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failures
}

func (f *FakeMetrics) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeMetrics) RecordOperationAttempt(context.Context, string, visiontypes.GameID) {
	f.record("RecordOperationAttempt")
}

func (f *FakeMetrics) RecordOperationSuccess(context.Context, string, visiontypes.GameID) {
	f.record("RecordOperationSuccess")
}

func (f *FakeMetrics) RecordOperationFailure(context.Context, string, visiontypes.GameID) {
	f.record("RecordOperationFailure")
	f.mu.Lock()
	f.failures++
	f.mu.Unlock()
}

func (f *FakeMetrics) RecordOperationDuration(context.Context, string, visiontypes.GameID, time.Duration) {
	f.record("RecordOperationDuration")
}

func (f *FakeMetrics) RecordOutcome(_ context.Context, _ visiontypes.GameID, status visiontypes.Status) {
	f.record("RecordOutcome")
	f.mu.Lock()
	f.outcomes[status]++
	f.mu.Unlock()
}

func (f *FakeMetrics) RecordUnresolvedPlayers(_ context.Context, _ visiontypes.GameID, reason visiontypes.UnresolvedReason, count int) {
	f.record("RecordUnresolvedPlayers")
	f.mu.Lock()
	f.unresolved[reason] += count
	f.mu.Unlock()
}

func (f *FakeMetrics) RecordDefaultedStats(_ context.Context, _ visiontypes.GameID, count int) {
	f.record("RecordDefaultedStats")
	f.mu.Lock()
	f.defaulted += count
	f.mu.Unlock()
}

func (f *FakeMetrics) RecordBatchSize(context.Context, visiontypes.GameID, int) {
	f.record("RecordBatchSize")
}

func (f *FakeMetrics) RecordHandlerAttempt(context.Context, string)                 {}
func (f *FakeMetrics) RecordHandlerSuccess(context.Context, string)                 {}
func (f *FakeMetrics) RecordHandlerFailure(context.Context, string)                 {}
func (f *FakeMetrics) RecordHandlerDuration(context.Context, string, time.Duration) {}

var _ visionmetrics.VisionMetrics = (*FakeMetrics)(nil)

// ------------------------
// Panicking Processor
// ------------------------

// panickingProcessor wraps a real processor and panics on any player named "boom".
type panickingProcessor struct {
	games.Processor
}

func (p panickingProcessor) ProcessPlayers(raw visiontypes.RawExtraction, roster []visiontypes.RosterPlayer) (games.PlayerBatch, error) {
	for _, rp := range raw.Players {
		if rp.Name == "boom" {
			panic("extraction blew up")
		}
	}
	return p.Processor.ProcessPlayers(raw, roster)
}
