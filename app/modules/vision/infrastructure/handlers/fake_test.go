package visionhandlers

import (
	"context"

	visionservice "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/application"
	visiontypes "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/domain/types"
)

// FakeVisionService provides a programmable stub for the visionservice.Service interface.
type FakeVisionService struct {
	trace []string

	ProcessScreenshotFunc func(ctx context.Context, req visionservice.ScreenshotRequest) visiontypes.Outcome
	BulkImportFunc        func(ctx context.Context, req visionservice.BulkRequest) (visionservice.BatchResult, error)
	GamesFunc             func() []visionservice.GameInfo
}

func NewFakeVisionService() *FakeVisionService {
	return &FakeVisionService{trace: []string{}}
}

func (f *FakeVisionService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of service methods called.
func (f *FakeVisionService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeVisionService) ProcessScreenshot(ctx context.Context, req visionservice.ScreenshotRequest) visiontypes.Outcome {
	f.record("ProcessScreenshot")
	if f.ProcessScreenshotFunc != nil {
		return f.ProcessScreenshotFunc(ctx, req)
	}
	return visiontypes.Outcome{}
}

func (f *FakeVisionService) BulkImport(ctx context.Context, req visionservice.BulkRequest) (visionservice.BatchResult, error) {
	f.record("BulkImport")
	if f.BulkImportFunc != nil {
		return f.BulkImportFunc(ctx, req)
	}
	return visionservice.BatchResult{}, nil
}

func (f *FakeVisionService) Games() []visionservice.GameInfo {
	f.record("Games")
	if f.GamesFunc != nil {
		return f.GamesFunc()
	}
	return nil
}

var _ visionservice.Service = (*FakeVisionService)(nil)
