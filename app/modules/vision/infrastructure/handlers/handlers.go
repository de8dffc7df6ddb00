package visionhandlers

import (
	"context"
	"log/slog"

	visionservice "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/application"
	"go.opentelemetry.io/otel/trace"
)

// GameMetadataKey tags outgoing results with the game they belong to.
const GameMetadataKey = "game"

// VisionHandlers implements the Handlers interface.
type VisionHandlers struct {
	service visionservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewVisionHandlers creates a new VisionHandlers.
func NewVisionHandlers(
	service visionservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &VisionHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

var _ Handlers = (*VisionHandlers)(nil)

func (h *VisionHandlers) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return h.tracer.Start(ctx, "VisionHandlers."+name)
}
