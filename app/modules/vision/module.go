package vision

import (
	"context"
	"fmt"
	"sync"

	"github.com/Black-And-White-Club/scorecard-vision/app/eventbus"
	visionservice "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/application"
	"github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/application/games"
	visionhandlers "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/infrastructure/handlers"
	visionmetrics "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/infrastructure/metrics"
	visionrouter "github.com/Black-And-White-Club/scorecard-vision/app/modules/vision/infrastructure/router"
	"github.com/Black-And-White-Club/scorecard-vision/app/observability"
	"github.com/Black-And-White-Club/scorecard-vision/config"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Module represents the vision module.
type Module struct {
	VisionService visionservice.Service
	VisionRouter  *visionrouter.VisionRouter
	cancelFunc    context.CancelFunc
	observability *observability.Observability
}

// NewVisionModule creates and initializes a new vision module.
func NewVisionModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	eventBus eventbus.EventBus,
	router *message.Router,
	routerCtx context.Context,
) (*Module, error) {
	logger := obs.Logger
	tracer := obs.Tracer

	logger.InfoContext(ctx, "vision.NewVisionModule initializing")

	// 1. Initialize Metrics
	metrics, err := visionmetrics.NewPrometheusMetrics(obs.Registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register vision metrics: %w", err)
	}

	// 2. Initialize Service
	registry := games.NewDefaultRegistry(games.Options{SuggestionLimit: cfg.Pipeline.SuggestionLimit})
	service := visionservice.NewVisionService(registry, logger, metrics, tracer, visionservice.Config{Workers: cfg.Pipeline.Workers})

	// 3. Initialize Handlers
	handlers := visionhandlers.NewVisionHandlers(service, logger, tracer)

	// 4. Initialize Router
	visionRouter := visionrouter.NewVisionRouter(logger, router, eventBus, eventBus, tracer, metrics, obs.Registry)

	// 5. Configure the router with handlers
	if err := visionRouter.Configure(routerCtx, handlers); err != nil {
		return nil, fmt.Errorf("failed to configure vision router: %w", err)
	}

	return &Module{
		VisionService: service,
		VisionRouter:  visionRouter,
		observability: obs,
	}, nil
}

// Run starts the vision module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Logger
	logger.InfoContext(ctx, "Starting vision module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Vision module goroutine stopped")
}

// Close shuts down the vision module.
func (m *Module) Close() error {
	logger := m.observability.Logger
	logger.Info("Stopping vision module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.VisionRouter != nil {
		if err := m.VisionRouter.Close(); err != nil {
			logger.Error("Error closing VisionRouter from module", "error", err)
			return fmt.Errorf("error closing VisionRouter: %w", err)
		}
	}

	logger.Info("Vision module stopped")
	return nil
}
