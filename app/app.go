package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/scorecard-vision/app/eventbus"
	"github.com/Black-And-White-Club/scorecard-vision/app/modules/vision"
	"github.com/Black-And-White-Club/scorecard-vision/app/observability"
	"github.com/Black-And-White-Club/scorecard-vision/app/observability/attr"
	"github.com/Black-And-White-Club/scorecard-vision/config"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// App holds the long-running service: the event router over NATS plus the ops HTTP server.
type App struct {
	Config        *config.Config
	Observability *observability.Observability
	EventBus      eventbus.EventBus
	Router        *message.Router
	VisionModule  *vision.Module

	opsServer *http.Server
}

// NewApp wires the service from configuration. Logs go to logOutput.
func NewApp(ctx context.Context, cfg *config.Config, logOutput io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	obs, err := observability.New(cfg.Observability, logOutput)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	logger := obs.Logger

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 10 * time.Second}, watermill.NewSlogLogger(logger))
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("failed to create Watermill router: %w", err)
	}

	module, err := vision.NewVisionModule(ctx, cfg, obs, bus, router, ctx)
	if err != nil {
		_ = bus.Close()
		return nil, fmt.Errorf("failed to initialize vision module: %w", err)
	}

	a := &App{
		Config:        cfg,
		Observability: obs,
		EventBus:      bus,
		Router:        router,
		VisionModule:  module,
	}
	if cfg.Observability.MetricsAddress != "" {
		a.opsServer = observability.NewOpsServer(cfg.Observability.MetricsAddress, obs.Registry, map[string]observability.HealthCheck{
			"router": a.routerHealth,
		})
	}
	return a, nil
}

func (a *App) routerHealth() error {
	select {
	case <-a.Router.Running():
		if a.Router.IsClosed() {
			return errors.New("router closed")
		}
		return nil
	default:
		return errors.New("router not running")
	}
}

// Run serves until ctx is canceled or the router stops, then shuts everything down.
func (a *App) Run(ctx context.Context) error {
	logger := a.Observability.Logger

	if a.opsServer != nil {
		go func() {
			logger.Info("Starting ops server", attr.String("address", a.opsServer.Addr))
			if err := a.opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Ops server stopped", attr.Error(err))
			}
		}()
	}

	go a.VisionModule.Run(ctx, nil)

	logger.InfoContext(ctx, "Starting Watermill router")
	runErr := a.Router.Run(ctx)

	shutdownErr := a.Close()
	if runErr != nil {
		return fmt.Errorf("router stopped: %w", runErr)
	}
	return shutdownErr
}

// Close stops the ops server, the module router and the event bus.
func (a *App) Close() error {
	logger := a.Observability.Logger
	var errs []error

	if a.opsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.opsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("ops server: %w", err))
		}
	}
	if err := a.VisionModule.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.EventBus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("event bus: %w", err))
	}

	if len(errs) > 0 {
		logger.Error("Shutdown finished with errors", attr.Error(errors.Join(errs...)))
		return errors.Join(errs...)
	}
	logger.Info("Application shut down gracefully")
	return nil
}
