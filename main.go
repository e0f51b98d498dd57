package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusops/canvas-gateway-api/api"
	"github.com/campusops/canvas-gateway-api/pkg/core"

	"github.com/gofiber/fiber/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := core.LoadEnv(); err != nil {
		log.Printf("env files not fully loaded: %v", err)
	}

	cfg, err := core.NewConfigFromEnv()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := core.NewLogger(cfg)

	var otelSvc core.OtelService
	if !cfg.Otel.Disable {
		otelSvc, err = core.NewOtelService(ctx, &cfg)
		if err != nil {
			logger.Warn("telemetry unavailable, continuing without it", "err", err)
			otelSvc = nil
		} else {
			logger = core.NewLoggerWithOtel(cfg, otelSvc)
			defer otelSvc.Shutdown(context.Background(), logger)
		}
	}

	app, err := buildApp(AppOptions{
		Config: &cfg,
		Logger: logger,
		Otel:   otelSvc,
	})
	if err != nil {
		logger.Error("failed to build app", "err", err)
		return
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("starting server", "addr", addr, "environment", cfg.Environment)

	if err := runServer(ctx, app, addr); err != nil {
		logger.Error("server error", "err", err)
	}
}

// AppOptions collects the pieces main wires together. Zero values are fine
// for tests: the config comes from the environment and auth can be skipped.
type AppOptions struct {
	Config   *core.Config
	Logger   *slog.Logger
	Otel     core.OtelService
	SkipAuth bool
}

func buildApp(opts AppOptions) (*fiber.App, error) {
	cfg := opts.Config
	if cfg == nil {
		fromEnv, err := core.NewConfigFromEnv()
		if err != nil {
			return nil, err
		}
		cfg = &fromEnv
	}
	if opts.SkipAuth {
		cfg.SkipAuth = true
	}

	logger := opts.Logger
	if logger == nil {
		logger = core.NewLogger(*cfg)
	}

	return api.New(&api.Config{
		Otel:   opts.Otel,
		Logger: logger,
		Config: *cfg,
	})
}

func runServer(ctx context.Context, app *fiber.App, addr string) error {
	srvErr := make(chan error, 1)

	go func() {
		srvErr <- app.Listen(addr)
	}()

	select {
	case err := <-srvErr:
		return err
	case <-ctx.Done():
	}

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	return nil
}
