package api

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/campusops/canvas-gateway-api/api/middleware"
	"github.com/campusops/canvas-gateway-api/api/routes"
	"github.com/campusops/canvas-gateway-api/pkg/core"
	redisLocal "github.com/campusops/canvas-gateway-api/pkg/redis"

	"go.opentelemetry.io/otel/codes"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	slogfiber "github.com/samber/slog-fiber"
)

func errorHandler(logger *slog.Logger, otel core.OtelService) fiber.ErrorHandler {
	handleFiberError := func(ctx *fiber.Ctx, err *fiber.Error) error {
		if otel != nil {
			span := otel.SpanFromContext(ctx.Context())
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Message)
		}

		logger.Error(
			"Fiber Error",
			"Code",
			err.Code,
			"Message",
			err.Message,
		)

		return ctx.
			Status(err.Code).
			SendString(err.Message)
	}

	return func(ctx *fiber.Ctx, err error) error {
		var e *fiber.Error
		if !errors.As(err, &e) {
			e = fiber.ErrInternalServerError
		}
		return handleFiberError(ctx, e)
	}
}

func stackTraceHandler(logger *slog.Logger) func(*fiber.Ctx, any) {
	return func(c *fiber.Ctx, e any) {
		stack := debug.Stack()
		logger.ErrorContext(
			c.Context(),
			"panic!",
			"stack",
			stack,
			"err",
			e,
		)
	}
}

type Config struct {
	Otel   core.OtelService
	Logger *slog.Logger
	// Override for testing; built from core.Config when nil.
	Redis *redis.Client
	core.Config
}

func New(cfg *Config) (*fiber.App, error) {
	fiberConfig := fiber.Config{
		ErrorHandler: errorHandler(cfg.Logger, cfg.Otel),
	}

	app := fiber.New(fiberConfig)

	app.Use(recover.New(recover.Config{
		Next:              nil,
		EnableStackTrace:  true,
		StackTraceHandler: stackTraceHandler(cfg.Logger),
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "*",
		AllowMethods: "*",
	}))

	app.Use(otelfiber.Middleware())

	app.Use(slogfiber.NewWithConfig(
		cfg.Logger,
		slogfiber.Config{
			WithRequestID: true,
			WithSpanID:    true,
			WithTraceID:   true,
		},
	))

	if !cfg.SkipAuth {
		verifier, err := middleware.NewTokenVerifier(middleware.VerifierConfig{
			Issuer:   cfg.Auth.Issuer,
			JWKSURL:  cfg.Auth.JWKSURL,
			ClientID: cfg.Auth.ClientID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize auth middleware: %w", err)
		}
		app.Use(verifier.FiberMiddleware())
	}

	rdb := cfg.Redis
	if rdb == nil {
		rdb = redisLocal.NewClient(redisLocal.Config{
			Addr:     cfg.Config.Redis.Addr,
			Password: cfg.Config.Redis.Password,
			DB:       cfg.Config.Redis.DB,
		}, cfg.Logger)
	}

	routes.StatusRouter(app, rdb)

	if err := routes.RegisterRoutes(app, &cfg.Config, rdb, cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to register routes: %w", err)
	}

	return app, nil
}
