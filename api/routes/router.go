package routes

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/campusops/canvas-gateway-api/api/handlers"
	"github.com/campusops/canvas-gateway-api/api/middleware"
	"github.com/campusops/canvas-gateway-api/pkg/canvas"
	"github.com/campusops/canvas-gateway-api/pkg/circuitbreaker"
	"github.com/campusops/canvas-gateway-api/pkg/core"
	"github.com/campusops/canvas-gateway-api/pkg/tokenstore"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(app fiber.Router, cfg *core.Config, rdb *redis.Client, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	svc, err := canvas.New(&cfg.Canvas, canvas.Options{
		Logger: logger,
	})
	if err != nil {
		return err
	}

	store := tokenstore.NewRedisStore(rdb, "")

	// A previous instance may already have exchanged a code; reuse its token.
	if svc.Token() == "" {
		seedCanvasToken(svc, store, logger)
	}

	withCB := middleware.WithCircuitBreaker(func(name string) circuitbreaker.Breaker {
		return circuitbreaker.NewRedisBreaker(
			rdb,
			name,
			circuitbreaker.DefaultOptions(),
			logger,
		)
	})

	api := app.Group("/api")

	oauth := api.Group("/oauth")
	oauth.Get("/authorize", handlers.AuthorizeURLHandler(svc, logger))
	oauth.Post("/token", withCB(handlers.ExchangeHandler(svc, store, logger)))

	courses := api.Group("/courses")
	courses.Get("/", withCB(handlers.ListCoursesHandler(svc, logger)))
	courses.Post("/", withCB(handlers.CreateCourseHandler(svc, logger)))
	courses.Get("/:id", withCB(handlers.GetCourseHandler(svc, logger)))
	courses.Put("/:id", withCB(handlers.UpdateCourseHandler(svc, logger)))
	courses.Delete("/:id", withCB(handlers.DeleteCourseHandler(svc, logger)))
	courses.Get("/:id/settings", withCB(handlers.GetCourseSettingsHandler(svc, logger)))
	courses.Put("/:id/settings", withCB(handlers.UpdateCourseSettingsHandler(svc, logger)))
	courses.Get("/:id/modules", withCB(handlers.ListModulesHandler(svc, logger)))
	courses.Get("/:id/modules/:moduleID/items", withCB(handlers.ListModuleItemsHandler(svc, logger)))
	courses.Get("/:id/pages", withCB(handlers.ListPagesHandler(svc, logger)))
	courses.Get("/:id/content_exports", withCB(handlers.ListContentExportsHandler(svc, logger)))

	accounts := api.Group("/accounts")
	accounts.Get("/", withCB(handlers.ListAccountsHandler(svc, logger)))
	accounts.Get("/:id", withCB(handlers.GetAccountHandler(svc, logger)))

	return nil
}

const tokenSeedSkew = 30 * time.Second

func seedCanvasToken(svc canvas.Service, store *tokenstore.RedisStore, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	tok, err := tokenstore.NewCachedFetcher(store, tokenSeedSkew).Token(ctx)
	if err != nil {
		// ErrNoToken just means nobody has run the oauth flow yet.
		if !errors.Is(err, tokenstore.ErrNoToken) {
			logger.Warn("could not load persisted canvas token", slog.Any("err", err))
		}
		return
	}

	if err := svc.SetToken(tok.AccessToken); err != nil {
		logger.Warn("could not seed canvas token", slog.Any("err", err))
	}
}
