package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/campusops/canvas-gateway-api/pkg/canvas"
	"github.com/gofiber/fiber/v2"
)

const moduleContextTimeout = 5 * time.Second

func ListModulesHandler(svc canvas.Service, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "ListModulesHandler"))

	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), moduleContextTimeout)
		defer cancel()

		modules, next, err := svc.ListModules(ctx, c.Params("id"), listOptions(c))
		if err != nil {
			return canvasError(logger, err)
		}

		return c.Status(fiber.StatusOK).JSON(pagedResponse{Items: modules, NextCursor: next})
	}
}

func ListModuleItemsHandler(svc canvas.Service, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "ListModuleItemsHandler"))

	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), moduleContextTimeout)
		defer cancel()

		items, next, err := svc.ListModuleItems(ctx, c.Params("id"), c.Params("moduleID"), listOptions(c))
		if err != nil {
			return canvasError(logger, err)
		}

		return c.Status(fiber.StatusOK).JSON(pagedResponse{Items: items, NextCursor: next})
	}
}

func ListPagesHandler(svc canvas.Service, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "ListPagesHandler"))

	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), moduleContextTimeout)
		defer cancel()

		pages, next, err := svc.ListPages(ctx, c.Params("id"), listOptions(c))
		if err != nil {
			return canvasError(logger, err)
		}

		return c.Status(fiber.StatusOK).JSON(pagedResponse{Items: pages, NextCursor: next})
	}
}

func ListContentExportsHandler(svc canvas.Service, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "ListContentExportsHandler"))

	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), moduleContextTimeout)
		defer cancel()

		exports, next, err := svc.ListContentExports(ctx, c.Params("id"), listOptions(c))
		if err != nil {
			return canvasError(logger, err)
		}

		return c.Status(fiber.StatusOK).JSON(pagedResponse{Items: exports, NextCursor: next})
	}
}
