package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/campusops/canvas-gateway-api/pkg/canvas"
	"github.com/gofiber/fiber/v2"
)

const accountContextTimeout = 5 * time.Second

func ListAccountsHandler(svc canvas.Service, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "ListAccountsHandler"))

	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), accountContextTimeout)
		defer cancel()

		accounts, next, err := svc.ListAccounts(ctx, listOptions(c))
		if err != nil {
			return canvasError(logger, err)
		}

		return c.Status(fiber.StatusOK).JSON(pagedResponse{Items: accounts, NextCursor: next})
	}
}

// GetAccountHandler resolves /accounts/:id where :id may be "self".
func GetAccountHandler(svc canvas.Service, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "GetAccountHandler"))

	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), accountContextTimeout)
		defer cancel()

		account, err := svc.GetAccount(ctx, c.Params("id"))
		if err != nil {
			return canvasError(logger, err)
		}

		return c.Status(fiber.StatusOK).JSON(account)
	}
}
