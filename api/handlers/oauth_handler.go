package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/campusops/canvas-gateway-api/pkg/canvas"
	"github.com/campusops/canvas-gateway-api/pkg/tokenstore"
	"github.com/gofiber/fiber/v2"
)

const oauthContextTimeout = 10 * time.Second

type exchangeRequest struct {
	Code string `json:"code"`
}

type exchangeResponse struct {
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
	UserID    int64  `json:"user_id,omitempty"`
	UserName  string `json:"user_name,omitempty"`
}

// AuthorizeURLHandler hands the caller the Canvas authorization URL for the
// supplied state. The browser redirect and consent happen outside the
// gateway.
func AuthorizeURLHandler(svc canvas.Service, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "AuthorizeURLHandler"))

	return func(c *fiber.Ctx) error {
		state := c.Query("state")
		if state == "" {
			return fiber.NewError(fiber.StatusBadRequest, "state is required")
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"authorize_url": svc.AuthCodeURL(state),
		})
	}
}

// ExchangeHandler trades an authorization code for a Canvas access token.
// The raw token never leaves the gateway; it is captured by the client and
// persisted to the token store for other instances.
func ExchangeHandler(svc canvas.Service, store *tokenstore.RedisStore, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("handler", "ExchangeHandler"))

	return func(c *fiber.Ctx) error {
		var req exchangeRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if req.Code == "" {
			return fiber.NewError(fiber.StatusBadRequest, "code is required")
		}

		ctx, cancel := context.WithTimeout(c.Context(), oauthContextTimeout)
		defer cancel()

		tok, err := svc.ExchangeAuthorizationCode(ctx, req.Code)
		if err != nil {
			return canvasError(logger, err)
		}

		if store != nil {
			saveErr := store.Save(ctx, &tokenstore.Token{
				AccessToken: tok.AccessToken,
				TokenType:   tok.TokenType,
				ExpiresIn:   tok.ExpiresIn,
			})
			if saveErr != nil {
				logger.Warn("failed to persist canvas token", slog.Any("err", saveErr))
			}
		}

		return c.Status(fiber.StatusOK).JSON(exchangeResponse{
			TokenType: tok.TokenType,
			ExpiresIn: tok.ExpiresIn,
			UserID:    tok.User.ID,
			UserName:  tok.User.Name,
		})
	}
}
