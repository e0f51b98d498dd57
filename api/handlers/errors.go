package handlers

import (
	"errors"
	"log/slog"

	"github.com/campusops/canvas-gateway-api/pkg/canvas"
	"github.com/gofiber/fiber/v2"
)

// canvasError maps client error taxonomy onto gateway responses. Upstream
// API statuses pass through so callers see what Canvas saw; auth and
// transport failures collapse to 502 without leaking credentials detail.
func canvasError(logger *slog.Logger, err error) error {
	var authErr *canvas.AuthError
	if errors.As(err, &authErr) {
		logger.Error("canvas auth failure", slog.String("reason", authErr.Reason), slog.Int("status", authErr.StatusCode))
		return fiber.NewError(fiber.StatusBadGateway, "canvas authentication failed")
	}

	var apiErr *canvas.APIError
	if errors.As(err, &apiErr) {
		logger.Warn("canvas api error", slog.Int("status", apiErr.StatusCode))
		return fiber.NewError(apiErr.StatusCode, "canvas request failed")
	}

	var trErr *canvas.TransportError
	if errors.As(err, &trErr) {
		logger.Error("canvas unreachable", slog.Any("err", trErr.Err))
		return fiber.NewError(fiber.StatusBadGateway, "canvas unreachable")
	}

	logger.Error("canvas call failed", slog.Any("err", err))
	return fiber.ErrInternalServerError
}
