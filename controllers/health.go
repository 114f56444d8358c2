package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/booking-marketplace/apperr"
	"github.com/rs/zerolog"
)

// Pinger reports whether a backing store is reachable.
type Pinger func(ctx context.Context) error

type HealthController struct {
	ping Pinger
	log  *zerolog.Logger
}

func NewHealthController(ping Pinger, log *zerolog.Logger) *HealthController {
	return &HealthController{ping: ping, log: log}
}

func (h *HealthController) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		h.log.Error().Err(err).Msg("health check failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "unavailable",
			"database": apperr.Kind(err),
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
