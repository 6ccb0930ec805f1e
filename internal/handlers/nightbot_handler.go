package handlers

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"freegames/internal/services"
)

// NightbotHandler serves the plain-text summary used by chat bots.
type NightbotHandler struct {
	service *services.GameService
}

// NewNightbotHandler creates a new NightbotHandler.
func NewNightbotHandler(service *services.GameService) *NightbotHandler {
	return &NightbotHandler{service: service}
}

// RegisterRoutes registers GET /nightbot on router.
func (h *NightbotHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/nightbot", h.HandleNightbot)
}

// HandleNightbot lists the titles of games that need no subscription.
func (h *NightbotHandler) HandleNightbot(c *fiber.Ctx) error {
	titles, err := h.service.FreeGameTitles()
	if err != nil {
		slog.Error("Could not build nightbot response", "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Error fetching games")
	}
	if len(titles) == 0 {
		return c.SendString("No free games right now")
	}
	return c.SendString("Free games right now: " + strings.Join(titles, ", "))
}
