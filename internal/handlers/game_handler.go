package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"freegames/internal/models"
	"freegames/internal/repositories"
	"freegames/internal/services"
	"freegames/internal/validation"
)

// GameHandler handles HTTP requests for the game catalog.
type GameHandler struct {
	service *services.GameService
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(service *services.GameService) *GameHandler {
	return &GameHandler{
		service: service,
	}
}

// RegisterRoutes registers the catalog routes on router.
func (h *GameHandler) RegisterRoutes(router fiber.Router) {
	gameRoutes := router.Group("/games")
	gameRoutes.Get("/", h.HandleListGames)
	gameRoutes.Post("/", h.HandleCreateGame)
	// Must precede /:id.
	gameRoutes.Post("/refresh", h.HandleRefreshGames)
	gameRoutes.Get("/:id", h.HandleGetGame)
	gameRoutes.Put("/:id", h.HandleUpdateGame)
	gameRoutes.Patch("/:id", h.HandleUpdateGame)
	gameRoutes.Delete("/:id", h.HandleDeleteGame)

	router.Get("/platforms", h.HandleGetPlatforms)
	router.Get("/genres", h.HandleGetGenres)
}

// HandleListGames returns the filtered and sorted catalog.
func (h *GameHandler) HandleListGames(c *fiber.Ctx) error {
	filter, err := parseGameFilter(c)
	if err != nil {
		return respondError(c, err, "Could not retrieve games")
	}

	games, err := h.service.ListGames(filter)
	if err != nil {
		return respondError(c, err, "Could not retrieve games")
	}

	if page, limit, ok := pageParams(c); ok {
		return c.JSON(Paginate(games, page, limit))
	}
	return c.JSON(games)
}

// HandleGetGame retrieves a single game by its ID.
func (h *GameHandler) HandleGetGame(c *fiber.Ctx) error {
	id, err := gameID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid game ID",
		})
	}
	game, err := h.service.GetGame(id)
	if err != nil {
		return respondError(c, err, "Could not retrieve game")
	}
	return c.JSON(game)
}

// HandleCreateGame adds a new game.
func (h *GameHandler) HandleCreateGame(c *fiber.Ctx) error {
	var input models.GameInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	game, err := h.service.CreateGame(input)
	if err != nil {
		return respondError(c, err, "Could not create game")
	}
	return c.Status(fiber.StatusCreated).JSON(game)
}

// HandleUpdateGame merges a partial payload into an existing game. PUT and
// PATCH behave the same.
func (h *GameHandler) HandleUpdateGame(c *fiber.Ctx) error {
	id, err := gameID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid game ID",
		})
	}

	var patch models.GamePatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	game, err := h.service.UpdateGame(id, patch)
	if err != nil {
		return respondError(c, err, "Could not update game")
	}
	return c.JSON(game)
}

// HandleDeleteGame removes a game.
func (h *GameHandler) HandleDeleteGame(c *fiber.Ctx) error {
	id, err := gameID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid game ID",
		})
	}

	deleted, err := h.service.DeleteGame(id)
	if err != nil {
		return respondError(c, err, "Could not delete game")
	}
	if !deleted {
		return respondError(c, repositories.ErrGameNotFound, "")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleRefreshGames asks the store providers for fresh listings.
func (h *GameHandler) HandleRefreshGames(c *fiber.Ctx) error {
	if err := h.service.RefreshFromProviders(c.UserContext()); err != nil {
		return respondError(c, err, "Could not refresh games")
	}
	return c.JSON(fiber.Map{"message": "Games refreshed"})
}

// HandleGetPlatforms lists the distinct platforms in the catalog.
func (h *GameHandler) HandleGetPlatforms(c *fiber.Ctx) error {
	platforms, err := h.service.Platforms()
	if err != nil {
		return respondError(c, err, "Could not retrieve platforms")
	}
	return c.JSON(platforms)
}

// HandleGetGenres lists the distinct genres in the catalog.
func (h *GameHandler) HandleGetGenres(c *fiber.Ctx) error {
	genres, err := h.service.Genres()
	if err != nil {
		return respondError(c, err, "Could not retrieve genres")
	}
	return c.JSON(genres)
}

func gameID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// respondError maps service errors to status codes. Unexpected errors are
// logged and reported with the generic message only.
func respondError(c *fiber.Ctx, err error, message string) error {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": verr.Message,
			"errors":  verr.Fields,
		})
	case errors.Is(err, repositories.ErrGameNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Game not found",
		})
	case errors.Is(err, services.ErrNotImplemented):
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{
			"message": "Refreshing from store providers is not available",
		})
	default:
		slog.Error(message, "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": message,
		})
	}
}
