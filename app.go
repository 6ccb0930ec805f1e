package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"freegames/internal/config"
	"freegames/internal/database"
	"freegames/internal/handlers"
	"freegames/internal/models"
	"freegames/internal/repositories"
	"freegames/internal/services"
	"freegames/pkg/rabbitmq"
)

// newApp wires the HTTP routes around service.
func newApp(service *services.GameService) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "freegames",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	api := app.Group("/api")
	handlers.NewGameHandler(service).RegisterRoutes(api)
	handlers.NewNightbotHandler(service).RegisterRoutes(app)

	return app
}

// openRepository builds the store selected by cfg. The returned func
// releases any underlying connection.
func openRepository(cfg *config.Config) (repositories.GameRepository, func() error, error) {
	if cfg.StorageDriver == config.StorageMemory {
		return repositories.NewMemoryGameRepository(), func() error { return nil }, nil
	}

	db, err := database.Open(cfg.StorageDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	slog.Info("connected to database", "driver", cfg.StorageDriver)
	return repositories.NewGORMGameRepository(db), sqlDB.Close, nil
}

// connectBroker dials RabbitMQ when a URL is configured. A nil client means
// events are not published.
func connectBroker(cfg *config.Config) (*rabbitmq.Client, error) {
	if cfg.RabbitMQURL == "" {
		slog.Info("RABBITMQ_URL not set, game events disabled")
		return nil, nil
	}
	client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
	if err != nil {
		return nil, err
	}
	if err := client.ConsumeGameEvents(logGameEvent); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// logGameEvent records each catalog change.
func logGameEvent(event models.GameEvent) error {
	slog.Info("game event",
		"event_id", event.EventID,
		"type", event.Type,
		"game_id", event.GameID,
		"title", event.Title,
		"occurred_at", event.OccurredAt,
	)
	return nil
}

// newService assembles the game service over repo, seeding demo data when
// configured.
func newService(cfg *config.Config, repo repositories.GameRepository, publisher services.EventPublisher) (*services.GameService, error) {
	if cfg.SeedDemoData {
		if err := seedDemoGames(repo); err != nil {
			return nil, err
		}
	}
	return services.NewGameService(repo, publisher), nil
}
