package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"freegames/internal/models"
	"freegames/internal/query"
	"freegames/internal/repositories"
	"freegames/internal/validation"
)

// ErrNotImplemented is returned by capabilities that exist in the API but
// have no backing integration yet.
var ErrNotImplemented = errors.New("not implemented")

// EventPublisher delivers catalog lifecycle events to a broker.
type EventPublisher interface {
	PublishGameEvent(event models.GameEvent) error
}

// GameService handles business logic related to the game catalog.
type GameService struct {
	repo      repositories.GameRepository
	validator *validation.Validator
	publisher EventPublisher
}

// NewGameService creates a new GameService. publisher may be nil, in which
// case events are dropped.
func NewGameService(repo repositories.GameRepository, publisher EventPublisher) *GameService {
	return &GameService{
		repo:      repo,
		validator: validation.New(),
		publisher: publisher,
	}
}

// ListGames returns the games matching filter in the requested order.
func (s *GameService) ListGames(filter models.GameFilter) ([]models.Game, error) {
	if err := s.validator.Struct("Invalid filter parameters", filter); err != nil {
		return nil, err
	}
	games, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return query.Evaluate(games, filter), nil
}

// GetGame retrieves a single game by its ID.
func (s *GameService) GetGame(id int64) (*models.Game, error) {
	return s.repo.GetByID(id)
}

// CreateGame validates input, stores the new game and announces it.
func (s *GameService) CreateGame(input models.GameInput) (*models.Game, error) {
	if err := s.validator.Struct("Invalid game data", input); err != nil {
		return nil, err
	}
	game := models.NewGame(input)
	if err := s.repo.Create(&game); err != nil {
		return nil, fmt.Errorf("failed to create game in repository: %w", err)
	}
	s.publish(models.GameCreated, game)
	return &game, nil
}

// UpdateGame merges patch over the stored game.
func (s *GameService) UpdateGame(id int64, patch models.GamePatch) (*models.Game, error) {
	if err := s.validator.Struct("Invalid game data", patch); err != nil {
		return nil, err
	}
	game, err := s.repo.Update(id, patch)
	if err != nil {
		return nil, err
	}
	s.publish(models.GameUpdated, *game)
	return game, nil
}

// DeleteGame reports whether a game was removed.
func (s *GameService) DeleteGame(id int64) (bool, error) {
	removed, err := s.repo.Delete(id)
	if err != nil {
		return false, fmt.Errorf("failed to delete game %d: %w", id, err)
	}
	if removed {
		s.publish(models.GameDeleted, models.Game{ID: id})
	}
	return removed, nil
}

// Platforms returns the distinct platforms in the catalog.
func (s *GameService) Platforms() ([]string, error) {
	games, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list platforms: %w", err)
	}
	return distinct(games, func(g models.Game) (string, bool) {
		return g.Platform, true
	}), nil
}

// Genres returns the distinct genres in the catalog, skipping games without
// one.
func (s *GameService) Genres() ([]string, error) {
	games, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return distinct(games, func(g models.Game) (string, bool) {
		if g.Genre == nil || *g.Genre == "" {
			return "", false
		}
		return *g.Genre, true
	}), nil
}

// FreeGameTitles lists the titles of games that need no subscription,
// newest first.
func (s *GameService) FreeGameTitles() ([]string, error) {
	games, err := s.ListGames(models.GameFilter{AccessTypes: []models.AccessType{models.AccessFree}})
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(games))
	for _, g := range games {
		titles = append(titles, g.Title)
	}
	return titles, nil
}

// RefreshFromProviders would pull current offers from the storefronts.
// No provider integration exists.
func (s *GameService) RefreshFromProviders(ctx context.Context) error {
	slog.InfoContext(ctx, "provider refresh requested")
	return ErrNotImplemented
}

func (s *GameService) publish(t models.GameEventType, game models.Game) {
	if s.publisher == nil {
		slog.Debug("no event publisher configured, skipping", "type", t, "game_id", game.ID)
		return
	}
	if err := s.publisher.PublishGameEvent(models.NewGameEvent(t, game)); err != nil {
		slog.Warn("failed to publish game event", "type", t, "game_id", game.ID, "error", err)
	}
}

// distinct collects values in first-seen order.
func distinct(games []models.Game, value func(models.Game) (string, bool)) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, g := range games {
		v, ok := value(g)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
