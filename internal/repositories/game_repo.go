package repositories

import (
	"errors"

	"freegames/internal/models"
)

// ErrGameNotFound is returned when no game has the requested ID.
var ErrGameNotFound = errors.New("game not found")

// GameRepository defines the interface for game data access.
type GameRepository interface {
	// GetAll returns every game, newest first (ties broken by higher ID).
	GetAll() ([]models.Game, error)
	GetByID(id int64) (*models.Game, error)
	// Create assigns ID, CreatedAt and UpdatedAt on game before storing it.
	Create(game *models.Game) error
	Update(id int64, patch models.GamePatch) (*models.Game, error)
	// Delete reports whether a game was removed.
	Delete(id int64) (bool, error)
}
