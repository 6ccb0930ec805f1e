package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"freegames/internal/models"
)

// GORMGameRepository is a GORM implementation of GameRepository.
type GORMGameRepository struct {
	db *gorm.DB
}

// NewGORMGameRepository creates a new instance of GORMGameRepository.
func NewGORMGameRepository(db *gorm.DB) *GORMGameRepository {
	return &GORMGameRepository{
		db: db,
	}
}

// Postgres keeps microseconds, so stamps are truncated to match what is read
// back.
func dbNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// GetAll retrieves all games from the database, newest first.
func (r *GORMGameRepository) GetAll() ([]models.Game, error) {
	var games []models.Game
	if err := r.db.Order("created_at DESC").Order("id DESC").Find(&games).Error; err != nil {
		return nil, fmt.Errorf("failed to get all games: %w", err)
	}
	return games, nil
}

// GetByID retrieves a single game by its ID from the database.
func (r *GORMGameRepository) GetByID(id int64) (*models.Game, error) {
	var game models.Game
	if err := r.db.First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("game with ID %d: %w", id, ErrGameNotFound)
		}
		return nil, fmt.Errorf("failed to get game by ID %d: %w", id, err)
	}
	return &game, nil
}

// Create creates a new game in the database.
func (r *GORMGameRepository) Create(game *models.Game) error {
	game.ID = 0
	now := dbNow()
	game.CreatedAt = now
	game.UpdatedAt = now
	if err := r.db.Create(game).Error; err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

// Update reads, merges and saves a game inside one transaction.
func (r *GORMGameRepository) Update(id int64, patch models.GamePatch) (*models.Game, error) {
	var game models.Game
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&game, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("game with ID %d not found for update: %w", id, ErrGameNotFound)
			}
			return err
		}
		patch.ApplyTo(&game)
		game.UpdatedAt = advance(game.UpdatedAt, dbNow(), time.Microsecond)
		return tx.Save(&game).Error
	})
	if err != nil {
		if errors.Is(err, ErrGameNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update game: %w", err)
	}
	return &game, nil
}

// Delete deletes a game by its ID from the database.
func (r *GORMGameRepository) Delete(id int64) (bool, error) {
	res := r.db.Delete(&models.Game{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete game: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
