package repositories

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"freegames/internal/models"
)

// MemoryGameRepository is an in-memory implementation of GameRepository.
// IDs are never reused for the lifetime of the repository.
type MemoryGameRepository struct {
	games  map[int64]models.Game
	nextID int64
	now    func() time.Time
	mu     sync.RWMutex
}

// NewMemoryGameRepository creates a new instance of MemoryGameRepository.
func NewMemoryGameRepository() *MemoryGameRepository {
	return NewMemoryGameRepositoryWithClock(time.Now)
}

// NewMemoryGameRepositoryWithClock creates a repository that stamps
// timestamps with now.
func NewMemoryGameRepositoryWithClock(now func() time.Time) *MemoryGameRepository {
	return &MemoryGameRepository{
		games:  make(map[int64]models.Game),
		nextID: 1,
		now:    now,
	}
}

// GetAll returns all games, newest first.
func (r *MemoryGameRepository) GetAll() ([]models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gameList := make([]models.Game, 0, len(r.games))
	for _, g := range r.games {
		gameList = append(gameList, g.Clone())
	}
	slices.SortFunc(gameList, newestFirst)
	return gameList, nil
}

// GetByID returns a game by its ID.
func (r *MemoryGameRepository) GetByID(id int64) (*models.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.games[id]
	if !ok {
		return nil, fmt.Errorf("game with ID %d: %w", id, ErrGameNotFound)
	}
	g = g.Clone()
	return &g, nil
}

// Create adds a new game.
func (r *MemoryGameRepository) Create(game *models.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	game.ID = r.nextID
	r.nextID++
	now := r.now()
	game.CreatedAt = now
	game.UpdatedAt = now
	r.games[game.ID] = game.Clone()
	return nil
}

// Update merges patch over an existing game.
func (r *MemoryGameRepository) Update(id int64, patch models.GamePatch) (*models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.games[id]
	if !ok {
		return nil, fmt.Errorf("game with ID %d not found for update: %w", id, ErrGameNotFound)
	}
	patch.ApplyTo(&g)
	g.UpdatedAt = advance(g.UpdatedAt, r.now(), time.Nanosecond)
	r.games[id] = g

	out := g.Clone()
	return &out, nil
}

// Delete removes a game by its ID.
func (r *MemoryGameRepository) Delete(id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[id]; !ok {
		return false, nil
	}
	delete(r.games, id)
	return true, nil
}

func newestFirst(a, b models.Game) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	switch {
	case a.ID > b.ID:
		return -1
	case a.ID < b.ID:
		return 1
	}
	return 0
}

// advance returns now, or prev+step when the clock has not moved past prev.
func advance(prev, now time.Time, step time.Duration) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(step)
}
