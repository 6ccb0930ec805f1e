package models

import (
	"time"

	"github.com/google/uuid"
)

// GameEventType names a catalog lifecycle event.
type GameEventType string

const (
	GameCreated GameEventType = "game.created"
	GameUpdated GameEventType = "game.updated"
	GameDeleted GameEventType = "game.deleted"
)

// GameEvent is published after every successful catalog mutation.
type GameEvent struct {
	EventID    string        `json:"event_id"`
	Type       GameEventType `json:"type"`
	GameID     int64         `json:"game_id"`
	Title      string        `json:"title,omitempty"`
	Platform   string        `json:"platform,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewGameEvent stamps a new event for g.
func NewGameEvent(t GameEventType, g Game) GameEvent {
	return GameEvent{
		EventID:    uuid.New().String(),
		Type:       t,
		GameID:     g.ID,
		Title:      g.Title,
		Platform:   g.Platform,
		OccurredAt: time.Now().UTC(),
	}
}
