package main

import (
	"fmt"
	"log/slog"
	"time"

	"freegames/internal/models"
	"freegames/internal/repositories"
)

func demoDate(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func ptr[T any](v T) *T { return &v }

// demoGames is the catalog shown on a fresh install.
func demoGames() []models.Game {
	return []models.Game{
		{
			Title:         "[DEMO] Control Ultimate Edition",
			Description:   "DEMO GAME: A supernatural third-person action-adventure that will keep you on the edge of your seat.",
			ImageURL:      "https://images.unsplash.com/photo-1542751371-adc38448a05e?w=400&h=300&fit=crop",
			Platform:      "Epic Games",
			Rating:        ptr(8.7),
			Genre:         ptr("Action"),
			OriginalPrice: ptr(39.99),
			ClaimURL:      "https://store.epicgames.com/en-US/p/control",
			EndDate:       demoDate(2025, time.August, 15),
			IsFree:        true,
		},
		{
			Title:                "[DEMO] Cities: Skylines",
			Description:          "DEMO GAME: A modern take on the classic city simulation with layers of realism.",
			ImageURL:             "https://images.unsplash.com/photo-1493711662062-fa541adb3fc8?w=400&h=300&fit=crop",
			Platform:             "Steam",
			Rating:               ptr(9.2),
			Genre:                ptr("Simulation"),
			OriginalPrice:        ptr(29.99),
			ClaimURL:             "https://store.steampowered.com/app/255710/Cities_Skylines/",
			EndDate:              demoDate(2025, time.August, 10),
			IsFree:               true,
			RequiresSubscription: ptr("Prime Gaming"),
		},
		{
			Title:         "[DEMO] Metro Exodus",
			Description:   "DEMO GAME: Flee the shattered ruins of Moscow in an epic story-driven first-person shooter.",
			ImageURL:      "https://images.unsplash.com/photo-1552820728-8b83bb6b773f?w=400&h=300&fit=crop",
			Platform:      "Epic Games",
			Rating:        ptr(8.4),
			Genre:         ptr("FPS"),
			OriginalPrice: ptr(59.99),
			ClaimURL:      "https://store.epicgames.com/en-US/p/metro-exodus",
			EndDate:       demoDate(2025, time.August, 20),
			IsFree:        true,
		},
		{
			Title:                "[DEMO] A Plague Tale: Innocence",
			Description:          "DEMO GAME: Follow the grim tale of young Amicia and her little brother Hugo.",
			ImageURL:             "https://images.unsplash.com/photo-1511512578047-dfb367046420?w=400&h=300&fit=crop",
			Platform:             "Epic Games",
			Rating:               ptr(8.9),
			Genre:                ptr("Adventure"),
			OriginalPrice:        ptr(44.99),
			ClaimURL:             "https://store.epicgames.com/en-US/p/a-plague-tale-innocence",
			EndDate:              demoDate(2025, time.August, 25),
			IsFree:               true,
			RequiresSubscription: ptr("Game Pass"),
		},
		{
			Title:         "[DEMO] Subnautica",
			Description:   "DEMO GAME: Descend into the depths of an alien underwater world filled with wonder and peril.",
			ImageURL:      "https://images.unsplash.com/photo-1559827260-dc66d52bef19?w=400&h=300&fit=crop",
			Platform:      "Steam",
			Rating:        ptr(9.1),
			Genre:         ptr("Survival"),
			OriginalPrice: ptr(24.99),
			ClaimURL:      "https://store.steampowered.com/app/264710/Subnautica/",
			EndDate:       demoDate(2025, time.August, 5),
			IsFree:        true,
		},
		{
			Title:                "[DEMO] Among Us",
			Description:          "DEMO GAME: An online and local party game of teamwork and betrayal for 4-15 players.",
			ImageURL:             "https://images.unsplash.com/photo-1606092195730-5d7b9af1efc5?w=400&h=300&fit=crop",
			Platform:             "Steam",
			Rating:               ptr(7.8),
			Genre:                ptr("Party"),
			OriginalPrice:        ptr(4.99),
			ClaimURL:             "https://store.steampowered.com/app/945360/Among_Us/",
			EndDate:              demoDate(2025, time.July, 31),
			IsFree:               true,
			RequiresSubscription: ptr("PlayStation Plus"),
		},
	}
}

// seedDemoGames fills an empty store with the demo catalog. A store that
// already holds games is left alone.
func seedDemoGames(repo repositories.GameRepository) error {
	existing, err := repo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to check for existing games: %w", err)
	}
	if len(existing) > 0 {
		slog.Debug("store not empty, skipping demo data", "games", len(existing))
		return nil
	}

	games := demoGames()
	for i := range games {
		if err := repo.Create(&games[i]); err != nil {
			return fmt.Errorf("failed to seed game %q: %w", games[i].Title, err)
		}
		slog.Debug("seeded game", "id", games[i].ID, "title", games[i].Title)
	}
	slog.Info("seeded demo games", "count", len(games))
	return nil
}
