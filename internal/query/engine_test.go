package query_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freegames/internal/models"
	"freegames/internal/query"
)

func ptr[T any](v T) *T { return &v }

func date(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

var base = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

// catalog returns games in store enumeration order (newest first).
func catalog() []models.Game {
	games := []models.Game{
		{ID: 6, Title: "Among Us", Description: "Social deduction party game.", Platform: "Steam", Rating: ptr(7.8), Genre: ptr("Party"), EndDate: date("2025-07-31"), RequiresSubscription: ptr("PlayStation Plus")},
		{ID: 5, Title: "Subnautica", Description: "Underwater adventure survival game.", Platform: "Steam", Rating: ptr(9.1), Genre: ptr("Survival"), EndDate: date("2025-08-05")},
		{ID: 4, Title: "A Plague Tale: Innocence", Description: "Heart-wrenching adventure game.", Platform: "Epic Games", Rating: ptr(8.9), Genre: ptr("Adventure"), EndDate: date("2025-08-25"), RequiresSubscription: ptr("Game Pass")},
		{ID: 3, Title: "Metro Exodus", Description: "Post-apocalyptic first-person shooter.", Platform: "Epic Games", Rating: ptr(8.4), Genre: ptr("FPS"), EndDate: date("2025-08-20")},
		{ID: 2, Title: "Cities: Skylines", Description: "Modern take on the classic city simulation.", Platform: "Steam", Rating: ptr(9.2), Genre: ptr("Simulation"), EndDate: date("2025-08-10"), RequiresSubscription: ptr("Prime Gaming")},
		{ID: 1, Title: "Control Ultimate Edition", Description: "A supernatural action-adventure with a plague of hiss.", Platform: "Epic Games", Rating: ptr(8.7), Genre: ptr("Action"), EndDate: date("2025-08-15")},
		{ID: 7, Title: "Gwent Classic", Description: "Card battler.", Platform: "GOG", Genre: nil},
	}
	for i := range games {
		games[i].CreatedAt = base.Add(-time.Duration(i) * time.Hour)
		games[i].UpdatedAt = games[i].CreatedAt
	}
	return games
}

func ids(games []models.Game) []int64 {
	out := make([]int64, 0, len(games))
	for _, g := range games {
		out = append(out, g.ID)
	}
	return out
}

func TestEvaluate_NoFilterKeepsEnumerationOrder(t *testing.T) {
	result := query.Evaluate(catalog(), models.GameFilter{})
	assert.Equal(t, []int64{6, 5, 4, 3, 2, 1, 7}, ids(result))
}

func TestEvaluate_DoesNotMutateInput(t *testing.T) {
	games := catalog()
	_ = query.Evaluate(games, models.GameFilter{Platforms: []string{"GOG"}, SortBy: models.SortName})
	assert.Equal(t, []int64{6, 5, 4, 3, 2, 1, 7}, ids(games))
}

func TestEvaluate_SearchMatchesTitleOrDescription(t *testing.T) {
	result := query.Evaluate(catalog(), models.GameFilter{Search: "PLAGUE"})
	// Title match on 4, description-only match on 1.
	assert.Equal(t, []int64{4, 1}, ids(result))
}

func TestEvaluate_EmptySearchIsInactive(t *testing.T) {
	result := query.Evaluate(catalog(), models.GameFilter{Search: ""})
	assert.Len(t, result, 7)
}

func TestEvaluate_PlatformsIsInclusiveOr(t *testing.T) {
	result := query.Evaluate(catalog(), models.GameFilter{Platforms: []string{"Steam", "GOG"}})
	assert.Equal(t, []int64{6, 5, 2, 7}, ids(result))
	for _, g := range result {
		assert.NotEqual(t, "Epic Games", g.Platform)
	}
}

func TestEvaluate_PlatformsIsCaseSensitive(t *testing.T) {
	result := query.Evaluate(catalog(), models.GameFilter{Platforms: []string{"steam"}})
	assert.Empty(t, result)
	assert.NotNil(t, result)
}

func TestEvaluate_PlatformsAndOtherFilters(t *testing.T) {
	result := query.Evaluate(catalog(), models.GameFilter{
		Platforms:   []string{"Steam", "GOG"},
		AccessTypes: []models.AccessType{models.AccessFree},
	})
	assert.Equal(t, []int64{5, 7}, ids(result))
}

func TestEvaluate_Genre(t *testing.T) {
	result := query.Evaluate(catalog(), models.GameFilter{Genre: "FPS"})
	assert.Equal(t, []int64{3}, ids(result))

	result = query.Evaluate(catalog(), models.GameFilter{Genre: models.AllGenres})
	assert.Len(t, result, 7)
}

func TestEvaluate_MinRatingExcludesUnrated(t *testing.T) {
	result := query.Evaluate(catalog(), models.GameFilter{MinRating: ptr(0.0)})
	assert.NotContains(t, ids(result), int64(7))
	assert.Len(t, result, 6)

	result = query.Evaluate(catalog(), models.GameFilter{MinRating: ptr(9.0)})
	assert.Equal(t, []int64{5, 2}, ids(result))
}

func TestEvaluate_NoMinRatingKeepsUnrated(t *testing.T) {
	result := query.Evaluate(catalog(), models.GameFilter{})
	assert.Contains(t, ids(result), int64(7))
}

func TestEvaluate_AccessTypes(t *testing.T) {
	free := query.Evaluate(catalog(), models.GameFilter{AccessTypes: []models.AccessType{models.AccessFree}})
	assert.Equal(t, []int64{5, 3, 1, 7}, ids(free))

	sub := query.Evaluate(catalog(), models.GameFilter{AccessTypes: []models.AccessType{models.AccessSubscription}})
	assert.Equal(t, []int64{6, 4, 2}, ids(sub))

	both := query.Evaluate(catalog(), models.GameFilter{AccessTypes: []models.AccessType{models.AccessFree, models.AccessSubscription}})
	assert.Len(t, both, 7)
}

func TestEvaluate_FilterNarrowingIsMonotonic(t *testing.T) {
	steps := []models.GameFilter{
		{},
		{Search: "game"},
		{Search: "game", Platforms: []string{"Steam", "Epic Games"}},
		{Search: "game", Platforms: []string{"Steam", "Epic Games"}, Genre: "Survival"},
		{Search: "game", Platforms: []string{"Steam", "Epic Games"}, Genre: "Survival", MinRating: ptr(9.0)},
		{Search: "game", Platforms: []string{"Steam", "Epic Games"}, Genre: "Survival", MinRating: ptr(9.0), AccessTypes: []models.AccessType{models.AccessSubscription}},
	}
	prev := ids(query.Evaluate(catalog(), steps[0]))
	for _, f := range steps[1:] {
		next := ids(query.Evaluate(catalog(), f))
		assert.Subset(t, prev, next)
		prev = next
	}
	assert.Empty(t, prev)
}

func TestEvaluate_SortByRatingIsStable(t *testing.T) {
	games := catalog()
	games[0].Rating = ptr(9.1) // ties with Subnautica, which comes later
	result := query.Evaluate(games, models.GameFilter{SortBy: models.SortRating})
	assert.Equal(t, []int64{2, 6, 5, 4, 1, 3, 7}, ids(result))
}

func TestEvaluate_SortByRatingKeepsUnratedLast(t *testing.T) {
	result := query.Evaluate(catalog(), models.GameFilter{SortBy: models.SortRating})
	require.NotEmpty(t, result)
	assert.Equal(t, int64(7), result[len(result)-1].ID)
}

func TestEvaluate_SortByName(t *testing.T) {
	games := catalog()
	games = append(games, models.Game{ID: 8, Title: "among the Sleep", CreatedAt: base.Add(-10 * time.Hour)})
	result := query.Evaluate(games, models.GameFilter{SortBy: models.SortName})
	// Case is a tertiary difference; byte order would put "among" last.
	assert.Equal(t, []int64{4, 8, 6, 2, 1, 7, 3, 5}, ids(result))
}

func TestEvaluate_SortByEndDateNullsLast(t *testing.T) {
	games := []models.Game{
		{ID: 1, Title: "A", EndDate: date("2025-08-05"), CreatedAt: base},
		{ID: 2, Title: "B", EndDate: nil, CreatedAt: base.Add(-time.Hour)},
		{ID: 3, Title: "C", EndDate: date("2025-08-20"), CreatedAt: base.Add(-2 * time.Hour)},
		{ID: 4, Title: "D", EndDate: nil, CreatedAt: base.Add(-3 * time.Hour)},
	}
	result := query.Evaluate(games, models.GameFilter{SortBy: models.SortEndDate})
	assert.Equal(t, []int64{1, 3, 2, 4}, ids(result))
}

func TestEvaluate_UnknownSortFallsBackToLatest(t *testing.T) {
	games := catalog()
	// Shuffle creation times so "latest" actually reorders.
	games[0].CreatedAt, games[6].CreatedAt = games[6].CreatedAt, games[0].CreatedAt

	latest := query.Evaluate(games, models.GameFilter{SortBy: models.SortLatest})
	bogus := query.Evaluate(games, models.GameFilter{SortBy: "bogus"})
	empty := query.Evaluate(games, models.GameFilter{})

	assert.Equal(t, []int64{7, 5, 4, 3, 2, 1, 6}, ids(latest))
	assert.Equal(t, ids(latest), ids(bogus))
	assert.Equal(t, ids(latest), ids(empty))
}

func TestEvaluate_EmptyCatalog(t *testing.T) {
	result := query.Evaluate(nil, models.GameFilter{Search: "x"})
	assert.NotNil(t, result)
	assert.Empty(t, result)
}
