// Package query evaluates listing requests against the game catalog.
//
// Filters are applied as independent narrowing passes in a fixed order
// (search, platforms, genre, minimum rating, access type) followed by a
// single stable sort. Evaluation is a pure function of its inputs.
package query

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"freegames/internal/models"
)

type predicate func(models.Game) bool

// Evaluate returns the games matching every active criterion of f, ordered
// by f.SortBy. The input slice is not modified. The result is never nil.
func Evaluate(games []models.Game, f models.GameFilter) []models.Game {
	result := make([]models.Game, len(games))
	copy(result, games)

	for _, p := range []predicate{
		matchSearch(f.Search),
		matchPlatforms(f.Platforms),
		matchGenre(f.Genre),
		matchMinRating(f.MinRating),
		matchAccessTypes(f.AccessTypes),
	} {
		result = keep(result, p)
	}

	slices.SortStableFunc(result, comparator(f.SortBy))
	return result
}

// keep filters games in place. A nil predicate is an inactive filter.
func keep(games []models.Game, p predicate) []models.Game {
	if p == nil {
		return games
	}
	out := games[:0]
	for _, g := range games {
		if p(g) {
			out = append(out, g)
		}
	}
	return out
}

func matchSearch(term string) predicate {
	if term == "" {
		return nil
	}
	needle := strings.ToLower(term)
	return func(g models.Game) bool {
		return strings.Contains(strings.ToLower(g.Title), needle) ||
			strings.Contains(strings.ToLower(g.Description), needle)
	}
}

func matchPlatforms(platforms []string) predicate {
	if len(platforms) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(platforms))
	for _, p := range platforms {
		set[p] = struct{}{}
	}
	return func(g models.Game) bool {
		_, ok := set[g.Platform]
		return ok
	}
}

func matchGenre(genre string) predicate {
	if genre == "" || genre == models.AllGenres {
		return nil
	}
	return func(g models.Game) bool {
		return g.Genre != nil && *g.Genre == genre
	}
}

// matchMinRating drops unrated games whenever a threshold is set, zero
// included.
func matchMinRating(min *float64) predicate {
	if min == nil {
		return nil
	}
	threshold := *min
	return func(g models.Game) bool {
		return g.Rating != nil && *g.Rating >= threshold
	}
}

func matchAccessTypes(types []models.AccessType) predicate {
	if len(types) == 0 {
		return nil
	}
	wanted := make(map[models.AccessType]struct{}, len(types))
	for _, t := range types {
		wanted[t] = struct{}{}
	}
	return func(g models.Game) bool {
		_, ok := wanted[g.AccessType()]
		return ok
	}
}

func comparator(by models.SortBy) func(a, b models.Game) int {
	switch by.Normalize() {
	case models.SortRating:
		return byRatingDesc
	case models.SortName:
		// Collators keep internal buffers, so each evaluation gets its own.
		c := collate.New(language.English)
		return func(a, b models.Game) int {
			return c.CompareString(a.Title, b.Title)
		}
	case models.SortEndDate:
		return byEndDateAsc
	default:
		return byCreatedAtDesc
	}
}

func ratingOrZero(g models.Game) float64 {
	if g.Rating == nil {
		return 0
	}
	return *g.Rating
}

func byRatingDesc(a, b models.Game) int {
	ra, rb := ratingOrZero(a), ratingOrZero(b)
	switch {
	case ra > rb:
		return -1
	case ra < rb:
		return 1
	default:
		return 0
	}
}

// byEndDateAsc puts games without an end date after every dated game.
func byEndDateAsc(a, b models.Game) int {
	switch {
	case a.EndDate == nil && b.EndDate == nil:
		return 0
	case a.EndDate == nil:
		return 1
	case b.EndDate == nil:
		return -1
	}
	return a.EndDate.Compare(*b.EndDate)
}

func byCreatedAtDesc(a, b models.Game) int {
	return b.CreatedAt.Compare(a.CreatedAt)
}
