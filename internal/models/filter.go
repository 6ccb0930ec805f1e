package models

// SortBy selects the ordering of a filtered listing.
type SortBy string

const (
	SortLatest  SortBy = "latest"
	SortRating  SortBy = "rating"
	SortName    SortBy = "name"
	SortEndDate SortBy = "endDate"
)

// AllGenres is the "no genre filter" sentinel sent by clients. It is never
// stored on a game.
const AllGenres = "All Genres"

// Normalize maps unknown or empty values to SortLatest.
func (s SortBy) Normalize() SortBy {
	switch s {
	case SortRating, SortName, SortEndDate:
		return s
	default:
		return SortLatest
	}
}

// GameFilter is a validated listing request. Zero values mean "no filter".
type GameFilter struct {
	Search      string       `json:"search,omitempty"`
	Platforms   []string     `json:"platforms,omitempty"`
	Genre       string       `json:"genre,omitempty"`
	MinRating   *float64     `json:"minRating,omitempty"`
	AccessTypes []AccessType `json:"accessTypes,omitempty" validate:"dive,oneof=free subscription"`
	SortBy      SortBy       `json:"sortBy,omitempty"`
}
