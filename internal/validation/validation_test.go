package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freegames/internal/models"
	"freegames/internal/validation"
)

func ptr[T any](v T) *T { return &v }

func validInput() models.GameInput {
	return models.GameInput{
		Title:       "Control",
		Description: "Supernatural action.",
		ImageURL:    "https://example.com/control.png",
		Platform:    "Epic Games",
		ClaimURL:    "https://store.example.com/control",
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *validation.Error
	require.True(t, errors.As(err, &verr), "expected *validation.Error, got %v", err)
	return verr.Fields
}

func TestValidator_GameInputValid(t *testing.T) {
	v := validation.New()
	in := validInput()
	in.Rating = ptr(8.7)
	in.SortBy = "rating"
	assert.NoError(t, v.Struct("Invalid game data", in))
}

func TestValidator_GameInputMissingRequired(t *testing.T) {
	v := validation.New()
	err := v.Struct("Invalid game data", models.GameInput{Title: "Only a title"})

	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "description")
	assert.Contains(t, fields, "imageUrl")
	assert.Contains(t, fields, "platform")
	assert.Contains(t, fields, "claimUrl")
	assert.NotContains(t, fields, "title")
	assert.Contains(t, err.Error(), "Invalid game data")
}

func TestValidator_GameInputRanges(t *testing.T) {
	v := validation.New()
	in := validInput()
	in.Rating = ptr(11.0)
	in.OriginalPrice = ptr(-1.0)
	in.Genre = ptr(models.AllGenres)

	fields := fieldsOf(t, v.Struct("Invalid game data", in))
	assert.Equal(t, "must be at most 10", fields["rating"])
	assert.Equal(t, "must be at least 0", fields["originalPrice"])
	assert.Contains(t, fields, "genre")
}

func TestValidator_RejectsBlankText(t *testing.T) {
	v := validation.New()
	in := validInput()
	in.Title = "   "
	in.ClaimURL = "\t\n"

	fields := fieldsOf(t, v.Struct("Invalid game data", in))
	assert.Equal(t, "must not be blank", fields["title"])
	assert.Equal(t, "must not be blank", fields["claimUrl"])
	assert.NotContains(t, fields, "platform")

	fields = fieldsOf(t, v.Struct("Invalid game data", models.GamePatch{Description: ptr(" ")}))
	assert.Equal(t, "must not be blank", fields["description"])

	assert.NoError(t, v.Struct("Invalid game data", models.GamePatch{Description: ptr(" Updated ")}))
}

func TestValidator_MutationSortByIsStrict(t *testing.T) {
	v := validation.New()
	in := validInput()
	in.SortBy = "bogus"
	fields := fieldsOf(t, v.Struct("Invalid game data", in))
	assert.Contains(t, fields, "sortBy")

	fields = fieldsOf(t, v.Struct("Invalid game data", models.GamePatch{SortBy: "bogus"}))
	assert.Contains(t, fields, "sortBy")
}

func TestValidator_GamePatch(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Struct("Invalid game data", models.GamePatch{}))
	assert.NoError(t, v.Struct("Invalid game data", models.GamePatch{
		Rating:               models.Null[float64](),
		Genre:                models.Some("RPG"),
		RequiresSubscription: models.Null[string](),
	}))

	fields := fieldsOf(t, v.Struct("Invalid game data", models.GamePatch{
		Title:  ptr(""),
		Rating: models.Some(-2.0),
	}))
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "rating")
}

func TestValidator_GameFilterAccessTypes(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Struct("Invalid filter parameters", models.GameFilter{
		AccessTypes: []models.AccessType{models.AccessFree, models.AccessSubscription},
		SortBy:      "bogus",
	}))

	fields := fieldsOf(t, v.Struct("Invalid filter parameters", models.GameFilter{
		AccessTypes: []models.AccessType{"premium"},
	}))
	assert.Contains(t, fields, "accessTypes[0]")
}
