package handlers

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freegames/internal/validation"
)

func TestParseMinRating(t *testing.T) {
	v, err := parseMinRating("")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = parseMinRating("All")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = parseMinRating(" 8.5 ")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, 8.5, *v)

	v, err = parseMinRating("0")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Zero(t, *v)

	for _, raw := range []string{"high", "NaN", "+Inf"} {
		_, err = parseMinRating(raw)
		var verr *validation.Error
		require.True(t, errors.As(err, &verr), raw)
		assert.Contains(t, verr.Fields, "minRating")
	}
}

func TestSplitCommaSeparated(t *testing.T) {
	assert.Equal(t, []string{"Steam", "Epic Games"}, splitCommaSeparated(" Steam, ,Epic Games "))
	assert.Nil(t, splitCommaSeparated(""))
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page := Paginate(items, 1, 2)
	assert.Equal(t, []int{1, 2}, page.Data)
	assert.Equal(t, 3, page.Meta.TotalPages)

	page = Paginate(items, 3, 2)
	assert.Equal(t, []int{5}, page.Data)

	page = Paginate(items, 9, 2)
	assert.Equal(t, []int{}, page.Data)
	assert.Equal(t, int64(5), page.Meta.TotalItems)

	page = Paginate(items, math.MaxInt/2, 100)
	assert.Equal(t, []int{}, page.Data)
	assert.Equal(t, math.MaxInt/2, page.Meta.CurrentPage)
	assert.Equal(t, 1, page.Meta.TotalPages)

	page = Paginate([]int{}, 1, 12)
	assert.Equal(t, []int{}, page.Data)
	assert.Equal(t, 0, page.Meta.TotalPages)
}
