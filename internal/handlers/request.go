package handlers

import (
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"freegames/internal/models"
	"freegames/internal/validation"
)

const invalidFilterMessage = "Invalid filter parameters"

// parseGameFilter builds a GameFilter from the query string. Only value types
// are checked here; the service validates the rest.
func parseGameFilter(c *fiber.Ctx) (models.GameFilter, error) {
	filter := models.GameFilter{
		Search:    c.Query("search"),
		Platforms: queryValues(c, "platforms"),
		Genre:     c.Query("genre"),
		SortBy:    models.SortBy(c.Query("sortBy")),
	}

	rating, err := parseMinRating(c.Query("minRating"))
	if err != nil {
		return models.GameFilter{}, err
	}
	filter.MinRating = rating

	for _, v := range queryValues(c, "accessTypes") {
		filter.AccessTypes = append(filter.AccessTypes, models.AccessType(v))
	}
	return filter, nil
}

// parseMinRating treats "" and "all" as no threshold.
func parseMinRating(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "all") {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, validation.NewError(invalidFilterMessage, "minRating", "must be a number")
	}
	return &v, nil
}

// queryValues collects every occurrence of key, also splitting
// comma-separated values.
func queryValues(c *fiber.Ctx, key string) []string {
	var result []string
	for _, raw := range c.Context().QueryArgs().PeekMulti(key) {
		result = append(result, splitCommaSeparated(string(raw))...)
	}
	return result
}

func splitCommaSeparated(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
