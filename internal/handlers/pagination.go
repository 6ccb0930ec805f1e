package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// PaginationMeta defines the structure for pagination metadata.
type PaginationMeta struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}

// PaginatedResponse defines the structure for a paginated list of any type.
type PaginatedResponse[T any] struct {
	Data []T            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// NewPaginatedResponse creates a new PaginatedResponse.
func NewPaginatedResponse[T any](data []T, totalItems int64, page, limit int) PaginatedResponse[T] {
	if limit <= 0 {
		limit = 1
	}
	if data == nil {
		data = []T{}
	}
	return PaginatedResponse[T]{
		Data: data,
		Meta: PaginationMeta{
			TotalItems:  totalItems,
			TotalPages:  (int(totalItems) + limit - 1) / limit,
			CurrentPage: page,
			PageSize:    limit,
		},
	}
}

// Paginate slices an already ordered result set. Pages past the end are empty.
func Paginate[T any](items []T, page, limit int) PaginatedResponse[T] {
	if limit < 1 {
		limit = 1
	}
	if page < 1 {
		page = 1
	}
	total := int64(len(items))
	// Compare page counts before multiplying so huge pages cannot overflow.
	if page-1 >= (len(items)+limit-1)/limit {
		return NewPaginatedResponse(items[len(items):], total, page, limit)
	}
	offset := (page - 1) * limit
	end := min(offset+limit, len(items))
	return NewPaginatedResponse(items[offset:end], total, page, limit)
}

// pageParams reads page and limit. ok is false when no page was requested.
// Malformed values fall back to the defaults.
func pageParams(c *fiber.Ctx) (page, limit int, ok bool) {
	raw := c.Query("page")
	if raw == "" {
		return 0, 0, false
	}

	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err = strconv.Atoi(c.Query("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit, true
}
