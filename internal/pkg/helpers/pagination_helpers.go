package helpers

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
	DefaultPage    = 1 // page numbers are 1-based
)

// ListParams holds the parsed collection query parameters shared by every
// list endpoint: pagination, search, field filter, and sorting.
type ListParams struct {
	Page    int
	PerPage int
	Search  string
	Filter  string
	Sort    string
	Order   string
}

// Offset converts the 1-based page number to a SQL offset.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// ParseListParams extracts and normalizes collection query parameters.
// sortFields is the whitelist of sortable columns; an unknown sort falls
// back to defaultSort ascending.
func ParseListParams(c *gin.Context, defaultSort string, sortFields ...string) ListParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(DefaultPerPage)))
	if err != nil || perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	sort := c.DefaultQuery("sort", defaultSort)
	valid := false
	for _, f := range sortFields {
		if f == sort {
			valid = true
			break
		}
	}
	if !valid {
		sort = defaultSort
	}

	order := strings.ToLower(c.DefaultQuery("order", "asc"))
	if order != "desc" {
		order = "asc"
	}

	return ListParams{
		Page:    page,
		PerPage: perPage,
		Search:  strings.TrimSpace(c.Query("search")),
		Filter:  c.DefaultQuery("filter", "all"),
		Sort:    sort,
		Order:   order,
	}
}

// Pages computes the page count: ceil(total/perPage), or 0 when total is 0.
func Pages(total int64, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(perPage)))
}
