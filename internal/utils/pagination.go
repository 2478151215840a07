// internal/utils/pagination.go
package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	// Every listed table carries a BaseModel created_at column, so it is
	// always a safe sort target.
	defaultSortColumn = "created_at"
)

// PaginationParams carries the listing controls shared by the design,
// purchase-history, job and follower endpoints. Search and Category are only
// honored by the endpoints whose queries filter on them.
type PaginationParams struct {
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
	Sort     string `json:"sort"`
	Order    string `json:"order"`
	Search   string `json:"search"`
	Category string `json:"category"`
}

// Offset is the row offset for the current page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type PaginationResult struct {
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int64       `json:"total"`
	TotalPages int         `json:"total_pages"`
	HasMore    bool        `json:"has_more"`
	Data       interface{} `json:"data"`
}

// GetPaginationParams reads the listing controls from the query string.
// Out-of-range pages snap to 1 and oversized limits clamp to the cap rather
// than erroring, so hand-typed URLs still resolve.
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	switch {
	case limit < 1:
		limit = defaultPageSize
	case limit > maxPageSize:
		limit = maxPageSize
	}

	order := strings.ToLower(c.DefaultQuery("order", "desc"))
	if order != "asc" {
		order = "desc"
	}

	return PaginationParams{
		Page:     page,
		Limit:    limit,
		Sort:     c.DefaultQuery("sort", defaultSortColumn),
		Order:    order,
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
}

func ApplyPagination(db *gorm.DB, params PaginationParams) *gorm.DB {
	return db.Offset(params.Offset()).Limit(params.Limit)
}

// ApplySort orders the query by the requested column when it is in the
// caller's whitelist, falling back to created_at otherwise. The whitelist
// keeps raw query-string input out of the ORDER BY clause.
func ApplySort(db *gorm.DB, params PaginationParams, allowedSortFields []string) *gorm.DB {
	column := defaultSortColumn
	for _, field := range allowedSortFields {
		if field == params.Sort {
			column = params.Sort
			break
		}
	}

	return db.Order(column + " " + params.Order)
}

func CreatePaginationResult(data interface{}, total int64, params PaginationParams) PaginationResult {
	totalPages := int((total + int64(params.Limit) - 1) / int64(params.Limit))

	return PaginationResult{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasMore:    params.Page < totalPages,
		Data:       data,
	}
}

func SetPaginationHeaders(c *gin.Context, result PaginationResult) {
	c.Header("X-Total-Count", strconv.FormatInt(result.Total, 10))
	c.Header("X-Page", strconv.Itoa(result.Page))
	c.Header("X-Per-Page", strconv.Itoa(result.Limit))
	c.Header("X-Total-Pages", strconv.Itoa(result.TotalPages))
}
