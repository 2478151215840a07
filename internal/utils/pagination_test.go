// internal/utils/pagination_test.go
package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFromQuery(t *testing.T, query string) PaginationParams {
	t.Helper()

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/designs?"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParams_Defaults(t *testing.T) {
	params := paramsFromQuery(t, "")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, "created_at", params.Sort)
	assert.Equal(t, "desc", params.Order)
}

func TestGetPaginationParams_ClampsOversizedLimit(t *testing.T) {
	params := paramsFromQuery(t, "limit=5000")
	assert.Equal(t, 100, params.Limit)
}

func TestGetPaginationParams_RejectsGarbage(t *testing.T) {
	params := paramsFromQuery(t, "page=-3&limit=zero&order=sideways")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, "desc", params.Order)
}

func TestPaginationParamsOffset(t *testing.T) {
	params := PaginationParams{Page: 3, Limit: 25}
	assert.Equal(t, 50, params.Offset())
}

func TestCreatePaginationResult(t *testing.T) {
	params := PaginationParams{Page: 2, Limit: 20}
	result := CreatePaginationResult([]string{}, 45, params)

	assert.Equal(t, 3, result.TotalPages)
	assert.True(t, result.HasMore)

	last := CreatePaginationResult([]string{}, 45, PaginationParams{Page: 3, Limit: 20})
	assert.False(t, last.HasMore)
}
