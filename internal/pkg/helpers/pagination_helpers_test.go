package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func listContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/colleges?"+query, nil)
	return c
}

func TestParseListParamsDefaults(t *testing.T) {
	c := listContext(t, "")
	params := ParseListParams(c, "code", "code", "name")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultPerPage, params.PerPage)
	assert.Equal(t, "", params.Search)
	assert.Equal(t, "all", params.Filter)
	assert.Equal(t, "code", params.Sort)
	assert.Equal(t, "asc", params.Order)
	assert.Equal(t, 0, params.Offset())
}

func TestParseListParamsExplicit(t *testing.T) {
	c := listContext(t, "page=3&per_page=25&search=%20maria%20&filter=name&sort=name&order=DESC")
	params := ParseListParams(c, "code", "code", "name")

	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 25, params.PerPage)
	assert.Equal(t, "maria", params.Search)
	assert.Equal(t, "name", params.Filter)
	assert.Equal(t, "name", params.Sort)
	assert.Equal(t, "desc", params.Order)
	assert.Equal(t, 50, params.Offset())
}

func TestParseListParamsClampsBadInput(t *testing.T) {
	c := listContext(t, "page=-2&per_page=9999&sort=password&order=sideways")
	params := ParseListParams(c, "code", "code", "name")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, MaxPerPage, params.PerPage)
	// Unknown sort columns fall back to the default
	assert.Equal(t, "code", params.Sort)
	assert.Equal(t, "asc", params.Order)
}

func TestParseListParamsNonNumeric(t *testing.T) {
	c := listContext(t, "page=abc&per_page=xyz")
	params := ParseListParams(c, "id", "id")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, DefaultPerPage, params.PerPage)
}

func TestPages(t *testing.T) {
	tests := []struct {
		total   int64
		perPage int
		want    int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{100, 25, 4},
		{5, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Pages(tt.total, tt.perPage), "Pages(%d, %d)", tt.total, tt.perPage)
	}
}
