// AngelaMos | 2026
// pagination.go

package core

import (
	"net/http"
	"strconv"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ParsePagination reads page and page_size query params, clamping both to
// sane bounds. Out-of-range values degrade to defaults instead of erroring.
func ParsePagination(r *http.Request) (page, pageSize int) {
	page = 1
	pageSize = defaultPageSize

	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}

	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil {
		if v > 0 && v <= maxPageSize {
			pageSize = v
		}
	}

	return page, pageSize
}
