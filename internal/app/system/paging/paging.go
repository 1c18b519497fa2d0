// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultPerPage is the page size used when the client does not ask
// for one. It matches the board grid on the client, which renders
// twelve tiles per page.
const DefaultPerPage = 12

// MaxPerPage caps how many rows a single page may request.
const MaxPerPage = 100

// ParsePage extracts the 1-based "page" query parameter. Returns 1
// when absent or invalid.
func ParsePage(r *http.Request) int64 {
	n, err := strconv.ParseInt(query.Get(r, "page"), 10, 64)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ParsePerPage extracts the "per_page" query parameter, clamped to
// [1, MaxPerPage]. Returns DefaultPerPage when absent or invalid.
func ParsePerPage(r *http.Request) int64 {
	n, err := strconv.ParseInt(query.Get(r, "per_page"), 10, 64)
	if err != nil || n < 1 {
		return DefaultPerPage
	}
	if n > MaxPerPage {
		return MaxPerPage
	}
	return n
}

// ParseSearch extracts and trims the "q" query parameter.
func ParseSearch(r *http.Request) string {
	return query.Search(r, "q")
}
