// Package pagination slices ordered result sets into fixed-size pages.
package pagination

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// PageSize is the number of items on a page
const PageSize = 10

// ParsePage converts the page query parameter to a 1-based page number.
// Missing, non-numeric and non-positive values select the first page.
// Positive numbers too large for an int select a page past any result set.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
			return math.MaxInt
		}
		return 1
	}
	if page < 1 {
		return 1
	}
	return page
}

// Slice returns the items on the given page. Pages past the end are empty.
func Slice[T any](items []T, page int) []T {
	if page < 1 {
		page = 1
	}
	if page-1 >= (len(items)+PageSize-1)/PageSize {
		return []T{}
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
