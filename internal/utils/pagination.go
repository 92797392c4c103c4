// Package utils provides small parsing helpers shared by the HTTP layer.
package utils

import "strconv"

// Pagination bounds for list endpoints.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// AtoiDefault parses s with strconv.Atoi and returns def when s is empty or
// not an integer.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// ParsePage parses page and page_size query values. The page is at least 1
// and the size is clamped to [1, MaxPageSize].
func ParsePage(pageStr, sizeStr string) (page, size int) {
	page = AtoiDefault(pageStr, DefaultPage)
	if page < 1 {
		page = 1
	}
	size = AtoiDefault(sizeStr, DefaultPageSize)
	switch {
	case size < 1:
		size = 1
	case size > MaxPageSize:
		size = MaxPageSize
	}
	return page, size
}

// Offset converts a 1-based page into a row offset.
func Offset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}
