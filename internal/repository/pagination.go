package repository

import "math"

const (
	DefaultPage     = 1
	DefaultMaxLimit = 50
)

// PageRequest is 1-based. Out of range values are clamped, never rejected.
type PageRequest struct {
	Page  int
	Limit int
}

type PageResult[T any] struct {
	Items      []T
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

func NormalizePageRequest(in PageRequest, maxLimit int) PageRequest {
	if maxLimit < 1 {
		maxLimit = DefaultMaxLimit
	}
	page := in.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := in.Limit
	if limit > maxLimit {
		limit = maxLimit
	}
	if limit < 1 {
		limit = 1
	}
	// keeps (page-1)*limit within int
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return PageRequest{Page: page, Limit: limit}
}

func (p PageRequest) offset() int {
	return (p.Page - 1) * p.Limit
}

func calcTotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}
