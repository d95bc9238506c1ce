package common

import "strconv"

// Metadata describes one page of a listing.
type Metadata struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// PageMetadata adds navigation flags used by the public endpoints.
type PageMetadata struct {
	Metadata
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

func CalculateMetadata(total, page, limit int) Metadata {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return Metadata{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

func CalculatePageMetadata(total, page, limit int) PageMetadata {
	m := CalculateMetadata(total, page, limit)
	return PageMetadata{
		Metadata:    m,
		HasNext:     page < m.TotalPages,
		HasPrevious: page > 1,
	}
}

// Offset returns the number of rows to skip for a one-based page.
func Offset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}

// ValidatePage checks that page and limit are both at least one.
func ValidatePage(v *Validator, page, limit int) {
	v.Check(page >= 1, "page", "must be greater than or equal to 1")
	v.Check(limit >= 1, "limit", "must be greater than or equal to 1")
}

// ValidatePagination is ValidatePage with limit also bounded by maxLimit.
func ValidatePagination(v *Validator, page, limit, maxLimit int) {
	ValidatePage(v, page, limit)
	v.Check(limit <= maxLimit, "limit", "must not be greater than "+strconv.Itoa(maxLimit))
}

// ClampPagination never rejects: a page below one becomes the first page, a
// limit below one becomes defaultLimit and a limit above maxLimit is cut to it.
func ClampPagination(page, limit, defaultLimit, maxLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, min(limit, maxLimit)
}
