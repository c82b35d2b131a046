package valueobjects

import (
	"math"

	apperrors "nftmarket/internal/shared_kernel/errors"
)

const (
	DefaultDisplayPageSize = 24
	MaxDisplayPageSize     = 100
)

// DisplayPage is a 1-based window over a fully materialized result list.
type DisplayPage struct {
	Page     int
	PageSize int
}

func NewDisplayPage(page, pageSize int) (DisplayPage, *apperrors.AppError) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = DefaultDisplayPageSize
	}

	if page < 1 {
		return DisplayPage{}, apperrors.NewValidation(
			"invalid_request",
			"page must be greater than zero",
			map[string]any{"field": "page"},
		)
	}
	if pageSize < 1 || pageSize > MaxDisplayPageSize {
		return DisplayPage{}, apperrors.NewValidation(
			"invalid_request",
			"page_size must be between 1 and 100",
			map[string]any{"field": "page_size", "max": MaxDisplayPageSize},
		)
	}

	if page > math.MaxInt/pageSize {
		return DisplayPage{}, apperrors.NewValidation(
			"invalid_request",
			"page is too large",
			map[string]any{"field": "page", "max": math.MaxInt / pageSize},
		)
	}

	return DisplayPage{Page: page, PageSize: pageSize}, nil
}

func (p DisplayPage) TotalPages(totalItems int) int {
	if totalItems <= 0 || p.PageSize <= 0 {
		return 0
	}
	return (totalItems + p.PageSize - 1) / p.PageSize
}

// Bounds returns the half-open slice window for this page, clamped to totalItems.
func (p DisplayPage) Bounds(totalItems int) (int, int) {
	if totalItems <= 0 || p.Page < 1 || p.PageSize < 1 {
		return 0, 0
	}
	if p.Page-1 >= (totalItems+p.PageSize-1)/p.PageSize {
		return totalItems, totalItems
	}

	start := (p.Page - 1) * p.PageSize
	end := totalItems
	if totalItems-start > p.PageSize {
		end = start + p.PageSize
	}
	return start, end
}

// Offset is the number of items before this page. It saturates at math.MaxInt.
func (p DisplayPage) Offset() int {
	if p.Page < 1 || p.PageSize < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}
