package policies

import (
	"strings"

	apperrors "nftmarket/internal/shared_kernel/errors"
)

// ItemErrorPolicy decides what happens when a single asset cannot be resolved.
type ItemErrorPolicy string

const (
	ItemErrorSkip    ItemErrorPolicy = "skip"
	ItemErrorAbort   ItemErrorPolicy = "abort"
	ItemErrorCollect ItemErrorPolicy = "collect"
)

// PageFailurePolicy decides what happens to collected assets when a later page fetch fails.
type PageFailurePolicy string

const (
	PageFailureDiscard     PageFailurePolicy = "discard"
	PageFailureKeepPartial PageFailurePolicy = "keep_partial"
)

func ParseItemErrorPolicy(raw string) (ItemErrorPolicy, *apperrors.AppError) {
	switch ItemErrorPolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ItemErrorSkip:
		return ItemErrorSkip, nil
	case ItemErrorAbort:
		return ItemErrorAbort, nil
	case ItemErrorCollect:
		return ItemErrorCollect, nil
	}

	return "", apperrors.NewValidation(
		"invalid_request",
		"item_errors must be one of skip, abort, collect",
		map[string]any{"field": "item_errors"},
	)
}

func ParsePageFailurePolicy(raw string) (PageFailurePolicy, *apperrors.AppError) {
	switch PageFailurePolicy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PageFailureDiscard:
		return PageFailureDiscard, nil
	case PageFailureKeepPartial:
		return PageFailureKeepPartial, nil
	}

	return "", apperrors.NewValidation(
		"invalid_request",
		"page_failure must be one of discard, keep_partial",
		map[string]any{"field": "page_failure"},
	)
}

// KeepsPartialResults reports whether assets gathered before a failing page survive.
// The first page never has anything to keep.
func (p PageFailurePolicy) KeepsPartialResults(pagesFetched int) bool {
	return p == PageFailureKeepPartial && pagesFetched > 0
}
