package dto

import "nftmarket/internal/domain/policies"

type AssetReference struct {
	TokenID      string `json:"token_id"`
	SerialNumber int64  `json:"serial_number"`
}

// OwnedAssetPage is one page of the mirror's "nfts by account" listing.
// An empty Next ends pagination.
type OwnedAssetPage struct {
	Assets []AssetReference
	Next   string
}

type FetchOwnedAssetPageInput struct {
	AccountID string
	Cursor    string
}

type AssetMetadataRecord struct {
	TokenID      string
	SerialNumber int64
	AccountID    string
	Metadata     string
}

// ContentDocument is the JSON document served by the content gateway. Image is nil when
// the document carries no image field at all.
type ContentDocument struct {
	Name    string  `json:"name"`
	Creator string  `json:"creator"`
	Image   *string `json:"image"`
}

type ResolvedAssetMetadata struct {
	Name     string `json:"name"`
	Creator  string `json:"creator"`
	ImageURL string `json:"image_url"`
}

type EnrichedAsset struct {
	TokenID      string `json:"token_id"`
	SerialNumber int64  `json:"serial_number"`
	ImageURL     string `json:"image_url"`
	Name         string `json:"name"`
	Creator      string `json:"creator"`
}

type ItemFailure struct {
	TokenID      string `json:"token_id"`
	SerialNumber int64  `json:"serial_number"`
	Code         string `json:"code"`
	Message      string `json:"message"`
}

type AggregateOwnedAssetsCommand struct {
	AccountID         string
	ItemErrorPolicy   policies.ItemErrorPolicy
	PageFailurePolicy policies.PageFailurePolicy
}

type AggregateOwnedAssetsOutput struct {
	AccountID       string          `json:"account_id"`
	Assets          []EnrichedAsset `json:"assets"`
	Failures        []ItemFailure   `json:"failures,omitempty"`
	PagesFetched    int             `json:"pages_fetched"`
	Truncated       bool            `json:"truncated"`
	TruncatedReason string          `json:"truncated_reason,omitempty"`
}

type ListOwnedAssetsQuery struct {
	AccountID         string
	Page              int
	PageSize          int
	ItemErrorPolicy   string
	PageFailurePolicy string
}

type ListOwnedAssetsOutput struct {
	AccountID       string          `json:"account_id"`
	Page            int             `json:"page"`
	PageSize        int             `json:"page_size"`
	TotalItems      int             `json:"total_items"`
	TotalPages      int             `json:"total_pages"`
	Items           []EnrichedAsset `json:"items"`
	Failures        []ItemFailure   `json:"failures,omitempty"`
	Truncated       bool            `json:"truncated"`
	TruncatedReason string          `json:"truncated_reason,omitempty"`
}

type GetAssetDetailQuery struct {
	TokenID      string
	SerialNumber int64
}

type AssetDetailOutput struct {
	Asset EnrichedAsset `json:"asset"`
}
