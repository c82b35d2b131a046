package dto

import "time"

type MarketplaceListing struct {
	ID            string    `json:"id"`
	SellerAccount string    `json:"seller_account_id"`
	TokenID       string    `json:"token_id"`
	SerialNumber  int64     `json:"serial_number"`
	PriceTinybar  int64     `json:"price_tinybar"`
	Name          string    `json:"name"`
	Creator       string    `json:"creator"`
	ImageURL      string    `json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
}

type ListMarketplaceListingsQuery struct {
	Page     int
	PageSize int
}

type ListMarketplaceListingsOutput struct {
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalItems int                  `json:"total_items"`
	TotalPages int                  `json:"total_pages"`
	Items      []MarketplaceListing `json:"items"`
}

type ListActiveListingsInput struct {
	Offset int
	Limit  int
}

type ListActiveListingsOutput struct {
	Total    int
	Listings []MarketplaceListing
}

type CreateListingCommand struct {
	SellerAccountID string `json:"account_id"`
	TokenID         string `json:"token_id"`
	SerialNumber    int64  `json:"serial_number"`
	PriceTinybar    int64  `json:"price_tinybar"`
}

type CreateListingOutput struct {
	Listing MarketplaceListing `json:"listing"`
}
