package router

import (
	"net/http"

	"nftmarket/internal/adapters/inbound/http/controllers"
)

type Dependencies struct {
	HealthController      *controllers.HealthController
	SwaggerController     *controllers.SwaggerController
	OwnedAssetsController *controllers.OwnedAssetsController
	AssetsController      *controllers.AssetsController
	MarketplaceController *controllers.MarketplaceController
	ProfileController     *controllers.ProfileController
}

func New(deps Dependencies) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", deps.HealthController.GetHealth)
	mux.HandleFunc("GET /swagger", deps.SwaggerController.RedirectToIndex)
	mux.HandleFunc("GET /swagger/openapi.yaml", deps.SwaggerController.GetOpenAPISpec)
	mux.HandleFunc("GET /swagger/", deps.SwaggerController.ServeUI)
	mux.HandleFunc("GET /v1/accounts/{account_id}/nfts", deps.OwnedAssetsController.ListOwnedAssets)
	mux.HandleFunc("GET /v1/accounts/{account_id}/nfts/snapshot", deps.OwnedAssetsController.GetOwnedAssetSnapshot)
	mux.HandleFunc("GET /v1/accounts/{account_id}/profile", deps.ProfileController.GetProfile)
	mux.HandleFunc("GET /v1/tokens/{token_id}/nfts/{serial_number}", deps.AssetsController.GetAsset)
	mux.HandleFunc("GET /v1/marketplace/listings", deps.MarketplaceController.ListListings)
	mux.HandleFunc("POST /v1/marketplace/listings", deps.MarketplaceController.CreateListing)

	return mux
}
