package out

import (
	"context"

	"nftmarket/internal/application/dto"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

// OwnedAssetPageGateway walks the ledger mirror's cursor-paginated "nfts by account" listing.
// An empty cursor requests the first page.
type OwnedAssetPageGateway interface {
	FetchOwnedAssetPage(ctx context.Context, input dto.FetchOwnedAssetPageInput) (dto.OwnedAssetPage, *apperrors.AppError)
}
