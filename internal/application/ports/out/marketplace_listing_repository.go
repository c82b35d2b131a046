package out

import (
	"context"

	"nftmarket/internal/application/dto"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type MarketplaceListingRepository interface {
	ListActive(ctx context.Context, input dto.ListActiveListingsInput) (dto.ListActiveListingsOutput, *apperrors.AppError)
	Create(ctx context.Context, listing dto.MarketplaceListing) *apperrors.AppError
}
