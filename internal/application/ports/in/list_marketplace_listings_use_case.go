package in

import (
	"context"

	"nftmarket/internal/application/dto"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type ListMarketplaceListingsUseCase interface {
	Execute(ctx context.Context, query dto.ListMarketplaceListingsQuery) (dto.ListMarketplaceListingsOutput, *apperrors.AppError)
}
