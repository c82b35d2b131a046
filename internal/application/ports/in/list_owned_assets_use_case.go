package in

import (
	"context"

	"nftmarket/internal/application/dto"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type ListOwnedAssetsUseCase interface {
	Execute(ctx context.Context, query dto.ListOwnedAssetsQuery) (dto.ListOwnedAssetsOutput, *apperrors.AppError)
}
