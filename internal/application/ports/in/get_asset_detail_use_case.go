package in

import (
	"context"

	"nftmarket/internal/application/dto"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type GetAssetDetailUseCase interface {
	Execute(ctx context.Context, query dto.GetAssetDetailQuery) (dto.AssetDetailOutput, *apperrors.AppError)
}
