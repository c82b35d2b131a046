package in

import (
	"context"

	"nftmarket/internal/application/dto"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type AggregateOwnedAssetsUseCase interface {
	Execute(ctx context.Context, command dto.AggregateOwnedAssetsCommand) (dto.AggregateOwnedAssetsOutput, *apperrors.AppError)
}
