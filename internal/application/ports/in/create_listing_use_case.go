package in

import (
	"context"

	"nftmarket/internal/application/dto"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type CreateListingUseCase interface {
	Execute(ctx context.Context, command dto.CreateListingCommand) (dto.CreateListingOutput, *apperrors.AppError)
}
