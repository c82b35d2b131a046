package in

import (
	"context"

	"nftmarket/internal/application/dto"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type GetPlayerProfileUseCase interface {
	Execute(ctx context.Context, query dto.GetPlayerProfileQuery) (dto.PlayerProfileOutput, *apperrors.AppError)
}
