package out

import (
	"context"

	"nftmarket/internal/application/dto"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type PlayerProfileReadModel interface {
	GetByAccountID(ctx context.Context, accountID string) (dto.PlayerProfile, bool, *apperrors.AppError)
	ListAccountIDs(ctx context.Context) ([]string, *apperrors.AppError)
}
