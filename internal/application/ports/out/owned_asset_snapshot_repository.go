package out

import (
	"context"

	"nftmarket/internal/application/dto"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type OwnedAssetSnapshotRepository interface {
	Upsert(ctx context.Context, snapshot dto.OwnedAssetSnapshot) *apperrors.AppError
	GetByAccountID(ctx context.Context, accountID string) (dto.OwnedAssetSnapshot, bool, *apperrors.AppError)
}
