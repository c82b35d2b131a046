package in

import (
	"context"

	"nftmarket/internal/application/dto"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type GetOwnedAssetSnapshotUseCase interface {
	Execute(ctx context.Context, query dto.GetOwnedAssetSnapshotQuery) (dto.OwnedAssetSnapshotOutput, *apperrors.AppError)
}

type RefreshOwnedAssetSnapshotsUseCase interface {
	Execute(ctx context.Context, command dto.RefreshOwnedAssetSnapshotsCommand) (dto.RefreshOwnedAssetSnapshotsOutput, *apperrors.AppError)
}
