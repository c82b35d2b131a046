package out

import (
	"context"

	"nftmarket/internal/application/dto"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type AssetLookupGateway interface {
	LookupAsset(ctx context.Context, ref dto.AssetReference) (dto.AssetMetadataRecord, bool, *apperrors.AppError)
}
