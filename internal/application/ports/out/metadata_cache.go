package out

import (
	"context"

	"nftmarket/internal/application/dto"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type MetadataCache interface {
	Get(ctx context.Context, ref dto.AssetReference) (dto.ResolvedAssetMetadata, bool, *apperrors.AppError)
	Set(ctx context.Context, ref dto.AssetReference, metadata dto.ResolvedAssetMetadata) *apperrors.AppError
}
