package use_cases

import (
	"context"

	"nftmarket/internal/application/dto"
	portsin "nftmarket/internal/application/ports/in"
	valueobjects "nftmarket/internal/domain/value_objects"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type getAssetDetailUseCase struct {
	resolver AssetMetadataResolver
}

func NewGetAssetDetailUseCase(resolver AssetMetadataResolver) portsin.GetAssetDetailUseCase {
	return &getAssetDetailUseCase{resolver: resolver}
}

func (u *getAssetDetailUseCase) Execute(ctx context.Context, query dto.GetAssetDetailQuery) (dto.AssetDetailOutput, *apperrors.AppError) {
	if u.resolver == nil {
		return dto.AssetDetailOutput{}, apperrors.NewInternal(
			"asset_metadata_resolver_missing",
			"asset metadata resolver is required",
			nil,
		)
	}

	tokenID, appErr := valueobjects.NormalizeTokenID(query.TokenID)
	if appErr != nil {
		return dto.AssetDetailOutput{}, appErr
	}
	if appErr := valueobjects.ValidateSerialNumber(query.SerialNumber); appErr != nil {
		return dto.AssetDetailOutput{}, appErr
	}

	ref := dto.AssetReference{TokenID: tokenID, SerialNumber: query.SerialNumber}
	metadata, appErr := u.resolver.Resolve(ctx, ref)
	if appErr != nil {
		return dto.AssetDetailOutput{}, appErr
	}

	return dto.AssetDetailOutput{
		Asset: dto.EnrichedAsset{
			TokenID:      ref.TokenID,
			SerialNumber: ref.SerialNumber,
			ImageURL:     metadata.ImageURL,
			Name:         metadata.Name,
			Creator:      metadata.Creator,
		},
	}, nil
}
