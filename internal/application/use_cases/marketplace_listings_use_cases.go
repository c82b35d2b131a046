package use_cases

import (
	"context"

	"nftmarket/internal/application/dto"
	portsin "nftmarket/internal/application/ports/in"
	portsout "nftmarket/internal/application/ports/out"
	valueobjects "nftmarket/internal/domain/value_objects"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type listMarketplaceListingsUseCase struct {
	repository portsout.MarketplaceListingRepository
}

func NewListMarketplaceListingsUseCase(repository portsout.MarketplaceListingRepository) portsin.ListMarketplaceListingsUseCase {
	return &listMarketplaceListingsUseCase{repository: repository}
}

func (u *listMarketplaceListingsUseCase) Execute(
	ctx context.Context,
	query dto.ListMarketplaceListingsQuery,
) (dto.ListMarketplaceListingsOutput, *apperrors.AppError) {
	if u.repository == nil {
		return dto.ListMarketplaceListingsOutput{}, apperrors.NewInternal(
			"marketplace_listing_repository_missing",
			"marketplace listing repository is required",
			nil,
		)
	}

	page, appErr := valueobjects.NewDisplayPage(query.Page, query.PageSize)
	if appErr != nil {
		return dto.ListMarketplaceListingsOutput{}, appErr
	}

	listed, appErr := u.repository.ListActive(ctx, dto.ListActiveListingsInput{
		Offset: page.Offset(),
		Limit:  page.PageSize,
	})
	if appErr != nil {
		return dto.ListMarketplaceListingsOutput{}, appErr
	}

	items := listed.Listings
	if items == nil {
		items = []dto.MarketplaceListing{}
	}

	return dto.ListMarketplaceListingsOutput{
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: listed.Total,
		TotalPages: page.TotalPages(listed.Total),
		Items:      items,
	}, nil
}

type createListingUseCase struct {
	lookup     portsout.AssetLookupGateway
	resolver   AssetMetadataResolver
	repository portsout.MarketplaceListingRepository
	clock      Clock
	ids        IDGenerator
}

func NewCreateListingUseCase(
	lookup portsout.AssetLookupGateway,
	resolver AssetMetadataResolver,
	repository portsout.MarketplaceListingRepository,
	clock Clock,
	ids IDGenerator,
) portsin.CreateListingUseCase {
	if clock == nil {
		clock = NewSystemClock()
	}
	if ids == nil {
		ids = NewUUIDGenerator()
	}

	return &createListingUseCase{
		lookup:     lookup,
		resolver:   resolver,
		repository: repository,
		clock:      clock,
		ids:        ids,
	}
}

func (u *createListingUseCase) Execute(ctx context.Context, command dto.CreateListingCommand) (dto.CreateListingOutput, *apperrors.AppError) {
	if u.lookup == nil || u.resolver == nil || u.repository == nil {
		return dto.CreateListingOutput{}, apperrors.NewInternal(
			"create_listing_not_configured",
			"asset lookup, metadata resolver and listing repository are required",
			nil,
		)
	}

	sellerID, appErr := valueobjects.NormalizeEntityAccountID(command.SellerAccountID)
	if appErr != nil {
		return dto.CreateListingOutput{}, appErr
	}
	tokenID, appErr := valueobjects.NormalizeTokenID(command.TokenID)
	if appErr != nil {
		return dto.CreateListingOutput{}, appErr
	}
	if appErr := valueobjects.ValidateSerialNumber(command.SerialNumber); appErr != nil {
		return dto.CreateListingOutput{}, appErr
	}
	if command.PriceTinybar <= 0 {
		return dto.CreateListingOutput{}, apperrors.NewValidation(
			"invalid_request",
			"price_tinybar must be greater than zero",
			map[string]any{"field": "price_tinybar"},
		)
	}

	ref := dto.AssetReference{TokenID: tokenID, SerialNumber: command.SerialNumber}
	record, found, appErr := u.lookup.LookupAsset(ctx, ref)
	if appErr != nil {
		return dto.CreateListingOutput{}, appErr
	}
	if !found {
		return dto.CreateListingOutput{}, apperrors.NewNotFound(
			"asset_record_not_found",
			"asset record was not found on the ledger",
			refDetails(ref),
		)
	}
	if record.AccountID != "" && record.AccountID != sellerID {
		return dto.CreateListingOutput{}, apperrors.NewConflict(
			"listing_seller_not_owner",
			"seller account does not own the asset",
			mergeDetails(refDetails(ref), map[string]any{"account_id": sellerID}),
		)
	}

	metadata, appErr := u.resolver.Resolve(ctx, ref)
	if appErr != nil {
		return dto.CreateListingOutput{}, appErr
	}

	listing := dto.MarketplaceListing{
		ID:            u.ids.NewID(),
		SellerAccount: sellerID,
		TokenID:       ref.TokenID,
		SerialNumber:  ref.SerialNumber,
		PriceTinybar:  command.PriceTinybar,
		Name:          metadata.Name,
		Creator:       metadata.Creator,
		ImageURL:      metadata.ImageURL,
		CreatedAt:     u.clock.NowUTC(),
	}
	if appErr := u.repository.Create(ctx, listing); appErr != nil {
		return dto.CreateListingOutput{}, appErr
	}

	return dto.CreateListingOutput{Listing: listing}, nil
}
