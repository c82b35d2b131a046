package use_cases

import (
	"context"

	"nftmarket/internal/application/dto"
	portsin "nftmarket/internal/application/ports/in"
	"nftmarket/internal/domain/policies"
	valueobjects "nftmarket/internal/domain/value_objects"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type listOwnedAssetsUseCase struct {
	aggregator portsin.AggregateOwnedAssetsUseCase
}

func NewListOwnedAssetsUseCase(aggregator portsin.AggregateOwnedAssetsUseCase) portsin.ListOwnedAssetsUseCase {
	return &listOwnedAssetsUseCase{aggregator: aggregator}
}

func (u *listOwnedAssetsUseCase) Execute(ctx context.Context, query dto.ListOwnedAssetsQuery) (dto.ListOwnedAssetsOutput, *apperrors.AppError) {
	if u.aggregator == nil {
		return dto.ListOwnedAssetsOutput{}, apperrors.NewInternal(
			"owned_asset_aggregator_missing",
			"owned asset aggregator is required",
			nil,
		)
	}

	page, appErr := valueobjects.NewDisplayPage(query.Page, query.PageSize)
	if appErr != nil {
		return dto.ListOwnedAssetsOutput{}, appErr
	}
	itemPolicy, appErr := policies.ParseItemErrorPolicy(query.ItemErrorPolicy)
	if appErr != nil {
		return dto.ListOwnedAssetsOutput{}, appErr
	}
	pagePolicy, appErr := policies.ParsePageFailurePolicy(query.PageFailurePolicy)
	if appErr != nil {
		return dto.ListOwnedAssetsOutput{}, appErr
	}

	aggregated, appErr := u.aggregator.Execute(ctx, dto.AggregateOwnedAssetsCommand{
		AccountID:         query.AccountID,
		ItemErrorPolicy:   itemPolicy,
		PageFailurePolicy: pagePolicy,
	})
	if appErr != nil {
		return dto.ListOwnedAssetsOutput{}, appErr
	}

	total := len(aggregated.Assets)
	start, end := page.Bounds(total)
	items := make([]dto.EnrichedAsset, 0, end-start)
	items = append(items, aggregated.Assets[start:end]...)

	return dto.ListOwnedAssetsOutput{
		AccountID:       aggregated.AccountID,
		Page:            page.Page,
		PageSize:        page.PageSize,
		TotalItems:      total,
		TotalPages:      page.TotalPages(total),
		Items:           items,
		Failures:        aggregated.Failures,
		Truncated:       aggregated.Truncated,
		TruncatedReason: aggregated.TruncatedReason,
	}, nil
}
