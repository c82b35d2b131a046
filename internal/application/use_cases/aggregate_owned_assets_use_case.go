package use_cases

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"nftmarket/internal/application/dto"
	portsin "nftmarket/internal/application/ports/in"
	portsout "nftmarket/internal/application/ports/out"
	"nftmarket/internal/domain/policies"
	valueobjects "nftmarket/internal/domain/value_objects"
	apperrors "nftmarket/internal/shared_kernel/errors"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultAggregateMaxPages    = 1000
	DefaultAggregateConcurrency = 8
)

type AggregateOwnedAssetsConfig struct {
	MaxPages    int
	Concurrency int
	Timeout     time.Duration
}

type aggregateOwnedAssetsUseCase struct {
	pages    portsout.OwnedAssetPageGateway
	resolver AssetMetadataResolver
	cfg      AggregateOwnedAssetsConfig
	logger   *log.Logger
}

func NewAggregateOwnedAssetsUseCase(
	pages portsout.OwnedAssetPageGateway,
	resolver AssetMetadataResolver,
	cfg AggregateOwnedAssetsConfig,
	logger *log.Logger,
) portsin.AggregateOwnedAssetsUseCase {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultAggregateMaxPages
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultAggregateConcurrency
	}

	return &aggregateOwnedAssetsUseCase{
		pages:    pages,
		resolver: resolver,
		cfg:      cfg,
		logger:   logger,
	}
}

func (u *aggregateOwnedAssetsUseCase) Execute(
	ctx context.Context,
	command dto.AggregateOwnedAssetsCommand,
) (dto.AggregateOwnedAssetsOutput, *apperrors.AppError) {
	if u.pages == nil || u.resolver == nil {
		return dto.AggregateOwnedAssetsOutput{}, apperrors.NewInternal(
			"owned_asset_aggregator_not_configured",
			"owned asset page gateway and metadata resolver are required",
			nil,
		)
	}

	accountID, appErr := valueobjects.NormalizeAccountID(command.AccountID)
	if appErr != nil {
		return dto.AggregateOwnedAssetsOutput{}, appErr
	}
	itemPolicy := command.ItemErrorPolicy
	if itemPolicy == "" {
		itemPolicy = policies.ItemErrorSkip
	}
	pagePolicy := command.PageFailurePolicy
	if pagePolicy == "" {
		pagePolicy = policies.PageFailureDiscard
	}

	if u.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.cfg.Timeout)
		defer cancel()
	}

	output := dto.AggregateOwnedAssetsOutput{
		AccountID: accountID,
		Assets:    make([]dto.EnrichedAsset, 0),
	}
	if itemPolicy == policies.ItemErrorCollect {
		output.Failures = make([]dto.ItemFailure, 0)
	}

	seenCursors := map[string]struct{}{}
	cursor := ""
	for {
		if output.PagesFetched >= u.cfg.MaxPages {
			return u.failPage(output, pagePolicy, apperrors.NewUpstream(
				"owned_asset_pagination_budget_exceeded",
				"owned asset pagination exceeded the page budget",
				map[string]any{"account_id": accountID, "max_pages": u.cfg.MaxPages},
			))
		}

		page, pageErr := u.pages.FetchOwnedAssetPage(ctx, dto.FetchOwnedAssetPageInput{
			AccountID: accountID,
			Cursor:    cursor,
		})
		if pageErr != nil {
			return u.failPage(output, pagePolicy, apperrors.NewUpstream(
				"owned_asset_page_fetch_failed",
				"failed to fetch owned asset page",
				map[string]any{
					"account_id": accountID,
					"page":       output.PagesFetched + 1,
					"cause":      pageErr.Code,
				},
			))
		}
		output.PagesFetched++

		// The next link is only honored for non-empty pages.
		if len(page.Assets) == 0 {
			break
		}

		enriched, failures, resolveErr := u.resolvePage(ctx, page.Assets, itemPolicy)
		if resolveErr != nil {
			if itemPolicy == policies.ItemErrorAbort && resolveErr.Code == "owned_asset_resolution_failed" {
				return dto.AggregateOwnedAssetsOutput{}, resolveErr
			}
			return u.failPage(output, pagePolicy, resolveErr)
		}
		output.Assets = append(output.Assets, enriched...)
		if itemPolicy == policies.ItemErrorCollect {
			output.Failures = append(output.Failures, failures...)
		}

		next := strings.TrimSpace(page.Next)
		if next == "" {
			break
		}
		if _, seen := seenCursors[next]; seen {
			return u.failPage(output, pagePolicy, apperrors.NewUpstream(
				"owned_asset_pagination_cycle_detected",
				"owned asset pagination returned a cursor that was already visited",
				map[string]any{"account_id": accountID, "cursor": next},
			))
		}
		seenCursors[next] = struct{}{}
		cursor = next
	}

	return output, nil
}

func (u *aggregateOwnedAssetsUseCase) resolvePage(
	ctx context.Context,
	refs []dto.AssetReference,
	itemPolicy policies.ItemErrorPolicy,
) ([]dto.EnrichedAsset, []dto.ItemFailure, *apperrors.AppError) {
	results, err := fanOutOrdered(ctx, u.cfg.Concurrency, refs, itemPolicy == policies.ItemErrorAbort, u.enrich)
	if err != nil {
		var itemErr *apperrors.AppError
		if stderrors.As(err, &itemErr) && ctx.Err() == nil {
			return nil, nil, apperrors.NewUpstream(
				"owned_asset_resolution_failed",
				"failed to resolve owned asset metadata",
				mergeDetails(itemErr.Details, map[string]any{"cause": itemErr.Code}),
			)
		}
		return nil, nil, aggregationTimeout(err)
	}
	if ctx.Err() != nil {
		return nil, nil, aggregationTimeout(ctx.Err())
	}

	enriched := make([]dto.EnrichedAsset, 0, len(results))
	failures := make([]dto.ItemFailure, 0)
	for index, result := range results {
		if result.err == nil {
			enriched = append(enriched, result.value)
			continue
		}

		ref := refs[index]
		u.debugSkipped(ref, result.err)
		failures = append(failures, dto.ItemFailure{
			TokenID:      ref.TokenID,
			SerialNumber: ref.SerialNumber,
			Code:         result.err.Code,
			Message:      result.err.Message,
		})
	}

	return enriched, failures, nil
}

func (u *aggregateOwnedAssetsUseCase) enrich(ctx context.Context, ref dto.AssetReference) (dto.EnrichedAsset, *apperrors.AppError) {
	metadata, appErr := u.resolver.Resolve(ctx, ref)
	if appErr != nil {
		return dto.EnrichedAsset{}, appErr
	}

	return dto.EnrichedAsset{
		TokenID:      ref.TokenID,
		SerialNumber: ref.SerialNumber,
		ImageURL:     metadata.ImageURL,
		Name:         metadata.Name,
		Creator:      metadata.Creator,
	}, nil
}

func (u *aggregateOwnedAssetsUseCase) failPage(
	output dto.AggregateOwnedAssetsOutput,
	pagePolicy policies.PageFailurePolicy,
	appErr *apperrors.AppError,
) (dto.AggregateOwnedAssetsOutput, *apperrors.AppError) {
	if !pagePolicy.KeepsPartialResults(output.PagesFetched) {
		return dto.AggregateOwnedAssetsOutput{}, appErr
	}

	if u.logger != nil {
		u.logger.WithFields(log.Fields{
			"account_id":    output.AccountID,
			"pages_fetched": output.PagesFetched,
			"assets":        len(output.Assets),
			"code":          appErr.Code,
		}).Warn("owned asset aggregation truncated")
	}
	output.Truncated = true
	output.TruncatedReason = appErr.Code
	return output, nil
}

func (u *aggregateOwnedAssetsUseCase) debugSkipped(ref dto.AssetReference, appErr *apperrors.AppError) {
	if u.logger == nil {
		return
	}
	u.logger.WithFields(log.Fields{
		"token_id":      ref.TokenID,
		"serial_number": ref.SerialNumber,
		"code":          appErr.Code,
	}).Debug("owned asset skipped")
}

func aggregationTimeout(err error) *apperrors.AppError {
	return apperrors.NewUpstream(
		"owned_asset_aggregation_timeout",
		"owned asset aggregation did not complete in time",
		map[string]any{"error": err.Error()},
	)
}
