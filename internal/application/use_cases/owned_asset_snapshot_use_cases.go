package use_cases

import (
	"context"

	"nftmarket/internal/application/dto"
	portsin "nftmarket/internal/application/ports/in"
	portsout "nftmarket/internal/application/ports/out"
	"nftmarket/internal/domain/policies"
	valueobjects "nftmarket/internal/domain/value_objects"
	apperrors "nftmarket/internal/shared_kernel/errors"

	log "github.com/sirupsen/logrus"
)

type getOwnedAssetSnapshotUseCase struct {
	repository portsout.OwnedAssetSnapshotRepository
}

func NewGetOwnedAssetSnapshotUseCase(repository portsout.OwnedAssetSnapshotRepository) portsin.GetOwnedAssetSnapshotUseCase {
	return &getOwnedAssetSnapshotUseCase{repository: repository}
}

func (u *getOwnedAssetSnapshotUseCase) Execute(
	ctx context.Context,
	query dto.GetOwnedAssetSnapshotQuery,
) (dto.OwnedAssetSnapshotOutput, *apperrors.AppError) {
	if u.repository == nil {
		return dto.OwnedAssetSnapshotOutput{}, apperrors.NewInternal(
			"owned_asset_snapshot_repository_missing",
			"owned asset snapshot repository is required",
			nil,
		)
	}

	accountID, appErr := valueobjects.NormalizeAccountID(query.AccountID)
	if appErr != nil {
		return dto.OwnedAssetSnapshotOutput{}, appErr
	}

	snapshot, found, appErr := u.repository.GetByAccountID(ctx, accountID)
	if appErr != nil {
		return dto.OwnedAssetSnapshotOutput{}, appErr
	}
	if !found {
		return dto.OwnedAssetSnapshotOutput{}, apperrors.NewNotFound(
			"owned_asset_snapshot_not_found",
			"no owned asset snapshot has been recorded for this account",
			map[string]any{"account_id": accountID},
		)
	}
	if snapshot.Assets == nil {
		snapshot.Assets = []dto.EnrichedAsset{}
	}

	return dto.OwnedAssetSnapshotOutput{Snapshot: snapshot}, nil
}

type refreshOwnedAssetSnapshotsUseCase struct {
	profiles   portsout.PlayerProfileReadModel
	aggregator portsin.AggregateOwnedAssetsUseCase
	snapshots  portsout.OwnedAssetSnapshotRepository
	clock      Clock
	ids        IDGenerator
	logger     *log.Logger
}

func NewRefreshOwnedAssetSnapshotsUseCase(
	profiles portsout.PlayerProfileReadModel,
	aggregator portsin.AggregateOwnedAssetsUseCase,
	snapshots portsout.OwnedAssetSnapshotRepository,
	clock Clock,
	ids IDGenerator,
	logger *log.Logger,
) portsin.RefreshOwnedAssetSnapshotsUseCase {
	if clock == nil {
		clock = NewSystemClock()
	}
	if ids == nil {
		ids = NewUUIDGenerator()
	}
	if logger == nil {
		logger = log.StandardLogger()
	}

	return &refreshOwnedAssetSnapshotsUseCase{
		profiles:   profiles,
		aggregator: aggregator,
		snapshots:  snapshots,
		clock:      clock,
		ids:        ids,
		logger:     logger,
	}
}

// Execute re-aggregates every registered player's holdings and stores the result.
// A failing account is counted and logged; it does not stop the run.
func (u *refreshOwnedAssetSnapshotsUseCase) Execute(
	ctx context.Context,
	command dto.RefreshOwnedAssetSnapshotsCommand,
) (dto.RefreshOwnedAssetSnapshotsOutput, *apperrors.AppError) {
	if u.profiles == nil || u.aggregator == nil || u.snapshots == nil {
		return dto.RefreshOwnedAssetSnapshotsOutput{}, apperrors.NewInternal(
			"snapshot_refresh_not_configured",
			"profile read model, aggregator and snapshot repository are required",
			nil,
		)
	}

	runID := command.RunID
	if runID == "" {
		runID = u.ids.NewID()
	}
	now := command.Now
	if now.IsZero() {
		now = u.clock.NowUTC()
	}

	accountIDs, appErr := u.profiles.ListAccountIDs(ctx)
	if appErr != nil {
		return dto.RefreshOwnedAssetSnapshotsOutput{}, appErr
	}

	output := dto.RefreshOwnedAssetSnapshotsOutput{RunID: runID, Accounts: len(accountIDs)}
	for _, accountID := range accountIDs {
		if ctx.Err() != nil {
			return output, apperrors.NewInternal(
				"snapshot_refresh_cancelled",
				"snapshot refresh was cancelled",
				map[string]any{"run_id": runID, "refreshed": output.Refreshed},
			)
		}

		aggregated, appErr := u.aggregator.Execute(ctx, dto.AggregateOwnedAssetsCommand{
			AccountID:         accountID,
			ItemErrorPolicy:   policies.ItemErrorSkip,
			PageFailurePolicy: policies.PageFailureKeepPartial,
		})
		if appErr != nil {
			output.Failed++
			u.logger.WithFields(log.Fields{
				"run_id":     runID,
				"account_id": accountID,
				"code":       appErr.Code,
			}).Warn("owned asset snapshot aggregation failed")
			continue
		}

		snapshot := dto.OwnedAssetSnapshot{
			AccountID:   aggregated.AccountID,
			RunID:       runID,
			RefreshedAt: now,
			Truncated:   aggregated.Truncated,
			Assets:      aggregated.Assets,
		}
		if appErr := u.snapshots.Upsert(ctx, snapshot); appErr != nil {
			output.Failed++
			u.logger.WithFields(log.Fields{
				"run_id":     runID,
				"account_id": accountID,
				"code":       appErr.Code,
			}).Warn("owned asset snapshot upsert failed")
			continue
		}

		output.Refreshed++
		output.Assets += len(aggregated.Assets)
	}

	return output, nil
}
