package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"

	"nftmarket/internal/application/dto"
	portsout "nftmarket/internal/application/ports/out"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type Repository struct {
	db *sql.DB
}

var _ portsout.OwnedAssetSnapshotRepository = (*Repository)(nil)

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Upsert(ctx context.Context, snapshot dto.OwnedAssetSnapshot) *apperrors.AppError {
	const query = `
INSERT INTO app.owned_asset_snapshots (
  account_id,
  run_id,
  refreshed_at,
  truncated,
  assets
) VALUES ($1, $2, $3, $4, $5::jsonb)
ON CONFLICT (account_id) DO UPDATE SET
  run_id = EXCLUDED.run_id,
  refreshed_at = EXCLUDED.refreshed_at,
  truncated = EXCLUDED.truncated,
  assets = EXCLUDED.assets
`

	assets := snapshot.Assets
	if assets == nil {
		assets = []dto.EnrichedAsset{}
	}
	encoded, err := json.Marshal(assets)
	if err != nil {
		return apperrors.NewInternal(
			"owned_asset_snapshot_encode_failed",
			"failed to encode owned asset snapshot",
			map[string]any{"error": err.Error(), "account_id": snapshot.AccountID},
		)
	}

	if _, err := r.db.ExecContext(
		ctx,
		query,
		snapshot.AccountID,
		snapshot.RunID,
		snapshot.RefreshedAt,
		snapshot.Truncated,
		string(encoded),
	); err != nil {
		return apperrors.NewInternal(
			"owned_asset_snapshot_upsert_failed",
			"failed to upsert owned asset snapshot",
			map[string]any{"error": err.Error(), "account_id": snapshot.AccountID},
		)
	}

	return nil
}

func (r *Repository) GetByAccountID(ctx context.Context, accountID string) (dto.OwnedAssetSnapshot, bool, *apperrors.AppError) {
	const query = `
SELECT
  account_id,
  run_id,
  refreshed_at,
  truncated,
  assets
FROM app.owned_asset_snapshots
WHERE account_id = $1
`

	var (
		snapshot dto.OwnedAssetSnapshot
		assets   []byte
	)
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(
		&snapshot.AccountID,
		&snapshot.RunID,
		&snapshot.RefreshedAt,
		&snapshot.Truncated,
		&assets,
	)
	if stderrors.Is(err, sql.ErrNoRows) {
		return dto.OwnedAssetSnapshot{}, false, nil
	}
	if err != nil {
		return dto.OwnedAssetSnapshot{}, false, apperrors.NewInternal(
			"owned_asset_snapshot_query_failed",
			"failed to query owned asset snapshot",
			map[string]any{"error": err.Error(), "account_id": accountID},
		)
	}

	if err := json.Unmarshal(assets, &snapshot.Assets); err != nil {
		return dto.OwnedAssetSnapshot{}, false, apperrors.NewInternal(
			"owned_asset_snapshot_decode_failed",
			"stored owned asset snapshot is not valid json",
			map[string]any{"error": err.Error(), "account_id": accountID},
		)
	}
	snapshot.RefreshedAt = snapshot.RefreshedAt.UTC()

	return snapshot, true, nil
}
