package profile

import (
	"context"
	"database/sql"
	stderrors "errors"

	"nftmarket/internal/application/dto"
	portsout "nftmarket/internal/application/ports/out"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type ReadModel struct {
	db *sql.DB
}

var _ portsout.PlayerProfileReadModel = (*ReadModel)(nil)

func NewReadModel(db *sql.DB) *ReadModel {
	return &ReadModel{db: db}
}

func (r *ReadModel) GetByAccountID(ctx context.Context, accountID string) (dto.PlayerProfile, bool, *apperrors.AppError) {
	const query = `
SELECT
  account_id,
  player_id,
  avatar_url,
  level,
  current_level_score,
  target_level_score
FROM app.player_profiles
WHERE account_id = $1
`

	profile := dto.PlayerProfile{}
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(
		&profile.AccountID,
		&profile.PlayerID,
		&profile.AvatarURL,
		&profile.Level,
		&profile.CurrentLevelScore,
		&profile.TargetLevelScore,
	)
	if stderrors.Is(err, sql.ErrNoRows) {
		return dto.PlayerProfile{}, false, nil
	}
	if err != nil {
		return dto.PlayerProfile{}, false, apperrors.NewInternal(
			"player_profile_query_failed",
			"failed to query player profile",
			map[string]any{"error": err.Error(), "account_id": accountID},
		)
	}

	return profile, true, nil
}

func (r *ReadModel) ListAccountIDs(ctx context.Context) ([]string, *apperrors.AppError) {
	const query = `
SELECT account_id
FROM app.player_profiles
ORDER BY account_id
`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternal(
			"player_profile_query_failed",
			"failed to list player accounts",
			map[string]any{"error": err.Error()},
		)
	}
	defer rows.Close()

	accountIDs := make([]string, 0)
	for rows.Next() {
		var accountID string
		if err := rows.Scan(&accountID); err != nil {
			return nil, apperrors.NewInternal(
				"player_profile_scan_failed",
				"failed to scan player account",
				map[string]any{"error": err.Error()},
			)
		}
		accountIDs = append(accountIDs, accountID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternal(
			"player_profile_query_failed",
			"failed to iterate player accounts",
			map[string]any{"error": err.Error()},
		)
	}

	return accountIDs, nil
}
