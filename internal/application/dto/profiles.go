package dto

import "time"

type PlayerProfile struct {
	AccountID         string `json:"account_id"`
	PlayerID          string `json:"player_id"`
	AvatarURL         string `json:"avatar_url"`
	Level             int    `json:"level"`
	CurrentLevelScore int64  `json:"current_level_score"`
	TargetLevelScore  int64  `json:"target_level_score"`
}

type GetPlayerProfileQuery struct {
	AccountID string
}

type PlayerProfileOutput struct {
	Profile PlayerProfile `json:"profile"`
}

type OwnedAssetSnapshot struct {
	AccountID   string          `json:"account_id"`
	RunID       string          `json:"run_id"`
	RefreshedAt time.Time       `json:"refreshed_at"`
	Truncated   bool            `json:"truncated"`
	Assets      []EnrichedAsset `json:"assets"`
}

type GetOwnedAssetSnapshotQuery struct {
	AccountID string
}

type OwnedAssetSnapshotOutput struct {
	Snapshot OwnedAssetSnapshot `json:"snapshot"`
}

type RefreshOwnedAssetSnapshotsCommand struct {
	RunID string
	Now   time.Time
}

type RefreshOwnedAssetSnapshotsOutput struct {
	RunID     string
	Accounts  int
	Refreshed int
	Failed    int
	Assets    int
}
