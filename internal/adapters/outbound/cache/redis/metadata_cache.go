package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nftmarket/internal/application/dto"
	portsout "nftmarket/internal/application/ports/out"
	apperrors "nftmarket/internal/shared_kernel/errors"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "nftmeta"

type metadataCache struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ portsout.HealthProbe = (*metadataCache)(nil)

// MetadataCache is the redis-backed metadata cache. It also answers health probes.
type MetadataCache interface {
	portsout.MetadataCache
	portsout.HealthProbe
}

func NewMetadataCache(rdb *redis.Client, ttl time.Duration) MetadataCache {
	return &metadataCache{rdb: rdb, ttl: ttl}
}

func metadataKey(ref dto.AssetReference) string {
	return fmt.Sprintf("%s:%s:%d", keyPrefix, ref.TokenID, ref.SerialNumber)
}

func (c *metadataCache) Get(ctx context.Context, ref dto.AssetReference) (dto.ResolvedAssetMetadata, bool, *apperrors.AppError) {
	raw, err := c.rdb.Get(ctx, metadataKey(ref)).Bytes()
	if errors.Is(err, redis.Nil) {
		return dto.ResolvedAssetMetadata{}, false, nil
	}
	if err != nil {
		return dto.ResolvedAssetMetadata{}, false, apperrors.NewUpstream(
			"metadata_cache_read_failed",
			"failed to read metadata cache",
			map[string]any{"error": err.Error()},
		)
	}

	metadata := dto.ResolvedAssetMetadata{}
	if err := json.Unmarshal(raw, &metadata); err != nil {
		return dto.ResolvedAssetMetadata{}, false, apperrors.NewInternal(
			"metadata_cache_entry_invalid",
			"metadata cache entry is not valid json",
			map[string]any{"error": err.Error(), "key": metadataKey(ref)},
		)
	}
	return metadata, true, nil
}

func (c *metadataCache) Set(ctx context.Context, ref dto.AssetReference, metadata dto.ResolvedAssetMetadata) *apperrors.AppError {
	raw, err := json.Marshal(metadata)
	if err != nil {
		return apperrors.NewInternal(
			"metadata_cache_entry_invalid",
			"failed to encode metadata cache entry",
			map[string]any{"error": err.Error()},
		)
	}

	ttl := c.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := c.rdb.Set(ctx, metadataKey(ref), raw, ttl).Err(); err != nil {
		return apperrors.NewUpstream(
			"metadata_cache_write_failed",
			"failed to write metadata cache",
			map[string]any{"error": err.Error()},
		)
	}
	return nil
}

func (c *metadataCache) Name() string {
	return "redis"
}

func (c *metadataCache) Probe(ctx context.Context) *apperrors.AppError {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return apperrors.NewUpstream(
			"metadata_cache_unavailable",
			"redis ping failed",
			map[string]any{"error": err.Error()},
		)
	}
	return nil
}
