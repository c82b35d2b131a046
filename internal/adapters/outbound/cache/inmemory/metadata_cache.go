package inmemorycache

import (
	"context"
	"time"

	"nftmarket/internal/application/dto"
	portsout "nftmarket/internal/application/ports/out"
	apperrors "nftmarket/internal/shared_kernel/errors"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const defaultSize = 10000

type metadataCache struct {
	entries *expirable.LRU[dto.AssetReference, dto.ResolvedAssetMetadata]
}

// NewMetadataCache keeps at most size resolved metadata entries in process memory,
// evicting the least recently used first. Entries expire after ttl; a non-positive
// ttl keeps them until evicted.
func NewMetadataCache(size int, ttl time.Duration) portsout.MetadataCache {
	return newMetadataCache(size, ttl)
}

func newMetadataCache(size int, ttl time.Duration) *metadataCache {
	if size <= 0 {
		size = defaultSize
	}
	return &metadataCache{
		entries: expirable.NewLRU[dto.AssetReference, dto.ResolvedAssetMetadata](size, nil, ttl),
	}
}

func (m *metadataCache) Get(_ context.Context, ref dto.AssetReference) (dto.ResolvedAssetMetadata, bool, *apperrors.AppError) {
	metadata, ok := m.entries.Get(ref)
	return metadata, ok, nil
}

func (m *metadataCache) Set(_ context.Context, ref dto.AssetReference, metadata dto.ResolvedAssetMetadata) *apperrors.AppError {
	m.entries.Add(ref, metadata)
	return nil
}
