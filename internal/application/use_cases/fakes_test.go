//go:build !integration

package use_cases

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"nftmarket/internal/application/dto"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type fakePageGateway struct {
	mu      sync.Mutex
	pages   map[string]dto.OwnedAssetPage
	errs    map[string]*apperrors.AppError
	cursors []string
}

func (f *fakePageGateway) FetchOwnedAssetPage(_ context.Context, input dto.FetchOwnedAssetPageInput) (dto.OwnedAssetPage, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cursors = append(f.cursors, input.Cursor)
	if appErr, ok := f.errs[input.Cursor]; ok {
		return dto.OwnedAssetPage{}, appErr
	}
	return f.pages[input.Cursor], nil
}

type fakeResolver struct {
	failures map[dto.AssetReference]*apperrors.AppError
	delay    time.Duration
	inFlight atomic.Int64
	maxSeen  atomic.Int64
	calls    atomic.Int64
}

func (f *fakeResolver) Resolve(ctx context.Context, ref dto.AssetReference) (dto.ResolvedAssetMetadata, *apperrors.AppError) {
	f.calls.Add(1)
	current := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if current <= seen || f.maxSeen.CompareAndSwap(seen, current) {
			break
		}
	}

	if f.delay > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(f.delay):
		}
	}

	if appErr, ok := f.failures[ref]; ok {
		return dto.ResolvedAssetMetadata{}, appErr
	}
	return dto.ResolvedAssetMetadata{
		Name:     fmt.Sprintf("%s#%d", ref.TokenID, ref.SerialNumber),
		Creator:  "creator",
		ImageURL: fmt.Sprintf("https://gateway.example/ipfs/%s/%d.png", ref.TokenID, ref.SerialNumber),
	}, nil
}

type fakeLookupGateway struct {
	mu      sync.Mutex
	records map[dto.AssetReference]dto.AssetMetadataRecord
	err     *apperrors.AppError
	errs    map[dto.AssetReference]*apperrors.AppError
	calls   int
}

func (f *fakeLookupGateway) LookupAsset(_ context.Context, ref dto.AssetReference) (dto.AssetMetadataRecord, bool, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.err != nil {
		return dto.AssetMetadataRecord{}, false, f.err
	}
	if appErr, ok := f.errs[ref]; ok {
		return dto.AssetMetadataRecord{}, false, appErr
	}
	record, ok := f.records[ref]
	return record, ok, nil
}

type fakeContentGateway struct {
	mu        sync.Mutex
	documents map[string]dto.ContentDocument
	requested []string
}

func (f *fakeContentGateway) FetchContentDocument(_ context.Context, documentURL string) (dto.ContentDocument, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requested = append(f.requested, documentURL)
	document, ok := f.documents[documentURL]
	if !ok {
		return dto.ContentDocument{}, apperrors.NewUpstream("content_gateway_status_unexpected", "status 404", nil)
	}
	return document, nil
}

type fakeMetadataCache struct {
	mu      sync.Mutex
	entries map[dto.AssetReference]dto.ResolvedAssetMetadata
	getErr  *apperrors.AppError
	setErr  *apperrors.AppError
	sets    int
}

func newFakeMetadataCache() *fakeMetadataCache {
	return &fakeMetadataCache{entries: map[dto.AssetReference]dto.ResolvedAssetMetadata{}}
}

func (f *fakeMetadataCache) Get(_ context.Context, ref dto.AssetReference) (dto.ResolvedAssetMetadata, bool, *apperrors.AppError) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return dto.ResolvedAssetMetadata{}, false, f.getErr
	}
	metadata, ok := f.entries[ref]
	return metadata, ok, nil
}

func (f *fakeMetadataCache) Set(_ context.Context, ref dto.AssetReference, metadata dto.ResolvedAssetMetadata) *apperrors.AppError {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[ref] = metadata
	return nil
}

type fakeListingRepository struct {
	listings  []dto.MarketplaceListing
	created   []dto.MarketplaceListing
	createErr *apperrors.AppError
	lastInput dto.ListActiveListingsInput
}

func (f *fakeListingRepository) ListActive(_ context.Context, input dto.ListActiveListingsInput) (dto.ListActiveListingsOutput, *apperrors.AppError) {
	f.lastInput = input
	start := min(input.Offset, len(f.listings))
	end := min(start+input.Limit, len(f.listings))
	return dto.ListActiveListingsOutput{Total: len(f.listings), Listings: f.listings[start:end]}, nil
}

func (f *fakeListingRepository) Create(_ context.Context, listing dto.MarketplaceListing) *apperrors.AppError {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, listing)
	return nil
}

type fakeProfileReadModel struct {
	profiles map[string]dto.PlayerProfile
	order    []string
}

func (f *fakeProfileReadModel) GetByAccountID(_ context.Context, accountID string) (dto.PlayerProfile, bool, *apperrors.AppError) {
	profile, ok := f.profiles[accountID]
	return profile, ok, nil
}

func (f *fakeProfileReadModel) ListAccountIDs(context.Context) ([]string, *apperrors.AppError) {
	return append([]string(nil), f.order...), nil
}

type fakeSnapshotRepository struct {
	snapshots map[string]dto.OwnedAssetSnapshot
	upsertErr map[string]*apperrors.AppError
}

func newFakeSnapshotRepository() *fakeSnapshotRepository {
	return &fakeSnapshotRepository{snapshots: map[string]dto.OwnedAssetSnapshot{}}
}

func (f *fakeSnapshotRepository) Upsert(_ context.Context, snapshot dto.OwnedAssetSnapshot) *apperrors.AppError {
	if appErr, ok := f.upsertErr[snapshot.AccountID]; ok {
		return appErr
	}
	f.snapshots[snapshot.AccountID] = snapshot
	return nil
}

func (f *fakeSnapshotRepository) GetByAccountID(_ context.Context, accountID string) (dto.OwnedAssetSnapshot, bool, *apperrors.AppError) {
	snapshot, ok := f.snapshots[accountID]
	return snapshot, ok, nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) NowUTC() time.Time {
	return c.now
}

type fixedIDGenerator struct {
	id string
}

func (g fixedIDGenerator) NewID() string {
	return g.id
}

func assetRefs(tokenID string, from, to int64) []dto.AssetReference {
	refs := make([]dto.AssetReference, 0, to-from+1)
	for serial := from; serial <= to; serial++ {
		refs = append(refs, dto.AssetReference{TokenID: tokenID, SerialNumber: serial})
	}
	return refs
}

func encodedPointer(pointer string) string {
	return base64.StdEncoding.EncodeToString([]byte(pointer))
}

func notFound(code string) *apperrors.AppError {
	return apperrors.NewNotFound(code, code, nil)
}
