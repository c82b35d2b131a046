//go:build !integration

package use_cases

import (
	"context"
	"testing"
	"time"

	"nftmarket/internal/application/dto"
	"nftmarket/internal/domain/policies"
	apperrors "nftmarket/internal/shared_kernel/errors"

	"github.com/stretchr/testify/require"
)

const testAccountID = "0.0.1001"

func newTestAggregator(pages *fakePageGateway, resolver AssetMetadataResolver, cfg AggregateOwnedAssetsConfig) *aggregateOwnedAssetsUseCase {
	return NewAggregateOwnedAssetsUseCase(pages, resolver, cfg, nil).(*aggregateOwnedAssetsUseCase)
}

func serials(assets []dto.EnrichedAsset) []int64 {
	out := make([]int64, 0, len(assets))
	for _, asset := range assets {
		out = append(out, asset.SerialNumber)
	}
	return out
}

func TestAggregateOwnedAssetsEmptyAccount(t *testing.T) {
	pages := &fakePageGateway{pages: map[string]dto.OwnedAssetPage{"": {}}}
	useCase := newTestAggregator(pages, &fakeResolver{}, AggregateOwnedAssetsConfig{})

	output, appErr := useCase.Execute(context.Background(), dto.AggregateOwnedAssetsCommand{AccountID: testAccountID})

	require.Nil(t, appErr)
	require.NotNil(t, output.Assets)
	require.Empty(t, output.Assets)
	require.Equal(t, 1, output.PagesFetched)
	require.False(t, output.Truncated)
}

func TestAggregateOwnedAssetsConcatenatesPagesInOrder(t *testing.T) {
	pages := &fakePageGateway{pages: map[string]dto.OwnedAssetPage{
		"":           {Assets: assetRefs("0.0.5", 1, 3), Next: "/api/v1/p2"},
		"/api/v1/p2": {Assets: assetRefs("0.0.5", 4, 6), Next: "/api/v1/p3"},
		"/api/v1/p3": {Assets: assetRefs("0.0.5", 7, 8)},
	}}
	useCase := newTestAggregator(pages, &fakeResolver{}, AggregateOwnedAssetsConfig{Concurrency: 3})

	output, appErr := useCase.Execute(context.Background(), dto.AggregateOwnedAssetsCommand{AccountID: testAccountID})

	require.Nil(t, appErr)
	require.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8}, serials(output.Assets))
	require.Equal(t, 3, output.PagesFetched)
	require.Equal(t, []string{"", "/api/v1/p2", "/api/v1/p3"}, pages.cursors)
	require.Equal(t, "0.0.5#4", output.Assets[3].Name)
}

func TestAggregateOwnedAssetsFirstPageFailure(t *testing.T) {
	pages := &fakePageGateway{errs: map[string]*apperrors.AppError{
		"": apperrors.NewUpstream("mirror_node_request_failed", "connection refused", nil),
	}}
	useCase := newTestAggregator(pages, &fakeResolver{}, AggregateOwnedAssetsConfig{})

	for _, pagePolicy := range []policies.PageFailurePolicy{policies.PageFailureDiscard, policies.PageFailureKeepPartial} {
		output, appErr := useCase.Execute(context.Background(), dto.AggregateOwnedAssetsCommand{
			AccountID:         testAccountID,
			PageFailurePolicy: pagePolicy,
		})

		require.NotNil(t, appErr)
		require.Equal(t, "owned_asset_page_fetch_failed", appErr.Code)
		require.Equal(t, apperrors.TypeUpstream, appErr.Type)
		require.Equal(t, 1, appErr.Details["page"])
		require.Equal(t, "mirror_node_request_failed", appErr.Details["cause"])
		require.Empty(t, output.Assets)
	}
}

func TestAggregateOwnedAssetsLatePageFailureDiscardsCollectedAssets(t *testing.T) {
	pages := &fakePageGateway{
		pages: map[string]dto.OwnedAssetPage{"": {Assets: assetRefs("0.0.5", 1, 2), Next: "/next"}},
		errs:  map[string]*apperrors.AppError{"/next": apperrors.NewUpstream("mirror_node_status_unexpected", "503", nil)},
	}
	useCase := newTestAggregator(pages, &fakeResolver{}, AggregateOwnedAssetsConfig{})

	output, appErr := useCase.Execute(context.Background(), dto.AggregateOwnedAssetsCommand{AccountID: testAccountID})

	require.NotNil(t, appErr)
	require.Equal(t, "owned_asset_page_fetch_failed", appErr.Code)
	require.Equal(t, 2, appErr.Details["page"])
	require.Empty(t, output.Assets)
}

func TestAggregateOwnedAssetsLatePageFailureKeepsPartialResults(t *testing.T) {
	pages := &fakePageGateway{
		pages: map[string]dto.OwnedAssetPage{"": {Assets: assetRefs("0.0.5", 1, 2), Next: "/next"}},
		errs:  map[string]*apperrors.AppError{"/next": apperrors.NewUpstream("mirror_node_status_unexpected", "503", nil)},
	}
	useCase := newTestAggregator(pages, &fakeResolver{}, AggregateOwnedAssetsConfig{})

	output, appErr := useCase.Execute(context.Background(), dto.AggregateOwnedAssetsCommand{
		AccountID:         testAccountID,
		PageFailurePolicy: policies.PageFailureKeepPartial,
	})

	require.Nil(t, appErr)
	require.True(t, output.Truncated)
	require.Equal(t, "owned_asset_page_fetch_failed", output.TruncatedReason)
	require.Equal(t, []int64{1, 2}, serials(output.Assets))
}

func TestAggregateOwnedAssetsSkipsUnresolvableAsset(t *testing.T) {
	pages := &fakePageGateway{pages: map[string]dto.OwnedAssetPage{"": {Assets: assetRefs("0.0.5", 1, 3)}}}
	resolver := &fakeResolver{failures: map[dto.AssetReference]*apperrors.AppError{
		{TokenID: "0.0.5", SerialNumber: 2}: notFound("asset_record_not_found"),
	}}
	useCase := newTestAggregator(pages, resolver, AggregateOwnedAssetsConfig{})

	output, appErr := useCase.Execute(context.Background(), dto.AggregateOwnedAssetsCommand{AccountID: testAccountID})

	require.Nil(t, appErr)
	require.Equal(t, []int64{1, 3}, serials(output.Assets))
	require.Nil(t, output.Failures)
}

func newLookupFailureFixture() (*fakePageGateway, AssetMetadataResolver) {
	refs := assetRefs("0.0.5", 1, 3)
	lookup := &fakeLookupGateway{
		records: map[dto.AssetReference]dto.AssetMetadataRecord{},
		errs: map[dto.AssetReference]*apperrors.AppError{
			refs[1]: apperrors.NewUpstream("mirror_node_request_failed", "connection reset by peer", nil),
		},
	}
	content := &fakeContentGateway{documents: map[string]dto.ContentDocument{
		testGatewayBase + "bafy123/meta.json": {Name: "Sword", Image: stringPtr("ipfs://bafy123/pic.png")},
	}}
	for _, ref := range refs {
		lookup.records[ref] = dto.AssetMetadataRecord{
			TokenID:      ref.TokenID,
			SerialNumber: ref.SerialNumber,
			AccountID:    testAccountID,
			Metadata:     encodedPointer("ipfs://bafy123/meta.json"),
		}
	}

	pages := &fakePageGateway{pages: map[string]dto.OwnedAssetPage{"": {Assets: refs}}}
	return pages, NewAssetMetadataResolver(lookup, content, nil, testGatewayBase, nil)
}

func TestAggregateOwnedAssetsSkipsAssetWhenLookupTransportFails(t *testing.T) {
	pages, resolver := newLookupFailureFixture()
	useCase := newTestAggregator(pages, resolver, AggregateOwnedAssetsConfig{Concurrency: 2})

	output, appErr := useCase.Execute(context.Background(), dto.AggregateOwnedAssetsCommand{
		AccountID:       testAccountID,
		ItemErrorPolicy: policies.ItemErrorSkip,
	})

	require.Nil(t, appErr)
	require.Equal(t, []int64{1, 3}, serials(output.Assets))
	require.Equal(t, "Sword", output.Assets[0].Name)
	require.Nil(t, output.Failures)
	require.False(t, output.Truncated)
}

func TestAggregateOwnedAssetsCollectsLookupTransportFailure(t *testing.T) {
	pages, resolver := newLookupFailureFixture()
	useCase := newTestAggregator(pages, resolver, AggregateOwnedAssetsConfig{Concurrency: 2})

	output, appErr := useCase.Execute(context.Background(), dto.AggregateOwnedAssetsCommand{
		AccountID:       testAccountID,
		ItemErrorPolicy: policies.ItemErrorCollect,
	})

	require.Nil(t, appErr)
	require.Equal(t, []int64{1, 3}, serials(output.Assets))
	require.Len(t, output.Failures, 1)
	require.Equal(t, int64(2), output.Failures[0].SerialNumber)
	require.Equal(t, "mirror_node_request_failed", output.Failures[0].Code)
}

func TestAggregateOwnedAssetsBoundedFanOutKeepsOrder(t *testing.T) {
	refs := assetRefs("0.0.9", 1, 100)
	failures := map[dto.AssetReference]*apperrors.AppError{}
	for serial := int64(10); serial <= 100; serial += 10 {
		failures[dto.AssetReference{TokenID: "0.0.9", SerialNumber: serial}] = notFound("asset_record_not_found")
	}
	pages := &fakePageGateway{pages: map[string]dto.OwnedAssetPage{"": {Assets: refs}}}
	resolver := &fakeResolver{failures: failures, delay: 2 * time.Millisecond}
	useCase := newTestAggregator(pages, resolver, AggregateOwnedAssetsConfig{Concurrency: 8})

	output, appErr := useCase.Execute(context.Background(), dto.AggregateOwnedAssetsCommand{AccountID: testAccountID})

	require.Nil(t, appErr)
	require.Len(t, output.Assets, 90)
	expected := make([]int64, 0, 90)
	for serial := int64(1); serial <= 100; serial++ {
		if serial%10 != 0 {
			expected = append(expected, serial)
		}
	}
	require.Equal(t, expected, serials(output.Assets))
	require.LessOrEqual(t, resolver.maxSeen.Load(), int64(8))
	require.Equal(t, int64(100), resolver.calls.Load())
}

func TestAggregateOwnedAssetsCollectPolicyReportsFailures(t *testing.T) {
	pages := &fakePageGateway{pages: map[string]dto.OwnedAssetPage{"": {Assets: assetRefs("0.0.5", 1, 3)}}}
	resolver := &fakeResolver{failures: map[dto.AssetReference]*apperrors.AppError{
		{TokenID: "0.0.5", SerialNumber: 3}: notFound("asset_content_image_missing"),
	}}
	useCase := newTestAggregator(pages, resolver, AggregateOwnedAssetsConfig{})

	output, appErr := useCase.Execute(context.Background(), dto.AggregateOwnedAssetsCommand{
		AccountID:       testAccountID,
		ItemErrorPolicy: policies.ItemErrorCollect,
	})

	require.Nil(t, appErr)
	require.Equal(t, []int64{1, 2}, serials(output.Assets))
	require.Equal(t, []dto.ItemFailure{{
		TokenID:      "0.0.5",
		SerialNumber: 3,
		Code:         "asset_content_image_missing",
		Message:      "asset_content_image_missing",
	}}, output.Failures)
}

func TestAggregateOwnedAssetsAbortPolicyFailsWholeRequest(t *testing.T) {
	pages := &fakePageGateway{pages: map[string]dto.OwnedAssetPage{"": {Assets: assetRefs("0.0.5", 1, 3)}}}
	resolver := &fakeResolver{failures: map[dto.AssetReference]*apperrors.AppError{
		{TokenID: "0.0.5", SerialNumber: 2}: apperrors.NewNotFound("asset_record_not_found", "missing", map[string]any{"serial_number": int64(2)}),
	}}
	useCase := newTestAggregator(pages, resolver, AggregateOwnedAssetsConfig{})

	output, appErr := useCase.Execute(context.Background(), dto.AggregateOwnedAssetsCommand{
		AccountID:         testAccountID,
		ItemErrorPolicy:   policies.ItemErrorAbort,
		PageFailurePolicy: policies.PageFailureKeepPartial,
	})

	require.NotNil(t, appErr)
	require.Equal(t, "owned_asset_resolution_failed", appErr.Code)
	require.Equal(t, "asset_record_not_found", appErr.Details["cause"])
	require.Equal(t, int64(2), appErr.Details["serial_number"])
	require.Empty(t, output.Assets)
}

func TestAggregateOwnedAssetsEmptyPageEndsWalkDespiteNextLink(t *testing.T) {
	pages := &fakePageGateway{pages: map[string]dto.OwnedAssetPage{
		"":    {Assets: assetRefs("0.0.5", 1, 1), Next: "/p2"},
		"/p2": {Next: "/p3"},
		"/p3": {Assets: assetRefs("0.0.5", 2, 2)},
	}}
	useCase := newTestAggregator(pages, &fakeResolver{}, AggregateOwnedAssetsConfig{})

	output, appErr := useCase.Execute(context.Background(), dto.AggregateOwnedAssetsCommand{AccountID: testAccountID})

	require.Nil(t, appErr)
	require.Equal(t, []int64{1}, serials(output.Assets))
	require.Equal(t, []string{"", "/p2"}, pages.cursors)
}

func TestAggregateOwnedAssetsDetectsCursorCycle(t *testing.T) {
	pages := &fakePageGateway{pages: map[string]dto.OwnedAssetPage{
		"":    {Assets: assetRefs("0.0.5", 1, 1), Next: "/p2"},
		"/p2": {Assets: assetRefs("0.0.5", 2, 2), Next: "/p2"},
	}}
	useCase := newTestAggregator(pages, &fakeResolver{}, AggregateOwnedAssetsConfig{})

	_, appErr := useCase.Execute(context.Background(), dto.AggregateOwnedAssetsCommand{AccountID: testAccountID})
	require.NotNil(t, appErr)
	require.Equal(t, "owned_asset_pagination_cycle_detected", appErr.Code)

	output, appErr := useCase.Execute(context.Background(), dto.AggregateOwnedAssetsCommand{
		AccountID:         testAccountID,
		PageFailurePolicy: policies.PageFailureKeepPartial,
	})
	require.Nil(t, appErr)
	require.True(t, output.Truncated)
	require.Equal(t, "owned_asset_pagination_cycle_detected", output.TruncatedReason)
	require.Equal(t, []int64{1, 2}, serials(output.Assets))
}

func TestAggregateOwnedAssetsEnforcesPageBudget(t *testing.T) {
	pages := &fakePageGateway{pages: map[string]dto.OwnedAssetPage{
		"":   {Assets: assetRefs("0.0.5", 1, 1), Next: "/2"},
		"/2": {Assets: assetRefs("0.0.5", 2, 2), Next: "/3"},
		"/3": {Assets: assetRefs("0.0.5", 3, 3)},
	}}
	useCase := newTestAggregator(pages, &fakeResolver{}, AggregateOwnedAssetsConfig{MaxPages: 2})

	_, appErr := useCase.Execute(context.Background(), dto.AggregateOwnedAssetsCommand{AccountID: testAccountID})

	require.NotNil(t, appErr)
	require.Equal(t, "owned_asset_pagination_budget_exceeded", appErr.Code)
	require.Equal(t, 2, appErr.Details["max_pages"])
	require.Equal(t, []string{"", "/2"}, pages.cursors)
}

func TestAggregateOwnedAssetsRejectsInvalidAccount(t *testing.T) {
	pages := &fakePageGateway{}
	useCase := newTestAggregator(pages, &fakeResolver{}, AggregateOwnedAssetsConfig{})

	_, appErr := useCase.Execute(context.Background(), dto.AggregateOwnedAssetsCommand{AccountID: "alice"})

	require.NotNil(t, appErr)
	require.Equal(t, apperrors.TypeValidation, appErr.Type)
	require.Empty(t, pages.cursors)
}

func TestAggregateOwnedAssetsTimeout(t *testing.T) {
	pages := &fakePageGateway{pages: map[string]dto.OwnedAssetPage{"": {Assets: assetRefs("0.0.5", 1, 4)}}}
	resolver := &fakeResolver{delay: 200 * time.Millisecond}
	useCase := newTestAggregator(pages, resolver, AggregateOwnedAssetsConfig{Concurrency: 1, Timeout: 20 * time.Millisecond})

	_, appErr := useCase.Execute(context.Background(), dto.AggregateOwnedAssetsCommand{AccountID: testAccountID})

	require.NotNil(t, appErr)
	require.Equal(t, "owned_asset_aggregation_timeout", appErr.Code)
}
