package use_cases

import (
	"context"
	"strings"

	"nftmarket/internal/application/dto"
	portsout "nftmarket/internal/application/ports/out"
	valueobjects "nftmarket/internal/domain/value_objects"
	apperrors "nftmarket/internal/shared_kernel/errors"

	log "github.com/sirupsen/logrus"
)

// AssetMetadataResolver turns an asset reference into display metadata by way of the ledger
// record, its base64 content pointer and the content document behind the gateway.
type AssetMetadataResolver interface {
	Resolve(ctx context.Context, ref dto.AssetReference) (dto.ResolvedAssetMetadata, *apperrors.AppError)
}

type assetMetadataResolver struct {
	lookup      portsout.AssetLookupGateway
	content     portsout.ContentDocumentGateway
	cache       portsout.MetadataCache
	gatewayBase string
	logger      *log.Logger
}

// NewAssetMetadataResolver builds a resolver. cache and logger may be nil.
func NewAssetMetadataResolver(
	lookup portsout.AssetLookupGateway,
	content portsout.ContentDocumentGateway,
	cache portsout.MetadataCache,
	gatewayBaseURL string,
	logger *log.Logger,
) AssetMetadataResolver {
	return &assetMetadataResolver{
		lookup:      lookup,
		content:     content,
		cache:       cache,
		gatewayBase: valueobjects.NormalizeGatewayBase(gatewayBaseURL),
		logger:      logger,
	}
}

func (r *assetMetadataResolver) Resolve(
	ctx context.Context,
	ref dto.AssetReference,
) (dto.ResolvedAssetMetadata, *apperrors.AppError) {
	if r.lookup == nil || r.content == nil {
		return dto.ResolvedAssetMetadata{}, apperrors.NewInternal(
			"asset_metadata_resolver_not_configured",
			"asset lookup and content gateways are required",
			nil,
		)
	}
	if r.gatewayBase == "" {
		return dto.ResolvedAssetMetadata{}, apperrors.NewInternal(
			"content_gateway_base_missing",
			"content gateway base url is required",
			nil,
		)
	}

	if cached, found := r.cached(ctx, ref); found {
		return cached, nil
	}

	record, found, appErr := r.lookup.LookupAsset(ctx, ref)
	if appErr != nil {
		return dto.ResolvedAssetMetadata{}, appErr
	}
	if !found {
		return dto.ResolvedAssetMetadata{}, apperrors.NewNotFound(
			"asset_record_not_found",
			"asset record was not found on the ledger",
			refDetails(ref),
		)
	}

	pointer, appErr := valueobjects.DecodeMetadataPointer(record.Metadata)
	if appErr != nil {
		appErr.Details = mergeDetails(appErr.Details, refDetails(ref))
		return dto.ResolvedAssetMetadata{}, appErr
	}

	documentURL := valueobjects.RewriteMetadataPointer(r.gatewayBase, pointer)
	document, appErr := r.content.FetchContentDocument(ctx, documentURL)
	if appErr != nil {
		return dto.ResolvedAssetMetadata{}, apperrors.NewNotFound(
			"asset_content_unavailable",
			"asset content document could not be fetched",
			mergeDetails(refDetails(ref), map[string]any{"document_url": documentURL, "cause": appErr.Code}),
		)
	}
	if document.Image == nil {
		return dto.ResolvedAssetMetadata{}, apperrors.NewNotFound(
			"asset_content_image_missing",
			"asset content document has no image",
			mergeDetails(refDetails(ref), map[string]any{"document_url": documentURL}),
		)
	}

	resolved := dto.ResolvedAssetMetadata{
		Name:     document.Name,
		Creator:  document.Creator,
		ImageURL: valueobjects.RewriteImagePointer(r.gatewayBase, strings.TrimSpace(*document.Image)),
	}
	r.store(ctx, ref, resolved)

	return resolved, nil
}

func (r *assetMetadataResolver) cached(ctx context.Context, ref dto.AssetReference) (dto.ResolvedAssetMetadata, bool) {
	if r.cache == nil {
		return dto.ResolvedAssetMetadata{}, false
	}

	metadata, found, appErr := r.cache.Get(ctx, ref)
	if appErr != nil {
		r.warn(ref, "metadata cache read failed", appErr)
		return dto.ResolvedAssetMetadata{}, false
	}
	return metadata, found
}

func (r *assetMetadataResolver) store(ctx context.Context, ref dto.AssetReference, metadata dto.ResolvedAssetMetadata) {
	if r.cache == nil {
		return
	}
	if appErr := r.cache.Set(ctx, ref, metadata); appErr != nil {
		r.warn(ref, "metadata cache write failed", appErr)
	}
}

func (r *assetMetadataResolver) warn(ref dto.AssetReference, message string, appErr *apperrors.AppError) {
	if r.logger == nil {
		return
	}
	r.logger.WithFields(log.Fields{
		"token_id":      ref.TokenID,
		"serial_number": ref.SerialNumber,
		"code":          appErr.Code,
	}).Warn(message)
}

func refDetails(ref dto.AssetReference) map[string]any {
	return map[string]any{
		"token_id":      ref.TokenID,
		"serial_number": ref.SerialNumber,
	}
}

func mergeDetails(base map[string]any, extra map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(extra))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range extra {
		merged[key] = value
	}
	return merged
}
