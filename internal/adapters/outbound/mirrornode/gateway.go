package mirrornode

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"nftmarket/internal/application/dto"
	portsout "nftmarket/internal/application/ports/out"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

const defaultHTTPTimeout = 10 * time.Second

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Gateway reads account holdings and per-serial records from a ledger mirror node REST API.
type Gateway struct {
	baseURL string
	client  *jsonClient
}

var (
	_ portsout.OwnedAssetPageGateway = (*Gateway)(nil)
	_ portsout.AssetLookupGateway    = (*Gateway)(nil)
)

type nftsResponse struct {
	NFTs  []nftRecord `json:"nfts"`
	Links struct {
		Next *string `json:"next"`
	} `json:"links"`
}

type nftRecord struct {
	AccountID    string `json:"account_id"`
	Deleted      bool   `json:"deleted"`
	Metadata     string `json:"metadata"`
	SerialNumber int64  `json:"serial_number"`
	TokenID      string `json:"token_id"`
}

func NewGateway(cfg Config) *Gateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Gateway{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		client:  newJSONClient(httpClient, timeout),
	}
}

func (g *Gateway) FetchOwnedAssetPage(
	ctx context.Context,
	input dto.FetchOwnedAssetPageInput,
) (dto.OwnedAssetPage, *apperrors.AppError) {
	if appErr := g.ensureConfigured(); appErr != nil {
		return dto.OwnedAssetPage{}, appErr
	}

	requestURL, appErr := g.pageURL(input)
	if appErr != nil {
		return dto.OwnedAssetPage{}, appErr
	}
	payload := nftsResponse{}
	found, appErr := g.client.getJSON(ctx, requestURL, &payload)
	if appErr != nil {
		return dto.OwnedAssetPage{}, appErr
	}
	if !found {
		return dto.OwnedAssetPage{}, apperrors.NewUpstream(
			"mirror_node_account_not_found",
			"mirror node does not know the account",
			map[string]any{"account_id": input.AccountID},
		)
	}

	page := dto.OwnedAssetPage{Assets: make([]dto.AssetReference, 0, len(payload.NFTs))}
	for _, record := range payload.NFTs {
		page.Assets = append(page.Assets, dto.AssetReference{
			TokenID:      record.TokenID,
			SerialNumber: record.SerialNumber,
		})
	}
	if payload.Links.Next != nil {
		page.Next = strings.TrimSpace(*payload.Links.Next)
	}

	return page, nil
}

func (g *Gateway) LookupAsset(ctx context.Context, ref dto.AssetReference) (dto.AssetMetadataRecord, bool, *apperrors.AppError) {
	if appErr := g.ensureConfigured(); appErr != nil {
		return dto.AssetMetadataRecord{}, false, appErr
	}

	query := url.Values{}
	query.Set("serialNumber", strconv.FormatInt(ref.SerialNumber, 10))
	requestURL := g.baseURL + "/api/v1/tokens/" + url.PathEscape(ref.TokenID) + "/nfts?" + query.Encode()

	payload := nftsResponse{}
	found, appErr := g.client.getJSON(ctx, requestURL, &payload)
	if appErr != nil || !found {
		return dto.AssetMetadataRecord{}, false, appErr
	}
	if len(payload.NFTs) == 0 || payload.NFTs[0].Deleted {
		return dto.AssetMetadataRecord{}, false, nil
	}

	record := payload.NFTs[0]
	return dto.AssetMetadataRecord{
		TokenID:      ref.TokenID,
		SerialNumber: ref.SerialNumber,
		AccountID:    record.AccountID,
		Metadata:     record.Metadata,
	}, true, nil
}

func (g *Gateway) ensureConfigured() *apperrors.AppError {
	if g == nil || g.client == nil || g.baseURL == "" {
		return apperrors.NewInternal(
			"mirror_node_gateway_not_configured",
			"mirror node gateway is not configured",
			nil,
		)
	}
	return nil
}

// pageURL resolves the cursor. The mirror hands out relative next links; absolute ones are
// followed only when they point at the configured scheme and host.
func (g *Gateway) pageURL(input dto.FetchOwnedAssetPageInput) (string, *apperrors.AppError) {
	cursor := strings.TrimSpace(input.Cursor)
	if cursor == "" {
		return g.baseURL + "/api/v1/accounts/" + url.PathEscape(input.AccountID) + "/nfts", nil
	}

	parsed, err := url.Parse(cursor)
	if err != nil {
		return "", apperrors.NewUpstream(
			"mirror_node_next_link_invalid",
			"mirror node returned an unparseable next link",
			map[string]any{"next": cursor},
		)
	}
	if parsed.Scheme == "" && parsed.Host == "" {
		if strings.HasPrefix(cursor, "/") {
			return g.baseURL + cursor, nil
		}
		return g.baseURL + "/" + cursor, nil
	}

	base, err := url.Parse(g.baseURL)
	if err != nil || !strings.EqualFold(parsed.Scheme, base.Scheme) || !strings.EqualFold(parsed.Host, base.Host) {
		return "", apperrors.NewUpstream(
			"mirror_node_next_link_foreign_host",
			"mirror node next link points outside the configured mirror node",
			map[string]any{"next": cursor},
		)
	}
	return cursor, nil
}
