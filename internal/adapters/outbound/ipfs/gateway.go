package ipfs

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"nftmarket/internal/application/dto"
	portsout "nftmarket/internal/application/ports/out"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

const (
	defaultHTTPTimeout  = 10 * time.Second
	maxDocumentBytes    = 1 << 20
	maxErrorBodyPreview = 512
)

type Config struct {
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Gateway fetches asset content documents through an HTTP IPFS gateway.
type Gateway struct {
	client  *http.Client
	timeout time.Duration
}

var _ portsout.ContentDocumentGateway = (*Gateway)(nil)

func NewGateway(cfg Config) *Gateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	return &Gateway{client: client, timeout: timeout}
}

func (g *Gateway) FetchContentDocument(ctx context.Context, documentURL string) (dto.ContentDocument, *apperrors.AppError) {
	if g == nil || g.client == nil {
		return dto.ContentDocument{}, apperrors.NewInternal(
			"content_gateway_not_configured",
			"content gateway is not configured",
			nil,
		)
	}
	documentURL = strings.TrimSpace(documentURL)
	if documentURL == "" {
		return dto.ContentDocument{}, apperrors.NewValidation(
			"content_document_url_missing",
			"content document url is required",
			nil,
		)
	}

	requestCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(requestCtx, http.MethodGet, documentURL, nil)
	if err != nil {
		return dto.ContentDocument{}, apperrors.NewValidation(
			"content_document_url_invalid",
			"content document url is invalid",
			map[string]any{"error": err.Error(), "url": documentURL},
		)
	}
	request.Header.Set("Accept", "application/json")

	response, err := g.client.Do(request)
	if err != nil {
		return dto.ContentDocument{}, apperrors.NewUpstream(
			"content_gateway_request_failed",
			"failed to call content gateway",
			map[string]any{"error": err.Error(), "url": documentURL},
		)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		preview := ""
		raw, readErr := io.ReadAll(io.LimitReader(response.Body, maxErrorBodyPreview))
		if readErr == nil {
			preview = strings.TrimSpace(string(raw))
		}
		return dto.ContentDocument{}, apperrors.NewUpstream(
			"content_gateway_status_unexpected",
			"content gateway returned non-2xx status",
			map[string]any{"status_code": response.StatusCode, "url": documentURL, "body": preview},
		)
	}

	raw, err := io.ReadAll(io.LimitReader(response.Body, maxDocumentBytes+1))
	if err != nil {
		return dto.ContentDocument{}, apperrors.NewUpstream(
			"content_gateway_request_failed",
			"failed to read content document",
			map[string]any{"error": err.Error(), "url": documentURL},
		)
	}
	if len(raw) > maxDocumentBytes {
		return dto.ContentDocument{}, apperrors.NewUpstream(
			"content_document_too_large",
			"content document exceeds the size limit",
			map[string]any{"url": documentURL, "limit_bytes": maxDocumentBytes},
		)
	}

	document := dto.ContentDocument{}
	if err := json.Unmarshal(raw, &document); err != nil {
		return dto.ContentDocument{}, apperrors.NewUpstream(
			"content_document_invalid",
			"content document is not valid json",
			map[string]any{"error": err.Error(), "url": documentURL},
		)
	}

	return document, nil
}
