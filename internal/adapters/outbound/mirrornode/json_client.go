package mirrornode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	apperrors "nftmarket/internal/shared_kernel/errors"
)

const maxResponseBytes = 4 << 20

type jsonClient struct {
	httpClient  *http.Client
	httpTimeout time.Duration
}

func newJSONClient(httpClient *http.Client, httpTimeout time.Duration) *jsonClient {
	return &jsonClient{
		httpClient:  httpClient,
		httpTimeout: httpTimeout,
	}
}

// getJSON decodes a 200 response into target. A 404 reports found=false with no error.
func (c *jsonClient) getJSON(ctx context.Context, requestURL string, target any) (bool, *apperrors.AppError) {
	requestCtx, cancel := context.WithTimeout(ctx, c.httpTimeout)
	defer cancel()

	request, err := http.NewRequestWithContext(requestCtx, http.MethodGet, requestURL, nil)
	if err != nil {
		return false, apperrors.NewInternal(
			"mirror_node_request_build_failed",
			"failed to build mirror node request",
			map[string]any{"error": err.Error(), "url": requestURL},
		)
	}
	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return false, apperrors.NewUpstream(
			"mirror_node_request_failed",
			"failed to call mirror node",
			map[string]any{"error": err.Error(), "url": requestURL},
		)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if response.StatusCode != http.StatusOK {
		return false, apperrors.NewUpstream(
			"mirror_node_status_unexpected",
			"mirror node returned non-200 status",
			map[string]any{"status_code": response.StatusCode, "url": requestURL},
		)
	}

	if err := json.NewDecoder(io.LimitReader(response.Body, maxResponseBytes)).Decode(target); err != nil {
		return false, apperrors.NewUpstream(
			"mirror_node_response_invalid",
			"failed to decode mirror node response",
			map[string]any{"error": err.Error(), "url": requestURL},
		)
	}

	return true, nil
}
