//go:build !integration

package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nftmarket/internal/application/dto"

	"github.com/stretchr/testify/require"
)

// ipfs://bafy123/meta.json
const encodedPointer = "aXBmczovL2JhZnkxMjMvbWV0YS5qc29u"

func newLedgerServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/accounts/0.0.1001/nfts", func(w http.ResponseWriter, _ *http.Request) {
		writeJSONBody(t, w, map[string]any{
			"nfts": []map[string]any{
				{"token_id": "0.0.5", "serial_number": 1, "account_id": "0.0.1001", "metadata": encodedPointer},
			},
			"links": map[string]any{"next": nil},
		})
	})
	mux.HandleFunc("GET /api/v1/tokens/0.0.5/nfts", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("serialNumber") != "1" {
			writeJSONBody(t, w, map[string]any{"nfts": []map[string]any{}})
			return
		}
		writeJSONBody(t, w, map[string]any{"nfts": []map[string]any{
			{"token_id": "0.0.5", "serial_number": 1, "account_id": "0.0.1001", "metadata": encodedPointer},
		}})
	})
	mux.HandleFunc("GET /ipfs/bafy123/meta.json", func(w http.ResponseWriter, _ *http.Request) {
		writeJSONBody(t, w, map[string]any{
			"name":    "Sword",
			"creator": "Forge",
			"image":   "ipfs://bafyimg/sword.png",
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeJSONBody(t *testing.T, w http.ResponseWriter, payload any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(payload))
}

func runApp(t *testing.T, server *httptest.Server, args ...string) (string, error) {
	t.Helper()

	stdout := &bytes.Buffer{}
	base := []string{"nftctl", "--mirror-url", server.URL, "--ipfs-gateway", server.URL + "/ipfs/"}
	err := newApp(stdout, &bytes.Buffer{}).Run(append(base, args...))
	return stdout.String(), err
}

func TestOwnedCommandPrintsEnrichedAssets(t *testing.T) {
	server := newLedgerServer(t)

	out, err := runApp(t, server, "owned", "--account", "0.0.1001")
	require.NoError(t, err)

	var output dto.AggregateOwnedAssetsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &output))
	require.Equal(t, []dto.EnrichedAsset{{
		TokenID:      "0.0.5",
		SerialNumber: 1,
		ImageURL:     server.URL + "/ipfs/bafyimg/sword.png",
		Name:         "Sword",
		Creator:      "Forge",
	}}, output.Assets)
}

func TestAssetCommand(t *testing.T) {
	server := newLedgerServer(t)

	out, err := runApp(t, server, "asset", "--token", "0.0.5", "--serial", "1")
	require.NoError(t, err)
	require.Contains(t, out, `"name": "Sword"`)

	_, err = runApp(t, server, "asset", "--token", "0.0.5", "--serial", "2")
	require.ErrorContains(t, err, "asset_record_not_found")
}

func TestOwnedCommandRejectsUnknownPolicy(t *testing.T) {
	server := newLedgerServer(t)

	_, err := runApp(t, server, "owned", "--account", "0.0.1001", "--item-errors", "retry")
	require.Error(t, err)
}
