package valueobjects

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	apperrors "nftmarket/internal/shared_kernel/errors"
)

const schemeSeparator = "//"

// NormalizeGatewayBase makes sure rewritten paths can be appended to the base directly.
func NormalizeGatewayBase(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasSuffix(trimmed, "/") {
		return trimmed
	}
	return trimmed + "/"
}

// DecodeMetadataPointer decodes the base64 metadata field stored on the ledger.
func DecodeMetadataPointer(encoded string) (string, *apperrors.AppError) {
	trimmed := strings.TrimSpace(encoded)
	if trimmed == "" {
		return "", apperrors.NewNotFound(
			"asset_metadata_decode_failed",
			"asset metadata is empty",
			nil,
		)
	}

	raw, err := base64.StdEncoding.DecodeString(trimmed)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(trimmed, "="))
	}
	if err != nil {
		return "", apperrors.NewNotFound(
			"asset_metadata_decode_failed",
			"asset metadata is not valid base64",
			map[string]any{"error": err.Error()},
		)
	}
	if !utf8.Valid(raw) {
		return "", apperrors.NewNotFound(
			"asset_metadata_decode_failed",
			"asset metadata is not valid utf-8",
			nil,
		)
	}

	return strings.TrimSpace(string(raw)), nil
}

// RewriteMetadataPointer keeps only the text after the last "//" and prefixes the gateway.
// A pointer without a separator is used whole.
func RewriteMetadataPointer(gatewayBase, pointer string) string {
	segments := strings.Split(pointer, schemeSeparator)
	return NormalizeGatewayBase(gatewayBase) + segments[len(segments)-1]
}

// RewriteImagePointer keeps the last two "/" segments (hash directory and file name).
func RewriteImagePointer(gatewayBase, image string) string {
	segments := strings.Split(image, "/")
	if len(segments) < 2 {
		return NormalizeGatewayBase(gatewayBase) + image
	}

	return NormalizeGatewayBase(gatewayBase) + segments[len(segments)-2] + "/" + segments[len(segments)-1]
}
