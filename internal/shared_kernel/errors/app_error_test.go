//go:build !integration

package apperrors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestAppErrorTypes(t *testing.T) {
	appErr := NewUpstream("mirror_node_request_failed", "mirror node request failed", map[string]any{"status": 503})

	if !appErr.IsType(TypeUpstream) || appErr.IsType(TypeInternal) {
		t.Fatalf("unexpected type check for %s", appErr.Type)
	}
	if appErr.Error() != "mirror node request failed" {
		t.Fatalf("unexpected message %q", appErr.Error())
	}

	var nilErr *AppError
	if nilErr.IsType(TypeUpstream) || nilErr.Error() != "" {
		t.Fatalf("nil app error must belong to no type")
	}
}

func TestAppErrorUnwrapsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("aggregate: %w", NewNotFound("asset_record_not_found", "missing", nil))

	var appErr *AppError
	if !stderrors.As(wrapped, &appErr) {
		t.Fatalf("expected AppError in chain")
	}
	if appErr.Code != "asset_record_not_found" {
		t.Fatalf("unexpected code %s", appErr.Code)
	}
}
