//go:build !integration

package valueobjects

import (
	"encoding/base64"
	"testing"
)

const testGateway = "https://gateway.example/ipfs/"

func TestDecodeMetadataPointer(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("ipfs://bafy123/meta.json"))

	pointer, appErr := DecodeMetadataPointer(encoded)
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if pointer != "ipfs://bafy123/meta.json" {
		t.Fatalf("unexpected pointer: %s", pointer)
	}
}

func TestDecodeMetadataPointerAcceptsUnpaddedInput(t *testing.T) {
	encoded := base64.RawStdEncoding.EncodeToString([]byte("ipfs://bafy1/a.json"))

	pointer, appErr := DecodeMetadataPointer(encoded)
	if appErr != nil {
		t.Fatalf("expected no error, got %+v", appErr)
	}
	if pointer != "ipfs://bafy1/a.json" {
		t.Fatalf("unexpected pointer: %s", pointer)
	}
}

func TestDecodeMetadataPointerRejectsInvalidInput(t *testing.T) {
	testCases := []string{
		"",
		"%%%not-base64%%%",
		base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0xfd}),
	}

	for _, testCase := range testCases {
		_, appErr := DecodeMetadataPointer(testCase)
		if appErr == nil {
			t.Fatalf("expected decode error for %q", testCase)
		}
		if appErr.Code != "asset_metadata_decode_failed" {
			t.Fatalf("expected asset_metadata_decode_failed for %q, got %s", testCase, appErr.Code)
		}
	}
}

func TestRewriteMetadataPointer(t *testing.T) {
	testCases := map[string]string{
		"ipfs://bafy123/meta.json":          testGateway + "bafy123/meta.json",
		"https://old.gateway//bafy9/x.json": testGateway + "bafy9/x.json",
		"bafy123/meta.json":                 testGateway + "bafy123/meta.json",
	}

	for pointer, expected := range testCases {
		if rewritten := RewriteMetadataPointer(testGateway, pointer); rewritten != expected {
			t.Fatalf("pointer %q: expected %q, got %q", pointer, expected, rewritten)
		}
	}
}

func TestRewriteMetadataPointerAddsMissingSlash(t *testing.T) {
	rewritten := RewriteMetadataPointer("https://gateway.example/ipfs", "ipfs://bafy123/meta.json")
	if rewritten != "https://gateway.example/ipfs/bafy123/meta.json" {
		t.Fatalf("unexpected url: %s", rewritten)
	}
}

func TestRewriteImagePointer(t *testing.T) {
	testCases := map[string]string{
		"ipfs://bafy123/sub/pic.png": testGateway + "sub/pic.png",
		"ipfs://bafy123/pic.png":     testGateway + "bafy123/pic.png",
		"pic.png":                    testGateway + "pic.png",
	}

	for image, expected := range testCases {
		if rewritten := RewriteImagePointer(testGateway, image); rewritten != expected {
			t.Fatalf("image %q: expected %q, got %q", image, expected, rewritten)
		}
	}
}
