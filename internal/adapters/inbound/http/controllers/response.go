package controllers

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	apperrors "nftmarket/internal/shared_kernel/errors"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/sha3"
)

type errorResponse struct {
	Error errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeCacheableJSON tags the body with a sha3 ETag and answers 304 when the client
// already holds the same representation.
func writeCacheableJSON(w http.ResponseWriter, r *http.Request, payload any) {
	body := &bytes.Buffer{}
	if err := json.NewEncoder(body).Encode(payload); err != nil {
		writeAppError(w, apperrors.NewInternal(
			"response_encode_failed",
			"failed to encode response",
			map[string]any{"error": err.Error()},
		))
		return
	}

	sum := sha3.Sum256(body.Bytes())
	etag := `"` + hex.EncodeToString(sum[:16]) + `"`
	w.Header().Set("ETag", etag)
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body.Bytes())
}

func etagMatches(header string, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(candidate), "W/"))
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

func writeAppError(w http.ResponseWriter, appErr *apperrors.AppError) {
	writeJSON(w, statusForError(appErr), errorResponse{
		Error: errorEnvelope{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		},
	})
}

func statusForError(appErr *apperrors.AppError) int {
	switch appErr.Type {
	case apperrors.TypeValidation:
		return http.StatusBadRequest
	case apperrors.TypeNotFound:
		return http.StatusNotFound
	case apperrors.TypeConflict:
		return http.StatusConflict
	case apperrors.TypeUpstream:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func logRequestError(logger *log.Logger, r *http.Request, route string, appErr *apperrors.AppError) {
	if logger == nil {
		return
	}

	entry := logger.WithFields(log.Fields{
		"path":   route,
		"method": r.Method,
		"code":   appErr.Code,
	})
	switch {
	case appErr.IsType(apperrors.TypeInternal):
		entry.Error(appErr.Message)
	case appErr.IsType(apperrors.TypeUpstream):
		entry.Warn(appErr.Message)
	default:
		entry.Debug(appErr.Message)
	}
}

func queryInt(r *http.Request, name string) (int, *apperrors.AppError) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidation(
			"invalid_request",
			name+" must be an integer",
			map[string]any{"field": name},
		)
	}
	return value, nil
}
