package valueobjects

import (
	"regexp"
	"strconv"
	"strings"

	apperrors "nftmarket/internal/shared_kernel/errors"
)

var (
	entityIDPattern   = regexp.MustCompile(`^\d{1,10}\.\d{1,10}\.\d{1,19}$`)
	evmAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
)

// NormalizeAccountID accepts a shard.realm.num entity id or a 0x-prefixed EVM alias.
func NormalizeAccountID(raw string) (string, *apperrors.AppError) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", apperrors.NewValidation(
			"invalid_request",
			"account_id is required",
			map[string]any{"field": "account_id"},
		)
	}

	if entityIDPattern.MatchString(trimmed) {
		return trimmed, nil
	}
	if evmAddressPattern.MatchString(trimmed) {
		return strings.ToLower(trimmed), nil
	}

	return "", apperrors.NewValidation(
		"invalid_request",
		"account_id must be shard.realm.num or a 0x-prefixed EVM address",
		map[string]any{"field": "account_id"},
	)
}

// NormalizeEntityAccountID accepts only a shard.realm.num entity id. Owner
// comparisons against mirror records need this form.
func NormalizeEntityAccountID(raw string) (string, *apperrors.AppError) {
	accountID, appErr := NormalizeAccountID(raw)
	if appErr != nil {
		return "", appErr
	}
	if !entityIDPattern.MatchString(accountID) {
		return "", apperrors.NewValidation(
			"invalid_request",
			"account_id must be a shard.realm.num entity id",
			map[string]any{"field": "account_id"},
		)
	}

	return accountID, nil
}

func NormalizeTokenID(raw string) (string, *apperrors.AppError) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", apperrors.NewValidation(
			"invalid_request",
			"token_id is required",
			map[string]any{"field": "token_id"},
		)
	}
	if !entityIDPattern.MatchString(trimmed) {
		return "", apperrors.NewValidation(
			"invalid_request",
			"token_id must be shard.realm.num",
			map[string]any{"field": "token_id"},
		)
	}

	return trimmed, nil
}

func ParseSerialNumber(raw string) (int64, *apperrors.AppError) {
	trimmed := strings.TrimSpace(raw)
	serial, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidation(
			"invalid_request",
			"serial_number must be an integer",
			map[string]any{"field": "serial_number"},
		)
	}

	return serial, ValidateSerialNumber(serial)
}

func ValidateSerialNumber(serial int64) *apperrors.AppError {
	if serial <= 0 {
		return apperrors.NewValidation(
			"invalid_request",
			"serial_number must be greater than zero",
			map[string]any{"field": "serial_number"},
		)
	}

	return nil
}
