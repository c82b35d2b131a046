//go:build !integration

package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"nftmarket/internal/application/dto"
	apperrors "nftmarket/internal/shared_kernel/errors"

	"github.com/stretchr/testify/require"
)

type stubProfileUseCase struct{}

func (stubProfileUseCase) Execute(_ context.Context, query dto.GetPlayerProfileQuery) (dto.PlayerProfileOutput, *apperrors.AppError) {
	if query.AccountID != "0.0.1001" {
		return dto.PlayerProfileOutput{}, apperrors.NewNotFound("player_profile_not_found", "player profile was not found", map[string]any{"account_id": query.AccountID})
	}
	return dto.PlayerProfileOutput{Profile: dto.PlayerProfile{AccountID: query.AccountID, PlayerID: "p-1", Level: 4}}, nil
}

func TestProfileControllerGetProfile(t *testing.T) {
	controller := NewProfileController(stubProfileUseCase{}, discardLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/accounts/0.0.1001/profile", nil)
	req.SetPathValue("account_id", "0.0.1001")
	rec := httptest.NewRecorder()
	controller.GetProfile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"player_id":"p-1"`)

	req = httptest.NewRequest(http.MethodGet, "/v1/accounts/0.0.2/profile", nil)
	req.SetPathValue("account_id", "0.0.2")
	rec = httptest.NewRecorder()
	controller.GetProfile(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "player_profile_not_found")
}
