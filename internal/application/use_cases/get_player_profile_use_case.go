package use_cases

import (
	"context"

	"nftmarket/internal/application/dto"
	portsin "nftmarket/internal/application/ports/in"
	portsout "nftmarket/internal/application/ports/out"
	valueobjects "nftmarket/internal/domain/value_objects"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type getPlayerProfileUseCase struct {
	readModel portsout.PlayerProfileReadModel
}

func NewGetPlayerProfileUseCase(readModel portsout.PlayerProfileReadModel) portsin.GetPlayerProfileUseCase {
	return &getPlayerProfileUseCase{readModel: readModel}
}

func (u *getPlayerProfileUseCase) Execute(ctx context.Context, query dto.GetPlayerProfileQuery) (dto.PlayerProfileOutput, *apperrors.AppError) {
	if u.readModel == nil {
		return dto.PlayerProfileOutput{}, apperrors.NewInternal(
			"player_profile_read_model_missing",
			"player profile read model is required",
			nil,
		)
	}

	accountID, appErr := valueobjects.NormalizeAccountID(query.AccountID)
	if appErr != nil {
		return dto.PlayerProfileOutput{}, appErr
	}

	profile, found, appErr := u.readModel.GetByAccountID(ctx, accountID)
	if appErr != nil {
		return dto.PlayerProfileOutput{}, appErr
	}
	if !found {
		return dto.PlayerProfileOutput{}, apperrors.NewNotFound(
			"player_profile_not_found",
			"player profile was not found",
			map[string]any{"account_id": accountID},
		)
	}

	return dto.PlayerProfileOutput{Profile: profile}, nil
}
