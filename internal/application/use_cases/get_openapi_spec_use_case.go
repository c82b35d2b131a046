package use_cases

import (
	"context"

	"nftmarket/internal/application/dto"
	portsin "nftmarket/internal/application/ports/in"
	portsout "nftmarket/internal/application/ports/out"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type getOpenAPISpecUseCase struct {
	readModel portsout.OpenAPISpecReadModel
}

func NewGetOpenAPISpecUseCase(readModel portsout.OpenAPISpecReadModel) portsin.GetOpenAPISpecUseCase {
	return &getOpenAPISpecUseCase{readModel: readModel}
}

func (u *getOpenAPISpecUseCase) Execute(ctx context.Context, _ dto.GetOpenAPISpecQuery) (dto.OpenAPISpecOutput, *apperrors.AppError) {
	if u.readModel == nil {
		return dto.OpenAPISpecOutput{}, apperrors.NewInternal(
			"openapi_spec_read_model_missing",
			"openapi spec read model is required",
			nil,
		)
	}

	content, contentType, appErr := u.readModel.Read(ctx)
	if appErr != nil {
		return dto.OpenAPISpecOutput{}, appErr
	}
	if contentType == "" {
		contentType = "application/yaml"
	}

	return dto.OpenAPISpecOutput{
		Content:     content,
		ContentType: contentType,
	}, nil
}
