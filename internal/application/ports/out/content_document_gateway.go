package out

import (
	"context"

	"nftmarket/internal/application/dto"
	apperrors "nftmarket/internal/shared_kernel/errors"
)

type ContentDocumentGateway interface {
	FetchContentDocument(ctx context.Context, documentURL string) (dto.ContentDocument, *apperrors.AppError)
}
