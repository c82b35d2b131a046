package controllers

import (
	"net/http"

	"nftmarket/internal/application/dto"
	portsin "nftmarket/internal/application/ports/in"
	valueobjects "nftmarket/internal/domain/value_objects"

	log "github.com/sirupsen/logrus"
)

type AssetsController struct {
	useCase portsin.GetAssetDetailUseCase
	logger  *log.Logger
}

func NewAssetsController(useCase portsin.GetAssetDetailUseCase, logger *log.Logger) *AssetsController {
	return &AssetsController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *AssetsController) GetAsset(w http.ResponseWriter, r *http.Request) {
	serial, appErr := valueobjects.ParseSerialNumber(r.PathValue("serial_number"))
	if appErr != nil {
		writeAppError(w, appErr)
		return
	}

	output, appErr := c.useCase.Execute(r.Context(), dto.GetAssetDetailQuery{
		TokenID:      r.PathValue("token_id"),
		SerialNumber: serial,
	})
	if appErr != nil {
		logRequestError(c.logger, r, "/v1/tokens/{token_id}/nfts/{serial_number}", appErr)
		writeAppError(w, appErr)
		return
	}

	writeCacheableJSON(w, r, output)
}
