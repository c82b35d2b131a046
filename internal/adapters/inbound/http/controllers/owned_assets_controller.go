package controllers

import (
	"net/http"

	"nftmarket/internal/application/dto"
	portsin "nftmarket/internal/application/ports/in"

	log "github.com/sirupsen/logrus"
)

type OwnedAssetsController struct {
	listUseCase     portsin.ListOwnedAssetsUseCase
	snapshotUseCase portsin.GetOwnedAssetSnapshotUseCase
	logger          *log.Logger
}

func NewOwnedAssetsController(
	listUseCase portsin.ListOwnedAssetsUseCase,
	snapshotUseCase portsin.GetOwnedAssetSnapshotUseCase,
	logger *log.Logger,
) *OwnedAssetsController {
	return &OwnedAssetsController{
		listUseCase:     listUseCase,
		snapshotUseCase: snapshotUseCase,
		logger:          logger,
	}
}

func (c *OwnedAssetsController) ListOwnedAssets(w http.ResponseWriter, r *http.Request) {
	const route = "/v1/accounts/{account_id}/nfts"

	page, appErr := queryInt(r, "page")
	if appErr != nil {
		writeAppError(w, appErr)
		return
	}
	pageSize, appErr := queryInt(r, "page_size")
	if appErr != nil {
		writeAppError(w, appErr)
		return
	}

	query := r.URL.Query()
	output, appErr := c.listUseCase.Execute(r.Context(), dto.ListOwnedAssetsQuery{
		AccountID:         r.PathValue("account_id"),
		Page:              page,
		PageSize:          pageSize,
		ItemErrorPolicy:   query.Get("item_errors"),
		PageFailurePolicy: query.Get("page_failure"),
	})
	if appErr != nil {
		logRequestError(c.logger, r, route, appErr)
		writeAppError(w, appErr)
		return
	}

	writeCacheableJSON(w, r, output)
}

func (c *OwnedAssetsController) GetOwnedAssetSnapshot(w http.ResponseWriter, r *http.Request) {
	output, appErr := c.snapshotUseCase.Execute(r.Context(), dto.GetOwnedAssetSnapshotQuery{
		AccountID: r.PathValue("account_id"),
	})
	if appErr != nil {
		logRequestError(c.logger, r, "/v1/accounts/{account_id}/nfts/snapshot", appErr)
		writeAppError(w, appErr)
		return
	}

	writeCacheableJSON(w, r, output)
}
