package controllers

import (
	"net/http"

	"nftmarket/internal/application/dto"
	portsin "nftmarket/internal/application/ports/in"

	log "github.com/sirupsen/logrus"
)

type ProfileController struct {
	useCase portsin.GetPlayerProfileUseCase
	logger  *log.Logger
}

func NewProfileController(useCase portsin.GetPlayerProfileUseCase, logger *log.Logger) *ProfileController {
	return &ProfileController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *ProfileController) GetProfile(w http.ResponseWriter, r *http.Request) {
	output, appErr := c.useCase.Execute(r.Context(), dto.GetPlayerProfileQuery{
		AccountID: r.PathValue("account_id"),
	})
	if appErr != nil {
		logRequestError(c.logger, r, "/v1/accounts/{account_id}/profile", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, output)
}
