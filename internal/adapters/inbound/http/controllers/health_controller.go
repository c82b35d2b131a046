package controllers

import (
	"net/http"

	"nftmarket/internal/application/dto"
	portsin "nftmarket/internal/application/ports/in"

	log "github.com/sirupsen/logrus"
)

type HealthController struct {
	useCase portsin.GetHealthUseCase
	logger  *log.Logger
}

func NewHealthController(useCase portsin.GetHealthUseCase, logger *log.Logger) *HealthController {
	return &HealthController{
		useCase: useCase,
		logger:  logger,
	}
}

// GetHealth answers 200 for both ok and degraded.
func (c *HealthController) GetHealth(w http.ResponseWriter, r *http.Request) {
	output, appErr := c.useCase.Execute(r.Context(), dto.GetHealthCommand{})
	if appErr != nil {
		logRequestError(c.logger, r, "/healthz", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, output)
}
