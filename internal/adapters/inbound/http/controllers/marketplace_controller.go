package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"nftmarket/internal/application/dto"
	portsin "nftmarket/internal/application/ports/in"
	apperrors "nftmarket/internal/shared_kernel/errors"

	log "github.com/sirupsen/logrus"
)

const maxListingBodyBytes = 16 << 10

type MarketplaceController struct {
	listUseCase   portsin.ListMarketplaceListingsUseCase
	createUseCase portsin.CreateListingUseCase
	logger        *log.Logger
}

type createListingPayload struct {
	AccountID    string `json:"account_id"`
	TokenID      string `json:"token_id"`
	SerialNumber int64  `json:"serial_number"`
	PriceTinybar int64  `json:"price_tinybar"`
}

func NewMarketplaceController(
	listUseCase portsin.ListMarketplaceListingsUseCase,
	createUseCase portsin.CreateListingUseCase,
	logger *log.Logger,
) *MarketplaceController {
	return &MarketplaceController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		logger:        logger,
	}
}

func (c *MarketplaceController) ListListings(w http.ResponseWriter, r *http.Request) {
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

	output, appErr := c.listUseCase.Execute(r.Context(), dto.ListMarketplaceListingsQuery{
		Page:     page,
		PageSize: pageSize,
	})
	if appErr != nil {
		logRequestError(c.logger, r, "/v1/marketplace/listings", appErr)
		writeAppError(w, appErr)
		return
	}

	writeJSON(w, http.StatusOK, output)
}

func (c *MarketplaceController) CreateListing(w http.ResponseWriter, r *http.Request) {
	payload, appErr := parseCreateListingPayload(http.MaxBytesReader(w, r.Body, maxListingBodyBytes))
	if appErr != nil {
		writeAppError(w, appErr)
		return
	}

	output, appErr := c.createUseCase.Execute(r.Context(), dto.CreateListingCommand{
		SellerAccountID: payload.AccountID,
		TokenID:         payload.TokenID,
		SerialNumber:    payload.SerialNumber,
		PriceTinybar:    payload.PriceTinybar,
	})
	if appErr != nil {
		logRequestError(c.logger, r, "/v1/marketplace/listings", appErr)
		writeAppError(w, appErr)
		return
	}

	w.Header().Set("Location", "/v1/marketplace/listings/"+output.Listing.ID)
	writeJSON(w, http.StatusCreated, output)
}

func parseCreateListingPayload(body io.Reader) (createListingPayload, *apperrors.AppError) {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()

	payload := createListingPayload{}
	if err := decoder.Decode(&payload); err != nil {
		return createListingPayload{}, apperrors.NewValidation(
			"invalid_request",
			"request body must be valid JSON",
			map[string]any{"error": err.Error()},
		)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return createListingPayload{}, apperrors.NewValidation(
			"invalid_request",
			"request body must contain a single JSON object",
			nil,
		)
	}

	return payload, nil
}
