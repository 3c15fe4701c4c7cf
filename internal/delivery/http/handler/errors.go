package handler

import (
	"errors"
	"net/http"

	domainCatalog "delivery-tracker/internal/domain/catalog"
	domainDelivery "delivery-tracker/internal/domain/delivery"
	domainUser "delivery-tracker/internal/domain/user"
	appErrors "delivery-tracker/pkg/errors"
	"delivery-tracker/pkg/utils"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps domain and application errors onto HTTP statuses.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainCatalog.ErrEntryNotFound),
		errors.Is(err, domainDelivery.ErrDeliveryNotFound),
		errors.Is(err, domainUser.ErrUserNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domainCatalog.ErrCodeConflict),
		errors.Is(err, domainCatalog.ErrEntryInUse),
		errors.Is(err, domainDelivery.ErrNumberConflict),
		errors.Is(err, domainUser.ErrUserAlreadyExists):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, domainCatalog.ErrInvalidOrdering),
		errors.Is(err, domainDelivery.ErrInvalidOrdering),
		errors.Is(err, domainDelivery.ErrInvalidTimeRange),
		errors.Is(err, domainDelivery.ErrCompletedStatusAbsent):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, appErrors.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	default:
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
