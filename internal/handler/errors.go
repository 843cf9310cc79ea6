package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/voltshop/inventory-api/internal/utils"
)

// writeError maps an application error onto the response envelope. Anything
// outside the known taxonomy is a storage or infrastructure fault and is
// reported as an opaque 500.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrInvalidParameters):
		utils.Error(c, 400, "INVALID_PARAMETERS", "Invalid request parameters")
	case errors.Is(err, utils.ErrFilters):
		utils.Error(c, 400, "INVALID_FILTERS", "Invalid grouping, category, or model combination")
	case errors.Is(err, utils.ErrArrivalDate):
		utils.Error(c, 400, "INVALID_ARRIVAL_DATE", "Date is in the future or precedes the product arrival date")
	case errors.Is(err, utils.ErrProductNotFound):
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
	case errors.Is(err, utils.ErrReviewNotFound):
		utils.Error(c, 404, "REVIEW_NOT_FOUND", "Review not found")
	case errors.Is(err, utils.ErrProductAlreadyExists):
		utils.Error(c, 409, "PRODUCT_ALREADY_EXISTS", "A product with this model already exists")
	case errors.Is(err, utils.ErrUserAlreadyExists):
		utils.Error(c, 409, "USER_ALREADY_EXISTS", "Username is already taken")
	case errors.Is(err, utils.ErrReviewAlreadyExists):
		utils.Error(c, 409, "REVIEW_ALREADY_EXISTS", "You have already reviewed this product")
	case errors.Is(err, utils.ErrEmptyProductStock):
		utils.Error(c, 409, "EMPTY_PRODUCT_STOCK", "Product is out of stock")
	case errors.Is(err, utils.ErrLowProductStock):
		utils.Error(c, 409, "LOW_PRODUCT_STOCK", "Requested quantity exceeds available stock")
	case errors.Is(err, utils.ErrInvalidCredentials):
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid username or password")
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		utils.Error(c, 500, "INTERNAL_ERROR", "Internal server error")
	}
}
