package utils

import "errors"

// Common application errors used across services. Each value corresponds to
// one caller-facing failure kind; storage faults are passed through as-is.
var (
	ErrInvalidParameters    = errors.New("INVALID_PARAMETERS")
	ErrFilters              = errors.New("INVALID_FILTERS")
	ErrArrivalDate          = errors.New("INVALID_ARRIVAL_DATE")
	ErrProductAlreadyExists = errors.New("PRODUCT_ALREADY_EXISTS")
	ErrProductNotFound      = errors.New("PRODUCT_NOT_FOUND")
	ErrEmptyProductStock    = errors.New("EMPTY_PRODUCT_STOCK")
	ErrLowProductStock      = errors.New("LOW_PRODUCT_STOCK")

	ErrUserAlreadyExists   = errors.New("USER_ALREADY_EXISTS")
	ErrInvalidCredentials  = errors.New("INVALID_CREDENTIALS")
	ErrReviewAlreadyExists = errors.New("REVIEW_ALREADY_EXISTS")
	ErrReviewNotFound      = errors.New("REVIEW_NOT_FOUND")
)
