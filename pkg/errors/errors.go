package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrDealNotFound      = errors.New("deal not found")
	ErrDealerNotFound    = errors.New("dealer not found")
	ErrNoActiveDeals     = errors.New("no active deals for dealer and customer")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInvalidDate       = errors.New("malformed date")
	ErrValidation        = errors.New("validation failed")
	ErrDealAlreadyClosed = errors.New("deal is already closed")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeDealNotFound    = "DEAL_NOT_FOUND"
	ErrCodeDealerNotFound  = "DEALER_NOT_FOUND"
	ErrCodeNoActiveDeals   = "NO_ACTIVE_DEALS"
	ErrCodeValidationError = "VALIDATION_ERROR"
	ErrCodeDatabaseError   = "DATABASE_ERROR"
	ErrCodeCacheError      = "CACHE_ERROR"
)

// Wrap common errors with business context
func WrapDealNotFound(dealID int64) *BusinessError {
	return NewBusinessError(
		ErrCodeDealNotFound,
		fmt.Sprintf("Deal %d not found", dealID),
		ErrDealNotFound,
	)
}

func WrapDealerNotFound(dealerID string) *BusinessError {
	return NewBusinessError(
		ErrCodeDealerNotFound,
		fmt.Sprintf("Dealer %s not found", dealerID),
		ErrDealerNotFound,
	)
}

func WrapNoActiveDeals(dealerID, customerName string) *BusinessError {
	return NewBusinessError(
		ErrCodeNoActiveDeals,
		fmt.Sprintf("No active deals for dealer %s and customer %q", dealerID, customerName),
		ErrNoActiveDeals,
	)
}

func WrapValidationError(message string, err error) *BusinessError {
	if err == nil {
		err = ErrValidation
	}
	return NewBusinessError(
		ErrCodeValidationError,
		message,
		err,
	)
}

func WrapInvalidAmount(amount string) *BusinessError {
	return NewBusinessError(
		ErrCodeValidationError,
		fmt.Sprintf("Invalid amount: %s", amount),
		ErrInvalidAmount,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}

// IsNotFound reports whether err is any of the not-found business errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDealNotFound) ||
		errors.Is(err, ErrDealerNotFound) ||
		errors.Is(err, ErrNoActiveDeals)
}
