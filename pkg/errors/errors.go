package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrValidation                  = errors.New("validation failed")
	ErrProductNotFound             = errors.New("loan product not found")
	ErrAmountOutOfRange            = errors.New("amount outside loan product range")
	ErrOrderNotFound               = errors.New("order not found")
	ErrOrderAlreadyProcessed       = errors.New("order already processed")
	ErrInvalidDecision             = errors.New("invalid decision")
	ErrPendingStatusNotProvisioned = errors.New("pending status not provisioned")
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
	ErrCodeValidation            = "VALIDATION_ERROR"
	ErrCodeProductNotFound       = "LOAN_PRODUCT_NOT_FOUND"
	ErrCodeAmountOutOfRange      = "INVALID_LOAN_AMOUNT"
	ErrCodeOrderNotFound         = "ORDER_NOT_FOUND"
	ErrCodeOrderAlreadyProcessed = "ORDER_ALREADY_PROCESSED"
	ErrCodeInvalidDecision       = "INVALID_DECISION"
	ErrCodeConfiguration         = "PENDING_STATUS_NOT_FOUND"
	ErrCodeDatabaseError         = "DATABASE_ERROR"
	ErrCodeCacheError            = "CACHE_ERROR"
)

// CodeOf returns the code of the first BusinessError in err's chain, or "".
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

func WrapValidation(field, message string) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		fmt.Sprintf("%s: %s", field, message),
		ErrValidation,
	)
}

func WrapProductNotFound(productID string) *BusinessError {
	return NewBusinessError(
		ErrCodeProductNotFound,
		fmt.Sprintf("Loan product with ID %s not found", productID),
		ErrProductNotFound,
	)
}

func WrapAmountOutOfRange(amount, min, max string) *BusinessError {
	return NewBusinessError(
		ErrCodeAmountOutOfRange,
		fmt.Sprintf("Requested amount %s is outside the allowed range [%s, %s]", amount, min, max),
		ErrAmountOutOfRange,
	)
}

func WrapOrderNotFound(orderID string) *BusinessError {
	return NewBusinessError(
		ErrCodeOrderNotFound,
		fmt.Sprintf("Order with ID %s not found", orderID),
		ErrOrderNotFound,
	)
}

func WrapOrderAlreadyProcessed(orderID string) *BusinessError {
	return NewBusinessError(
		ErrCodeOrderAlreadyProcessed,
		fmt.Sprintf("Order with ID %s was already processed and cannot be modified", orderID),
		ErrOrderAlreadyProcessed,
	)
}

func WrapInvalidDecision(decision string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDecision,
		fmt.Sprintf("Invalid decision: %q", decision),
		ErrInvalidDecision,
	)
}

// WrapPendingStatusNotProvisioned signals operator error: the status catalog
// has no usable PENDING row.
func WrapPendingStatusNotProvisioned(detail string) *BusinessError {
	return NewBusinessError(
		ErrCodeConfiguration,
		"PENDING status is not provisioned: "+detail,
		ErrPendingStatusNotProvisioned,
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
