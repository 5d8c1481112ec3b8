package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business rule or client-side precondition failure.
// These errors are produced before any request leaves the process.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrValidation        = errors.New("validation failed")

	// ErrNotFound marks a gateway response for a resource the server
	// does not have. The cart service treats it as "start empty".
	ErrNotFound = errors.New("resource not found")
)

const (
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
	ErrCodeNotCancellable    = "NOT_CANCELLABLE"
	ErrCodeReturnNotAllowed  = "RETURN_NOT_ALLOWED"
	ErrCodeNotReorderable    = "NOT_REORDERABLE"
	ErrCodeInvalidCard       = "INVALID_CARD"
	ErrCodeInvalidUPI        = "INVALID_UPI"
	ErrCodeMethodUnavailable = "PAYMENT_METHOD_UNAVAILABLE"
	ErrCodeMissingField      = "MISSING_REQUIRED_FIELD"
)

func NewEmptyCartError() *DomainError {
	return &DomainError{
		Code:    ErrCodeEmptyCart,
		Message: "cannot create an order from an empty cart",
		Err:     ErrValidation,
	}
}

func NewInvalidQuantityError(quantity int) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidQuantity,
		Message: fmt.Sprintf("quantity must be at least 1, got %d", quantity),
		Err:     ErrValidation,
	}
}

func NewInvalidTransitionError(from, to OrderStatus) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition order from %s to %s", from, to),
		Err:     ErrInvalidTransition,
	}
}

func NewNotCancellableError(status OrderStatus) *DomainError {
	return &DomainError{
		Code:    ErrCodeNotCancellable,
		Message: fmt.Sprintf("order in status %s cannot be cancelled", status),
		Err:     ErrValidation,
	}
}

func NewReturnNotAllowedError(reason string) *DomainError {
	return &DomainError{
		Code:    ErrCodeReturnNotAllowed,
		Message: fmt.Sprintf("order cannot be returned: %s", reason),
		Err:     ErrValidation,
	}
}

func NewNotReorderableError(status OrderStatus) *DomainError {
	return &DomainError{
		Code:    ErrCodeNotReorderable,
		Message: fmt.Sprintf("order in status %s cannot be reordered", status),
		Err:     ErrValidation,
	}
}

func NewInvalidCardError() *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidCard,
		Message: "card number failed checksum validation",
		Err:     ErrValidation,
	}
}

func NewInvalidUPIError(vpa string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidUPI,
		Message: fmt.Sprintf("invalid UPI address %q", vpa),
		Err:     ErrValidation,
	}
}

func NewMethodUnavailableError(method PaymentMethodType, amount int64) *DomainError {
	return &DomainError{
		Code:    ErrCodeMethodUnavailable,
		Message: fmt.Sprintf("payment method %s is not available for amount %d", method, amount),
		Err:     ErrValidation,
	}
}

func NewMissingFieldError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingField,
		Message: fmt.Sprintf("%s is required", field),
		Err:     ErrValidation,
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// IsValidation reports whether the error is a client-side precondition
// failure that must never reach the server.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
