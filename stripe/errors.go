package stripe

import (
	"errors"
	"fmt"
	"net/http"

	stripeapi "github.com/stripe/stripe-go/v82"
)

// StripeError represents a Stripe-specific error
type StripeError struct {
	Code    string
	Message string
	Err     error
}

func (e *StripeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stripe error [%s]: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("stripe error [%s]: %s", e.Code, e.Message)
}

func (e *StripeError) Unwrap() error {
	return e.Err
}

// Common Stripe errors
var (
	ErrInvalidConfiguration = &StripeError{Code: "invalid_configuration", Message: "invalid stripe configuration"}
	ErrValidationFailed     = &StripeError{Code: "validation_failed", Message: "input validation failed"}
	ErrCustomerNotFound     = &StripeError{Code: "customer_not_found", Message: "stripe customer not found"}
	ErrAuthenticationFailed = &StripeError{Code: "authentication_failed", Message: "stripe API authentication failed"}
	ErrInvalidRequest       = &StripeError{Code: "invalid_request", Message: "invalid request to stripe API"}
	ErrAPICallFailed        = &StripeError{Code: "api_call_failed", Message: "stripe API call failed"}
)

// NewStripeError creates a new StripeError with the given code, message, and underlying error
func NewStripeError(code, message string, err error) *StripeError {
	return &StripeError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// mapAPIError translates an error returned by the stripe-go bindings into a
// StripeError with one of the taxonomy codes. The original stripe-go error is
// always kept as the wrapped cause.
func mapAPIError(message string, err error) *StripeError {
	var stripeErr *stripeapi.Error
	if !errors.As(err, &stripeErr) {
		return NewStripeError("api_call_failed", message, err)
	}

	switch {
	case stripeErr.HTTPStatusCode == http.StatusUnauthorized:
		return NewStripeError("authentication_failed", message, err)
	case stripeErr.Code == stripeapi.ErrorCodeResourceMissing:
		return NewStripeError("customer_not_found", message, err)
	case stripeErr.Type == stripeapi.ErrorTypeInvalidRequest:
		return NewStripeError("invalid_request", message, err)
	default:
		return NewStripeError("api_call_failed", message, err)
	}
}

// IsRetryableError determines if an error is retryable
func IsRetryableError(err error) bool {
	if stripeErr, ok := err.(*StripeError); ok {
		switch stripeErr.Code {
		case "api_call_failed", "rate_limit_error", "temporary_error":
			return true
		default:
			return false
		}
	}
	return false
}

// IsNotFound reports whether the error carries the customer_not_found code.
func IsNotFound(err error) bool {
	stripeErr, ok := err.(*StripeError)
	return ok && stripeErr.Code == "customer_not_found"
}
