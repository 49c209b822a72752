package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string   `json:"error_code"`
	Message    string   `json:"message"`
	Details    []string `json:"details,omitempty"`
	HTTPStatus int      `json:"-"`
	Err        error    `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Shipping configuration (SHP) ----

// ErrInvalidZoneConfig carries every blocking problem found in a zone set.
func ErrInvalidZoneConfig(details []string) *AppError {
	e := New("SHP_001", "Invalid shipping zone configuration", http.StatusUnprocessableEntity)
	e.Details = details
	return e
}

func ErrStoreNotFound() *AppError {
	return New("SHP_002", "Store not found", http.StatusNotFound)
}

// ---- Couriers (CRR) ----

func ErrUnknownCourier(name string) *AppError {
	return New("CRR_001", fmt.Sprintf("Unknown courier provider %q", name), http.StatusNotFound)
}

func ErrCourierUnavailable(err error) *AppError {
	return Wrap("CRR_002", "Courier API request failed", http.StatusBadGateway, err)
}

func ErrCourierCredentials(err error) *AppError {
	return Wrap("CRR_003", "Courier credentials rejected", http.StatusUnprocessableEntity, err)
}

// ---- Recovery (REC) ----

func ErrCartNotFound() *AppError {
	return New("REC_001", "Cart not found", http.StatusNotFound)
}

func ErrMissingCartIdentity() *AppError {
	return New("REC_002", "Cart needs an email or a customer id", http.StatusBadRequest)
}

// ---- Auth (AUTH) ----

func ErrUnauthorized() *AppError {
	return New("AUTH_001", "Unauthorized", http.StatusUnauthorized)
}

func ErrForbidden() *AppError {
	return New("AUTH_002", "Forbidden", http.StatusForbidden)
}

// ---- System (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a 400 validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}
