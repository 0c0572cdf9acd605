package errors

import (
	"net/http"

	"shopsmart/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Registration flow errors. Each maps one-to-one onto a user-visible message;
// AJAX and non-AJAX callers receive the same semantic content.
var (
	// ErrValidationFailed covers bad input caught before any state mutates
	// (unparseable phone number, missing required field).
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Please correct the form errors and try again.",
		"",
	)

	// ErrEmailInUse means an active account already owns the email; terminal
	// for the registration flow.
	ErrEmailInUse = NewBaseError(
		http.StatusConflict,
		"EMAIL_IN_USE",
		"Email already in use.",
		"",
	)

	// ErrVerificationAlreadySent means a live pending registration exists;
	// the caller should be offered a resend instead of a fresh registration.
	ErrVerificationAlreadySent = NewBaseError(
		http.StatusConflict,
		"VERIFICATION_ALREADY_SENT",
		"Verification already sent. Please check your email or wait 15 minutes.",
		"",
	)

	// ErrSessionExpired means no pending registration was found for the email.
	ErrSessionExpired = NewBaseError(
		http.StatusBadRequest,
		"SESSION_EXPIRED",
		"Verification session expired. Please register again.",
		"",
	)

	// ErrInvalidCode means the submitted code does not match; the pending
	// record is preserved so the caller may retry within the code window.
	ErrInvalidCode = NewBaseError(
		http.StatusBadRequest,
		"INVALID_CODE",
		"Invalid verification code.",
		"",
	)

	// ErrCodeExpired means the 15-minute code window passed; the pending
	// record is deleted and the caller must register again.
	ErrCodeExpired = NewBaseError(
		http.StatusBadRequest,
		"CODE_EXPIRED",
		"Verification code has expired. Please request a new one.",
		"",
	)

	// ErrAlreadyRegistered is the race-loser signal: a concurrent flow
	// completed verification for the same email first.
	ErrAlreadyRegistered = NewBaseError(
		http.StatusConflict,
		"ALREADY_REGISTERED",
		"This email is already registered. Please log in.",
		"",
	)

	// ErrDeliveryFailed means the verification email could not be sent. The
	// pending record is kept so a resend can retry; non-terminal.
	ErrDeliveryFailed = NewBaseError(
		http.StatusBadGateway,
		"DELIVERY_FAILED",
		"We could not send the verification email. Please try resending the code.",
		"",
	)

	// ErrMaterializationFailed means the account or profile could not be
	// created; any partial account is rolled back and the pending record
	// deleted.
	ErrMaterializationFailed = NewBaseError(
		http.StatusInternalServerError,
		"MATERIALIZATION_FAILED",
		"We could not complete your registration. Please register again.",
		"",
	)
)

// Authentication errors.
var (
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password.",
		"",
	)

	ErrShopNotApproved = NewBaseError(
		http.StatusForbidden,
		"SHOP_NOT_APPROVED",
		"Your account is not yet approved by admin.",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing error.",
		"",
	)
)

// General errors.
var (
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error.",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found.",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed."
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
