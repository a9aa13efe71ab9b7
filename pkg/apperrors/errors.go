package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the application error structure. Every deliberately raised
// error carries an HTTP status code; the JSON shape on the wire is the
// {status, message} envelope produced by MarshalJSON.
type AppError struct {
	Code     ErrorCode   `json:"-"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Status classifies the error: 4xx -> "failed", everything else -> "error"
func (e *AppError) Status() string {
	if e.HTTPCode >= 400 && e.HTTPCode < 500 {
		return "failed"
	}
	return "error"
}

// New - base constructor
func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap keeps an underlying error attached for logging
func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// MarshalJSON renders the standard response envelope
func (e *AppError) MarshalJSON() ([]byte, error) {
	type envelope struct {
		Status  string      `json:"status"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&envelope{
		Status:  e.Status(),
		Message: e.Message,
		Details: e.Details,
	})
}

// Is wraps the standard errors.Is
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// --- Constructors for the error kinds the handlers raise ---

// InternalError wraps an unexpected system error
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

// ValidationError carries the field -> message map from the validator
func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "Validation failed", http.StatusBadRequest).WithDetails(details)
}

// NewBadRequestError creates a plain 400
func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

// NewUnauthorizedError creates a 401
func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

// NewForbiddenError creates a 403
func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

// NewNotFoundError creates a 404
func NewNotFoundError(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

// NewConflictError creates a duplicate-resource 400.
// Duplicate registration answers 400, not 409, to match the public API contract.
func NewConflictError(message string) *AppError {
	return New(CodeAlreadyExists, message, http.StatusBadRequest)
}

// NewMissingCredentialsError creates the login 400 for absent email/password
func NewMissingCredentialsError() *AppError {
	return New(CodeMissingCredentials, "Please provide email and password for login", http.StatusBadRequest)
}

// NewInvalidCredentialsError creates the login 400.
// Unknown email and wrong password return the identical message so a caller
// cannot probe which accounts exist.
func NewInvalidCredentialsError() *AppError {
	return New(CodeInvalidCredentials, "Incorrect email or password", http.StatusBadRequest)
}

// NewInvalidResetTokenError creates the 400 for a wrong or expired reset code.
// The two causes are intentionally indistinguishable.
func NewInvalidResetTokenError() *AppError {
	return New(CodeInvalidToken, "Token is invalid or has expired", http.StatusBadRequest)
}

// NewEmailDeliveryError creates the 500 for a failed reset-code send
func NewEmailDeliveryError(err error) *AppError {
	return Wrap(err, CodeEmailDeliveryError, "There was an error sending the email. Try again later!", http.StatusInternalServerError)
}
