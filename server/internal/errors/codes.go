package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine-readable code returned to API clients.
type ErrorCode string

const (
	// ErrCodeInvalidJSON indicates the request body is not valid JSON.
	ErrCodeInvalidJSON ErrorCode = "INVALID_JSON"
	// ErrCodeBadRequest indicates a structurally wrong request.
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"
	// ErrCodeValidation indicates a field failed validation.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	// ErrCodeNotFound indicates the addressed shop does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeNoRamenData indicates there is nothing to search yet.
	ErrCodeNoRamenData ErrorCode = "NO_RAMEN_DATA"
	// ErrCodeParseFailure indicates the model reply is not JSON.
	ErrCodeParseFailure ErrorCode = "PARSE_FAILURE"
	// ErrCodeInvalidFormat indicates the model reply is JSON but not an object.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	// ErrCodeInvalidAIResponse indicates the model reply lacks required fields.
	ErrCodeInvalidAIResponse ErrorCode = "INVALID_AI_RESPONSE"
	// ErrCodeAIUnavailable indicates the embedding or chat service failed.
	ErrCodeAIUnavailable ErrorCode = "AI_SERVICE_UNAVAILABLE"
	// ErrCodeDatabaseUnavailable indicates the database did not answer a ping.
	ErrCodeDatabaseUnavailable ErrorCode = "DATABASE_SERVICE_UNAVAILABLE"
	// ErrCodeDatabaseConnection indicates a read against the database failed.
	ErrCodeDatabaseConnection ErrorCode = "DATABASE_CONNECTION_ERROR"
	// ErrCodeDatabaseInsert indicates a write against the database failed.
	ErrCodeDatabaseInsert ErrorCode = "DATABASE_INSERT_ERROR"
	// ErrCodeRateLimitExceeded indicates the client sent too many requests.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeInternal is the catch-all for unexpected failures.
	ErrCodeInternal ErrorCode = "INTERNAL_SERVER_ERROR"
)

var statusByCode = map[ErrorCode]int{
	ErrCodeInvalidJSON:         http.StatusBadRequest,
	ErrCodeBadRequest:          http.StatusBadRequest,
	ErrCodeValidation:          http.StatusBadRequest,
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeNoRamenData:         http.StatusNotFound,
	ErrCodeParseFailure:        http.StatusUnprocessableEntity,
	ErrCodeInvalidFormat:       http.StatusUnprocessableEntity,
	ErrCodeInvalidAIResponse:   http.StatusUnprocessableEntity,
	ErrCodeAIUnavailable:       http.StatusServiceUnavailable,
	ErrCodeDatabaseUnavailable: http.StatusServiceUnavailable,
	ErrCodeDatabaseConnection:  http.StatusServiceUnavailable,
	ErrCodeDatabaseInsert:      http.StatusInternalServerError,
	ErrCodeRateLimitExceeded:   http.StatusTooManyRequests,
	ErrCodeInternal:            http.StatusInternalServerError,
}

// Status returns the HTTP status for the code.
func (c ErrorCode) Status() int {
	if status, ok := statusByCode[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// APIError is an error that carries an HTTP status and a client-facing code.
type APIError struct {
	Status  int
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// New creates an APIError whose status follows the code.
func New(code ErrorCode, msg string) *APIError {
	return &APIError{Status: code.Status(), Code: code, Message: msg}
}

// Wrap wraps an existing error with a code and client-facing message.
func Wrap(cause error, code ErrorCode, msg string) *APIError {
	return &APIError{Status: code.Status(), Code: code, Message: msg, Cause: cause}
}

// Convenience constructors for common error types.

// InvalidJSON creates an invalid JSON error.
func InvalidJSON(cause error) *APIError {
	return Wrap(cause, ErrCodeInvalidJSON, "リクエストの形式が正しくありません（JSONではありません）。")
}

// BadRequest creates a bad request error.
func BadRequest(msg string) *APIError {
	return New(ErrCodeBadRequest, msg)
}

// Validation creates a validation error.
func Validation(msg string) *APIError {
	return New(ErrCodeValidation, msg)
}

// NotFound creates a not found error.
func NotFound(msg string) *APIError {
	return New(ErrCodeNotFound, msg)
}

// AIUnavailable creates an AI service unavailable error.
func AIUnavailable(cause error) *APIError {
	return Wrap(cause, ErrCodeAIUnavailable, "AIサービスが一時的に利用できません。")
}

// Internal creates an internal server error.
func Internal(cause error) *APIError {
	return Wrap(cause, ErrCodeInternal, "予期せぬエラーが発生しました。")
}

// As extracts an APIError from anywhere in err's chain.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if apiErr, ok := As(err); ok {
		return apiErr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not an APIError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if apiErr, ok := As(err); ok {
		return apiErr.Code
	}
	return defaultCode
}

// StatusFromError returns the HTTP status for err, 500 for unknown errors.
func StatusFromError(err error) int {
	if apiErr, ok := As(err); ok {
		if apiErr.Status != 0 {
			return apiErr.Status
		}
		return apiErr.Code.Status()
	}
	return http.StatusInternalServerError
}
