package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation is returned when request input is malformed or missing.
	ErrValidation = errors.New("validation failed")
	// ErrEmailInUse is returned when registering an address that already exists.
	ErrEmailInUse = errors.New("email is already in use")
	// ErrUserNotFound is returned when no user matches the given email or id.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserInactive is returned when a deactivated user tries to sign in.
	ErrUserInactive = errors.New("user is not active")
	// ErrUnauthorized is returned for bad, replayed or unknown tokens.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTokenExpired is returned when a token is authentic but past its TTL.
	ErrTokenExpired = errors.New("token has expired")
	// ErrForbidden is returned when the acting role lacks a permission.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidOrExpiredToken is returned by the password reset flows.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired password reset token")
	// ErrResetTokenExpired narrows ErrInvalidOrExpiredToken to the expiry case.
	ErrResetTokenExpired = fmt.Errorf("password reset token has expired: %w", ErrInvalidOrExpiredToken)
	// ErrNotFound is returned when a resource addressed by id does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrConflict is returned when a unique resource attribute is already taken.
	ErrConflict = errors.New("resource already exists")
	// ErrTooManyRequests is returned when a client exceeds its request budget.
	ErrTooManyRequests = errors.New("too many requests, try again later")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped errors are
// matched with errors.Is; anything unknown becomes a 500 without detail.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrEmailInUse):
		return NewHTTPError(http.StatusConflict, ErrEmailInUse.Error(), "EMAIL_IN_USE")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusBadRequest, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUserInactive):
		return NewHTTPError(http.StatusBadRequest, ErrUserInactive.Error(), "USER_INACTIVE")
	case errors.Is(err, ErrTokenExpired):
		return NewHTTPError(http.StatusUnauthorized, ErrTokenExpired.Error(), "TOKEN_EXPIRED")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthorized.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	case errors.Is(err, ErrResetTokenExpired):
		return NewHTTPError(http.StatusBadRequest, ErrResetTokenExpired.Error(), "RESET_TOKEN_EXPIRED")
	case errors.Is(err, ErrInvalidOrExpiredToken):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidOrExpiredToken.Error(), "INVALID_OR_EXPIRED_TOKEN")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNotFound.Error(), "NOT_FOUND")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, ErrConflict.Error(), "CONFLICT")
	case errors.Is(err, ErrTooManyRequests):
		return NewHTTPError(http.StatusTooManyRequests, ErrTooManyRequests.Error(), "RATE_LIMITED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
