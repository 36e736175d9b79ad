package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", fmt.Errorf("%w: email is required", ErrValidation), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"email in use", ErrEmailInUse, http.StatusConflict, "EMAIL_IN_USE"},
		{"user not found", ErrUserNotFound, http.StatusBadRequest, "USER_NOT_FOUND"},
		{"invalid credentials", ErrInvalidCredentials, http.StatusBadRequest, "INVALID_CREDENTIALS"},
		{"inactive", ErrUserInactive, http.StatusBadRequest, "USER_INACTIVE"},
		{"unauthorized wrapped", fmt.Errorf("refresh: %w", ErrUnauthorized), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"token expired", ErrTokenExpired, http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"reset token expired", ErrResetTokenExpired, http.StatusBadRequest, "RESET_TOKEN_EXPIRED"},
		{"reset token invalid", ErrInvalidOrExpiredToken, http.StatusBadRequest, "INVALID_OR_EXPIRED_TOKEN"},
		{"not found", ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"conflict", ErrConflict, http.StatusConflict, "CONFLICT"},
		{"rate limited", ErrTooManyRequests, http.StatusTooManyRequests, "RATE_LIMITED"},
		{"unknown", fmt.Errorf("dial tcp: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.NotEmpty(t, got.ToErrorResponse().Message)
		})
	}
}

func TestInternalErrorHidesDetail(t *testing.T) {
	got := MapErrorToHTTP(fmt.Errorf("select * from users: password column"))
	assert.Equal(t, "internal server error", got.Message)
}

func TestResetTokenExpiredMatchesInvalidOrExpired(t *testing.T) {
	assert.ErrorIs(t, ErrResetTokenExpired, ErrInvalidOrExpiredToken)
}
