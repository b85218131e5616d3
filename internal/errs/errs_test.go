package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapToHTTP_StatusAndCode(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", ErrValidation, 400, "VALIDATION_ERROR"},
		{"authentication", ErrAuthentication, 401, "AUTHENTICATION_ERROR"},
		{"token expired", ErrTokenExpired, 401, "TOKEN_EXPIRED"},
		{"authorization", ErrAuthorization, 403, "AUTHORIZATION_ERROR"},
		{"not found", ErrNotFound, 404, "NOT_FOUND"},
		{"conflict", ErrConflict, 409, "CONFLICT"},
		{"unknown", errors.New("pq: connection refused"), 500, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			httpErr := MapToHTTP(tc.err, false)
			assert.Equal(t, tc.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tc.wantCode, httpErr.Code)
		})
	}
}

func TestMapToHTTP_WrappedErrorsKeepTheirCode(t *testing.T) {
	wrapped := fmt.Errorf("%w: email already registered", ErrConflict)

	httpErr := MapToHTTP(wrapped, false)

	assert.Equal(t, 409, httpErr.StatusCode)
	assert.Equal(t, "CONFLICT", httpErr.Code)
	assert.Contains(t, httpErr.Message, "email already registered")
}

func TestMapToHTTP_ProductionHidesInternalDetails(t *testing.T) {
	dbErr := errors.New("pq: password authentication failed for user \"app\"")

	httpErr := MapToHTTP(dbErr, true)

	assert.Equal(t, 500, httpErr.StatusCode)
	assert.Equal(t, "internal server error", httpErr.Message)

	// development'ta gerçek mesaj görünür
	devErr := MapToHTTP(dbErr, false)
	assert.Contains(t, devErr.Message, "pq:")
}
