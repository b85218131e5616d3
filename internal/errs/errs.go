package errs

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	// ErrValidation is returned when required fields are missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrAuthentication is returned for missing or invalid credentials.
	ErrAuthentication = errors.New("authentication required")
	// ErrTokenExpired is returned for an expired access token; the client
	// should attempt a refresh-token exchange instead of re-authenticating.
	ErrTokenExpired = errors.New("token has expired")
	// ErrAuthorization is returned when a valid principal lacks permission.
	ErrAuthorization = errors.New("insufficient permissions")
	// ErrNotFound is returned when a referenced record is absent.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned on duplicate unique keys (e.g. email).
	ErrConflict = errors.New("record already exists")
)

// HTTPError, domain hatasını status + stable code ile eşler.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// MapToHTTP maps domain errors to HTTP errors. Beklenmeyen hatalar
// production'da generic mesajla döner, iç detay sızdırılmaz.
func MapToHTTP(err error, production bool) *HTTPError {
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(fiber.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrTokenExpired):
		return NewHTTPError(fiber.StatusUnauthorized, err.Error(), "TOKEN_EXPIRED")
	case errors.Is(err, ErrAuthentication):
		return NewHTTPError(fiber.StatusUnauthorized, err.Error(), "AUTHENTICATION_ERROR")
	case errors.Is(err, ErrAuthorization):
		return NewHTTPError(fiber.StatusForbidden, err.Error(), "AUTHORIZATION_ERROR")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(fiber.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(fiber.StatusConflict, err.Error(), "CONFLICT")
	default:
		msg := "internal server error"
		if !production {
			msg = err.Error()
		}
		return NewHTTPError(fiber.StatusInternalServerError, msg, "INTERNAL_ERROR")
	}
}
