package apperror

import (
	"errors"
	"net/http"

	"github.com/tilalcrm/tilal/internal/domain"
)

// AppError is the HTTP-facing form of an error
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewBadRequest(message string) *AppError {
	return &AppError{Code: "BAD_REQUEST", Message: message, Status: http.StatusBadRequest}
}

func NewUnauthorized(message string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: message, Status: http.StatusUnauthorized}
}

func NewNotFound(message string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: message, Status: http.StatusNotFound}
}

func NewUnavailable(message string) *AppError {
	return &AppError{Code: "UNAVAILABLE", Message: message, Status: http.StatusServiceUnavailable}
}

func NewTooManyRequests(message string) *AppError {
	return &AppError{Code: "TOO_MANY_REQUESTS", Message: message, Status: http.StatusTooManyRequests}
}

func NewInternalServer(message string) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: message, Status: http.StatusInternalServerError}
}

// MapError translates domain errors into HTTP-facing errors. Validation
// failures map to 400, missing records to 404, store outages to a retryable
// 503; anything unrecognized is a 500 with a generic message.
func MapError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return NewBadRequest(validationErr.Error())
	}

	var notFoundErr *domain.NotFoundError
	if errors.As(err, &notFoundErr) {
		return NewNotFound(notFoundErr.Error())
	}

	var persistenceErr *domain.PersistenceError
	if errors.As(err, &persistenceErr) {
		return NewUnavailable("storage temporarily unavailable, please retry")
	}

	if errors.Is(err, domain.ErrInvalidCredentials) {
		return NewUnauthorized(domain.ErrInvalidCredentials.Error())
	}

	return NewInternalServer("an unexpected error occurred")
}
