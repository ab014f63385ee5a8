package common

import (
	"errors"
	"net/http"
)

// Business logic errors
var (
	// General errors
	ErrForbidden = errors.New("forbidden")

	// Listing errors
	ErrUnknownSource   = errors.New("unknown listing source")
	ErrListingNotFound = errors.New("listing not found")
	ErrNoDailyPick     = errors.New("source has no daily pick")

	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Thermometer errors
	ErrRecordNotFound = errors.New("thermometer record not found")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)

// AppError 요청 경계까지 전달되는 도메인 에러 (메시지 + HTTP 상태)
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NotFound 404 도메인 에러
func NotFound(message string, err error) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: message, Err: err}
}

// BadRequest 400 도메인 에러 (쓰기 전에 검출되는 사전조건 위반)
func BadRequest(message string, err error) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message, Err: err}
}

// Forbidden 403 도메인 에러 (남의 리소스)
func Forbidden(message string, err error) *AppError {
	return &AppError{Status: http.StatusForbidden, Message: message, Err: err}
}

// AsAppError extracts an AppError from an error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
