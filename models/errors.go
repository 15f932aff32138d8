package models

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrEmailTaken          = errors.New("user with this email already exists")
)

// AppError carries the HTTP status code an error should surface as. Status()
// follows the 4xx = "fail", 5xx = "error" convention used by every response body.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Status() string {
	if e.Code >= 400 && e.Code < 500 {
		return "fail"
	}
	return "error"
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}
