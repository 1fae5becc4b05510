package errors

import (
	"errors"
	"fmt"
)

// ErrorType is the category of an error. It decides the HTTP status and the
// log level a failed request gets.
type ErrorType string

const (
	// ErrorTypeNotFound: no scene stored for the session
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeValidation: malformed pointer coordinates or query parameters
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeUnauthorized: request reached a scene endpoint without a session
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	// ErrorTypeMethodNotAllowed: wrong HTTP method for the endpoint
	ErrorTypeMethodNotAllowed ErrorType = "method_not_allowed"
	// ErrorTypeRateLimited: client exceeded its request budget
	ErrorTypeRateLimited ErrorType = "rate_limited"
	// ErrorTypeExternal: the scene store (Redis) failed or is unreachable
	ErrorTypeExternal ErrorType = "external"
	// ErrorTypeInternal: encoding, signing or any unclassified failure
	ErrorTypeInternal ErrorType = "internal"
)

// AppError carries a type and a client-safe message around an optional cause.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFoundf(format string, args ...interface{}) error {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

func Validationf(format string, args ...interface{}) error {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}

func WrapValidation(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Err:     err,
	}
}

func Unauthorized(message string) error {
	return &AppError{
		Type:    ErrorTypeUnauthorized,
		Message: message,
	}
}

func MethodNotAllowed(method string) error {
	return &AppError{
		Type:    ErrorTypeMethodNotAllowed,
		Message: fmt.Sprintf("method %s not allowed", method),
	}
}

func RateLimited(client string) error {
	return &AppError{
		Type:    ErrorTypeRateLimited,
		Message: fmt.Sprintf("rate limit exceeded for %s", client),
	}
}

// WrapExternal marks a scene store failure.
func WrapExternal(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: message,
		Err:     err,
	}
}

func WrapInternal(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// GetType returns the type of the first AppError in err's chain, or
// ErrorTypeInternal when there is none.
func GetType(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

func IsNotFound(err error) bool {
	return err != nil && GetType(err) == ErrorTypeNotFound
}

// Retryable reports whether the client may retry the same request later.
func Retryable(err error) bool {
	switch GetType(err) {
	case ErrorTypeExternal, ErrorTypeRateLimited:
		return true
	default:
		return false
	}
}
