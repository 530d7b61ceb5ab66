package shared

import "errors"

// ErrorKind classifies an AppError. The kind is assigned exactly once, at
// the boundary that observed the failure, and is never re-derived downstream.
type ErrorKind string

const (
	// KindValidation is a locally detected rule violation; no request was sent.
	KindValidation ErrorKind = "validation"
	// KindServer is a non-2xx response carrying a server-provided message.
	KindServer ErrorKind = "server"
	// KindUnauthorized is an HTTP 401; the session has already been torn down.
	KindUnauthorized ErrorKind = "unauthorized"
	// KindTransport means no response was received at all.
	KindTransport ErrorKind = "transport"
	// KindRequest means the request could not be built or dispatched.
	KindRequest ErrorKind = "request"
)

// AppError is the uniform error shape crossing layer boundaries
type AppError struct {
	Kind       ErrorKind `json:"kind"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	return e.Message
}

// NewValidationError creates a validation-kind AppError
func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// NewServerError creates a server-kind AppError with the response status
func NewServerError(message string, statusCode int) *AppError {
	return &AppError{Kind: KindServer, Message: message, StatusCode: statusCode}
}

// NewUnauthorizedError creates an unauthorized-kind AppError
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message, StatusCode: 401}
}

// NewTransportError creates a transport-kind AppError
func NewTransportError(message string) *AppError {
	return &AppError{Kind: KindTransport, Message: message}
}

// NewRequestError creates a request-kind AppError
func NewRequestError(message string) *AppError {
	return &AppError{Kind: KindRequest, Message: message}
}

// KindOf returns the kind of err, or an empty kind for foreign errors.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsValidation reports whether err is a validation-kind AppError
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// IsUnauthorized reports whether err is an unauthorized-kind AppError
func IsUnauthorized(err error) bool {
	return KindOf(err) == KindUnauthorized
}

// IsTransport reports whether err is a transport-kind AppError
func IsTransport(err error) bool {
	return KindOf(err) == KindTransport
}
