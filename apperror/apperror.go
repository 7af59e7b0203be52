// Package apperror defines a centralized system for application-specific errors.
// Every layer of the client (gateway, token store, validation, app flows) reports
// failures as an *AppError so callers can branch on the error category instead of
// matching strings. The same taxonomy is used by the mock backend to pick HTTP statuses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType defines the category of an application error.
type ErrorType int

const (
	// UnknownError is for unspecified errors
	UnknownError ErrorType = iota
	// TransportError represents a network-level failure (connection refused, timeout, ...)
	TransportError
	// DecodeError represents a response body that could not be decoded
	DecodeError
	// AuthError represents an authentication error (missing, expired or invalid token, bad credentials)
	AuthError
	// UnauthorizedError represents an authorization error (valid token, insufficient permissions)
	UnauthorizedError
	// NotFoundError represents a resource not found error
	NotFoundError
	// ValidationError represents an input validation error caught before a request is issued
	ValidationError
	// BadRequestError represents a request the server rejected as malformed
	BadRequestError
	// ConflictError represents a conflict, e.g., account already exists
	ConflictError
	// StorageError represents a failure of the durable token store
	StorageError
	// ConfigError represents an error related to application configuration
	ConfigError
	// InternalError represents a generic internal or server-side error
	InternalError
)

// String returns a short name for the error type, used in logs.
func (t ErrorType) String() string {
	switch t {
	case TransportError:
		return "transport"
	case DecodeError:
		return "decode"
	case AuthError:
		return "auth"
	case UnauthorizedError:
		return "unauthorized"
	case NotFoundError:
		return "not_found"
	case ValidationError:
		return "validation"
	case BadRequestError:
		return "bad_request"
	case ConflictError:
		return "conflict"
	case StorageError:
		return "storage"
	case ConfigError:
		return "config"
	case InternalError:
		return "internal"
	default:
		return "unknown"
	}
}

// AppError is a custom error type for the application.
// It allows wrapping an underlying error (`Err`) for more detailed debugging.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error // Underlying error
}

// Error returns the string representation of the error, satisfying the `error` interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error so `errors.Is` and `errors.As` can walk the chain.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type
func (e *AppError) StatusCode() int {
	switch e.Type {
	case AuthError:
		return http.StatusUnauthorized
	case UnauthorizedError:
		// 401 is "who are you?", 403 is "I know who you are and the answer is no".
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError, BadRequestError:
		return http.StatusBadRequest
	case ConflictError:
		return http.StatusConflict
	case TransportError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError. This is the generic constructor; the typed
// constructors below are preferred when the type is known statically.
func NewAppError(errType ErrorType, message string, underlyingError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlyingError,
	}
}

// NewTransportError creates a new TransportError
func NewTransportError(message string, underlyingError error) *AppError {
	return NewAppError(TransportError, message, underlyingError)
}

// NewDecodeError creates a new DecodeError
func NewDecodeError(message string, underlyingError error) *AppError {
	return NewAppError(DecodeError, message, underlyingError)
}

// NewAuthError creates a new AuthError (for authentication issues)
func NewAuthError(message string, underlyingError error) *AppError {
	return NewAppError(AuthError, message, underlyingError)
}

// NewUnauthorizedError creates a new UnauthorizedError (for authorization issues)
func NewUnauthorizedError(message string, underlyingError error) *AppError {
	return NewAppError(UnauthorizedError, message, underlyingError)
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(message string, underlyingError error) *AppError {
	return NewAppError(NotFoundError, message, underlyingError)
}

// NewValidationError creates a new ValidationError
func NewValidationError(message string, underlyingError error) *AppError {
	return NewAppError(ValidationError, message, underlyingError)
}

// NewBadRequestError creates a new BadRequestError
func NewBadRequestError(message string, underlyingError error) *AppError {
	return NewAppError(BadRequestError, message, underlyingError)
}

// NewConflictError creates a new ConflictError
func NewConflictError(message string, underlyingError error) *AppError {
	return NewAppError(ConflictError, message, underlyingError)
}

// NewStorageError creates a new StorageError
func NewStorageError(message string, underlyingError error) *AppError {
	return NewAppError(StorageError, message, underlyingError)
}

// NewConfigError creates a new ConfigError
func NewConfigError(message string, underlyingError error) *AppError {
	return NewAppError(ConfigError, message, underlyingError)
}

// NewInternalError creates a new InternalError
func NewInternalError(message string, underlyingError error) *AppError {
	return NewAppError(InternalError, message, underlyingError)
}

// FromStatus maps a non-2xx HTTP response to an AppError. `message` is usually the
// server's error payload, `op` names the gateway operation for context.
func FromStatus(status int, op string, message string) *AppError {
	msg := fmt.Sprintf("%s: server responded %d", op, status)
	if message != "" {
		msg = fmt.Sprintf("%s: %s", msg, message)
	}
	switch {
	case status == http.StatusUnauthorized:
		return NewAuthError(msg, nil)
	case status == http.StatusForbidden:
		return NewUnauthorizedError(msg, nil)
	case status == http.StatusNotFound:
		return NewNotFoundError(msg, nil)
	case status == http.StatusConflict:
		return NewConflictError(msg, nil)
	case status >= 400 && status < 500:
		return NewBadRequestError(msg, nil)
	default:
		return NewInternalError(msg, nil)
	}
}

// ErrorResponse represents a generic error response payload for API clients.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToResponse converts an AppError to an ErrorResponse suitable for API responses.
// Only the user-facing `Message` is included, not the underlying `Err` details.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

// FromError attempts to find an *AppError in err's chain.
// It returns the *AppError and true if successful, otherwise nil and false.
func FromError(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// TypeOf returns the ErrorType of the first *AppError in err's chain, or UnknownError.
func TypeOf(err error) ErrorType {
	if ae, ok := FromError(err); ok {
		return ae.Type
	}
	return UnknownError
}

// IsTransportError checks if an error is a TransportError
func IsTransportError(err error) bool {
	return TypeOf(err) == TransportError
}

// IsNotFound checks if an error is a NotFound error
func IsNotFound(err error) bool {
	return TypeOf(err) == NotFoundError
}

// IsAuthError checks if an error is an AuthError (authentication problem)
func IsAuthError(err error) bool {
	return TypeOf(err) == AuthError
}

// IsUnauthorizedError checks if an error is an UnauthorizedError (authorization problem)
func IsUnauthorizedError(err error) bool {
	return TypeOf(err) == UnauthorizedError
}

// IsValidationError checks if an error is a Validation error
func IsValidationError(err error) bool {
	return TypeOf(err) == ValidationError
}

// IsConflictError checks if an error is a Conflict error
func IsConflictError(err error) bool {
	return TypeOf(err) == ConflictError
}
