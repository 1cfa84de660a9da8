package shared

import "errors"

// DomainError is a business rule failure with a stable machine-readable code.
// Two DomainErrors match under errors.Is when their codes are equal, so a
// sentinel refined with With still matches the sentinel.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func (e *DomainError) Error() string { return e.Message }

// Is matches any DomainError carrying the same code
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	return errors.As(target, &other) && other.Code == e.Code
}

// With returns a copy of e with a more specific message
func (e *DomainError) With(message string) *DomainError {
	return &DomainError{Code: e.Code, Message: message}
}

var (
	// ErrNotFound is also returned for rows that belong to another tenant
	ErrNotFound = NewDomainError("NOT_FOUND", "Resource not found")

	ErrAlreadyExists    = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidState     = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInvalidOwnership = NewDomainError("INVALID_OWNERSHIP", "Invalid company ownership")
)
