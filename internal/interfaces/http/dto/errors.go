package dto

import "net/http"

// API error codes. Domain errors carry short codes (NOT_FOUND) that are
// normalized to these before they reach a response.
const (
	ErrCodeInternal    = "ERR_INTERNAL"
	ErrCodeUnavailable = "ERR_UNAVAILABLE"

	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"

	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"

	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeForbidden    = "ERR_FORBIDDEN"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"

	// ErrCodeNotFound also covers rows that exist in another tenant
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"

	ErrCodeInvalidState     = "ERR_INVALID_STATE"
	ErrCodeInvalidOwnership = "ERR_INVALID_OWNERSHIP"
)

type errorCode struct {
	status int
	domain string // code raised by the domain layer, if any
}

var errorCodes = map[string]errorCode{
	ErrCodeInternal:    {http.StatusInternalServerError, "INTERNAL_ERROR"},
	ErrCodeUnavailable: {http.StatusServiceUnavailable, "EXPORT_UNAVAILABLE"},

	ErrCodeValidation:   {http.StatusBadRequest, "VALIDATION_ERROR"},
	ErrCodeBadRequest:   {http.StatusBadRequest, "BAD_REQUEST"},
	ErrCodeInvalidInput: {http.StatusBadRequest, "INVALID_INPUT"},
	ErrCodeInvalidJSON:  {http.StatusBadRequest, ""},

	ErrCodeRequestTooLarge: {http.StatusRequestEntityTooLarge, ""},

	ErrCodeUnauthorized: {http.StatusUnauthorized, "UNAUTHORIZED"},
	ErrCodeForbidden:    {http.StatusForbidden, "FORBIDDEN"},
	ErrCodeTokenExpired: {http.StatusUnauthorized, ""},
	ErrCodeTokenInvalid: {http.StatusUnauthorized, ""},

	ErrCodeNotFound:            {http.StatusNotFound, "NOT_FOUND"},
	ErrCodeAlreadyExists:       {http.StatusConflict, "ALREADY_EXISTS"},
	ErrCodeConcurrencyConflict: {http.StatusConflict, "CONCURRENCY_CONFLICT"},

	ErrCodeInvalidState:     {http.StatusUnprocessableEntity, "INVALID_STATE"},
	ErrCodeInvalidOwnership: {http.StatusUnprocessableEntity, "INVALID_OWNERSHIP"},
}

var domainCodes = func() map[string]string {
	m := make(map[string]string, len(errorCodes))
	for api, ec := range errorCodes {
		if ec.domain != "" {
			m[ec.domain] = api
		}
	}
	return m
}()

// GetHTTPStatus returns the status for an API error code, 500 when unknown
func GetHTTPStatus(code string) int {
	if ec, ok := errorCodes[code]; ok {
		return ec.status
	}
	return http.StatusInternalServerError
}

// NormalizeErrorCode converts a domain error code to its API code.
// API codes and unknown codes are returned unchanged.
func NormalizeErrorCode(code string) string {
	if api, ok := domainCodes[code]; ok {
		return api
	}
	return code
}
