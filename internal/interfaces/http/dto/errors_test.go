package dto

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainCodesMapToStatuses(t *testing.T) {
	// Every code the domain layer raises must resolve to a deliberate status
	tests := []struct {
		domain string
		api    string
		status int
	}{
		{"NOT_FOUND", ErrCodeNotFound, http.StatusNotFound},
		{"ALREADY_EXISTS", ErrCodeAlreadyExists, http.StatusConflict},
		{"INVALID_INPUT", ErrCodeInvalidInput, http.StatusBadRequest},
		{"INVALID_STATE", ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{"INVALID_OWNERSHIP", ErrCodeInvalidOwnership, http.StatusUnprocessableEntity},
		{"CONCURRENCY_CONFLICT", ErrCodeConcurrencyConflict, http.StatusConflict},
		{"UNAUTHORIZED", ErrCodeUnauthorized, http.StatusUnauthorized},
		{"FORBIDDEN", ErrCodeForbidden, http.StatusForbidden},
		{"EXPORT_UNAVAILABLE", ErrCodeUnavailable, http.StatusServiceUnavailable},
		{"VALIDATION_ERROR", ErrCodeValidation, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			api := NormalizeErrorCode(tt.domain)
			assert.Equal(t, tt.api, api)
			assert.Equal(t, tt.status, GetHTTPStatus(api))
		})
	}
}

func TestNormalizeErrorCode_PassThrough(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(ErrCodeNotFound))
	assert.Equal(t, "SOMETHING_ELSE", NormalizeErrorCode("SOMETHING_ELSE"))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("SOMETHING_ELSE"))
}

func TestAPICodesAreWellFormed(t *testing.T) {
	for code, ec := range errorCodes {
		assert.True(t, strings.HasPrefix(code, "ERR_"), code)
		assert.Equal(t, strings.ToUpper(code), code)
		assert.GreaterOrEqual(t, ec.status, 400, code)
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	before := time.Now().UTC()
	resp := NewErrorResponseWithRequestID("NOT_FOUND", "Document not found", "req-1")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.False(t, resp.Error.Timestamp.Before(before))

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"data"`)
	assert.Contains(t, string(raw), `"success":false`)
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-2", []ValidationDetail{
		{Field: "iban", Message: "Invalid IBAN"},
	})

	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "iban", resp.Error.Details[0].Field)
}

func TestNewSuccessResponse(t *testing.T) {
	raw, err := json.Marshal(NewSuccessResponse(map[string]string{"doc_number": "F-1"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"doc_number":"F-1"}}`, string(raw))
}
