package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "not found error type", errType: ErrTypeNotFound, expected: "NOT_FOUND"},
		{name: "parsing error type", errType: ErrTypeParsing, expected: "PARSING"},
		{name: "schema error type", errType: ErrTypeSchema, expected: "SCHEMA"},
		{name: "storage error type", errType: ErrTypeStorage, expected: "STORAGE"},
		{name: "validation error type", errType: ErrTypeValidation, expected: "VALIDATION"},
		{name: "config error type", errType: ErrTypeConfig, expected: "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name:        "error without cause",
			appError:    &AppError{Type: ErrTypeSchema, Message: `column "race"`},
			wantMessage: `[SCHEMA] column "race"`,
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeStorage,
				Message: "write chart",
				Cause:   fmt.Errorf("disk full"),
			},
			wantMessage: "[STORAGE] write chart: disk full",
		},
		{
			name:        "error with empty message",
			appError:    &AppError{Type: ErrTypeValidation},
			wantMessage: "[VALIDATION] ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_WithContext(t *testing.T) {
	appError := &AppError{Type: ErrTypeParsing, Message: "bad row"}

	result := appError.WithContext("line", 7).WithContext("path", "diabetic_data.csv")

	assert.Same(t, appError, result)
	require.NotNil(t, result.Context)
	assert.Equal(t, 7, result.Context["line"])
	assert.Equal(t, "diabetic_data.csv", result.Context["path"])
}

func TestSentinelMatching(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		errType  ErrorType
		context  map[string]interface{}
	}{
		{
			name:     "file not found wraps the os cause",
			err:      NewFileNotFoundError("missing.csv", fs.ErrNotExist),
			sentinel: ErrFileNotFound,
			errType:  ErrTypeNotFound,
			context:  map[string]interface{}{"path": "missing.csv"},
		},
		{
			name:     "malformed row carries the line",
			err:      NewMalformedRowError(3, errors.New("wrong number of fields")),
			sentinel: ErrMalformedRow,
			errType:  ErrTypeParsing,
			context:  map[string]interface{}{"line": 3},
		},
		{
			name:     "malformed row without cause",
			err:      NewMalformedRowError(12, nil),
			sentinel: ErrMalformedRow,
			errType:  ErrTypeParsing,
			context:  map[string]interface{}{"line": 12},
		},
		{
			name:     "column not found names the column",
			err:      NewColumnNotFoundError("payer_code"),
			sentinel: ErrColumnNotFound,
			errType:  ErrTypeSchema,
			context:  map[string]interface{}{"column": "payer_code"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("load dataset: %w", tt.err)

			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.Equal(t, tt.errType, TypeOf(wrapped))
			assert.Equal(t, tt.context, ContextOf(wrapped))
		})
	}
}

func TestFileNotFoundKeepsCause(t *testing.T) {
	err := NewFileNotFoundError("missing.csv", fs.ErrNotExist)

	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "missing.csv")
	assert.Contains(t, err.Error(), "NOT_FOUND")
}

func TestColumnNotFoundMessage(t *testing.T) {
	err := NewColumnNotFoundError("weight")
	assert.Equal(t, `[SCHEMA] column "weight": column not found`, err.Error())
}

func TestTypeOf_PlainError(t *testing.T) {
	assert.Equal(t, ErrorType(""), TypeOf(errors.New("plain")))
	assert.Nil(t, ContextOf(errors.New("plain")))
}

func TestHelperConstructors(t *testing.T) {
	cause := errors.New("root cause")

	tests := []struct {
		name    string
		err     *AppError
		errType ErrorType
		cause   error
	}{
		{name: "parsing", err: NewParsingError("empty file", nil), errType: ErrTypeParsing},
		{name: "storage", err: NewStorageError("write workbook", cause), errType: ErrTypeStorage, cause: cause},
		{name: "validation", err: NewAppValidationError("chart spec", cause), errType: ErrTypeValidation, cause: cause},
		{name: "config", err: NewConfigError("load config", cause), errType: ErrTypeConfig, cause: cause},
		{name: "not found", err: NewNotFoundError("sheet"), errType: ErrTypeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.errType, tt.err.Type)
			assert.NotNil(t, tt.err.Context)
			if tt.cause != nil {
				assert.ErrorIs(t, tt.err, tt.cause)
			} else {
				assert.Nil(t, tt.err.Unwrap())
			}
		})
	}
}
