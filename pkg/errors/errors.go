package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	CodeNetwork    = "NETWORK_ERROR"
	CodeParse      = "PARSE_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"
	CodeStorage    = "STORAGE_ERROR"
)

// Sentinels for errors.Is checks against catalog failures.
var (
	ErrNetwork  = stderrors.New("catalog network error")
	ErrParse    = stderrors.New("catalog parse error")
	ErrNotFound = stderrors.New("catalog entry not found")
)

type AppError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// CatalogError is returned by the catalog client. Code is one of
// CodeNetwork, CodeParse or CodeNotFound.
type CatalogError struct {
	*AppError
	URL string
}

// Is matches the sentinel that corresponds to the error code.
func (e *CatalogError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Code == CodeNetwork
	case ErrParse:
		return e.Code == CodeParse
	case ErrNotFound:
		return e.Code == CodeNotFound
	}
	return false
}

func newCatalogError(message, code, url string, statusCode int, cause error) *CatalogError {
	return &CatalogError{
		AppError: &AppError{
			Message:    message,
			Code:       code,
			StatusCode: statusCode,
			Context: map[string]any{
				"url": url,
			},
			Cause: cause,
		},
		URL: url,
	}
}

func NewNetworkError(message, url string, statusCode int, cause error) *CatalogError {
	return newCatalogError(message, CodeNetwork, url, statusCode, cause)
}

func NewParseError(message, url string, cause error) *CatalogError {
	return newCatalogError(message, CodeParse, url, 0, cause)
}

func NewNotFoundError(message, url string) *CatalogError {
	return newCatalogError(message, CodeNotFound, url, 404, nil)
}

type ValidationError struct {
	*AppError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeValidation,
			StatusCode: 400,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

type StorageError struct {
	*AppError
	Operation string
	Key       string
}

func NewStorageError(message, operation, key string, cause error) *StorageError {
	return &StorageError{
		AppError: &AppError{
			Message:    message,
			Code:       CodeStorage,
			StatusCode: 500,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

// CodeOf returns the AppError code carried anywhere in err's chain, or
// an empty string.
func CodeOf(err error) string {
	var catalogErr *CatalogError
	if stderrors.As(err, &catalogErr) {
		return catalogErr.Code
	}
	var storageErr *StorageError
	if stderrors.As(err, &storageErr) {
		return storageErr.Code
	}
	var validationErr *ValidationError
	if stderrors.As(err, &validationErr) {
		return validationErr.Code
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
