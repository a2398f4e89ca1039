package errors

import "fmt"

// Error codes
const (
	CodeGuideError = "GUIDE_ERROR"
	CodeAPIError   = "API_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodeParse      = "PARSE_ERROR"
	CodeCache      = "CACHE_ERROR"
	CodeService    = "SERVICE_ERROR"
)

type GuideError struct {
	Message    string
	Code       string
	StatusCode int
	Context    map[string]any
	Cause      error
}

func (e *GuideError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *GuideError) Unwrap() error {
	return e.Cause
}

func NewGuideError(message, code string, statusCode int, context map[string]any) *GuideError {
	return &GuideError{
		Message:    message,
		Code:       code,
		StatusCode: statusCode,
		Context:    context,
	}
}

func (e *GuideError) WithCause(cause error) *GuideError {
	e.Cause = cause
	return e
}

// APIError reports an unexpected response from an upstream HTTP source.
type APIError struct {
	*GuideError
}

func NewAPIError(message string, statusCode int, context map[string]any) *APIError {
	return &APIError{
		GuideError: &GuideError{
			Message:    message,
			Code:       CodeAPIError,
			StatusCode: statusCode,
			Context:    context,
		},
	}
}

type ValidationError struct {
	*GuideError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		GuideError: &GuideError{
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

// ParseError marks a data file that could not be read or is not a JSON object.
type ParseError struct {
	*GuideError
	File string
}

func NewParseError(message, file string, cause error) *ParseError {
	return &ParseError{
		GuideError: &GuideError{
			Message:    message,
			Code:       CodeParse,
			StatusCode: 422,
			Context: map[string]any{
				"file": file,
			},
			Cause: cause,
		},
		File: file,
	}
}

type CacheError struct {
	*GuideError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		GuideError: &GuideError{
			Message:    message,
			Code:       CodeCache,
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

type ServiceError struct {
	*GuideError
	Service   string
	Operation string
}

func NewServiceError(message, service, operation string, cause error) *ServiceError {
	return &ServiceError{
		GuideError: &GuideError{
			Message:    message,
			Code:       CodeService,
			StatusCode: 500,
			Context: map[string]any{
				"service":   service,
				"operation": operation,
			},
			Cause: cause,
		},
		Service:   service,
		Operation: operation,
	}
}
