package domain

import "fmt"

// ErrorCode tags an AppError with its place in the error taxonomy.
type ErrorCode string

const (
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeRateLimited   ErrorCode = "RATE_LIMITED"
	ErrCodeUpstream      ErrorCode = "UPSTREAM_ERROR"
	ErrCodeSummarization ErrorCode = "SUMMARIZATION_FAILED"
)

// AppError is the typed error surfaced to callers. Fields carries per-field
// messages for validation failures and is empty otherwise.
type AppError struct {
	Code    ErrorCode
	Message string
	Fields  map[string][]string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewValidationError(fields map[string][]string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: "invalid request parameters",
		Fields:  fields,
	}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

func NewRateLimitedError(attempts int) *AppError {
	return &AppError{
		Code:    ErrCodeRateLimited,
		Message: fmt.Sprintf("rate limit retries exhausted after %d attempts", attempts),
	}
}

func NewUpstreamError(status int) *AppError {
	return &AppError{
		Code:    ErrCodeUpstream,
		Message: fmt.Sprintf("fetch failed with status code %d", status),
	}
}

func NewSummarizationError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeSummarization,
		Message: fmt.Sprintf("failed to generate summary: %v", err),
	}
}
