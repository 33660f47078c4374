// Package apperr defines the error kinds surfaced by the analysis service
// and their HTTP mapping.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies the error category.
type Code string

const (
	CodeValidation Code = "VALIDATION_ERROR"
	CodeRateLimit  Code = "RATE_LIMIT_EXCEEDED"
	CodeDataSource Code = "DATA_SOURCE_ERROR"
	CodeAnalysis   Code = "ANALYSIS_ERROR"
	CodeChart      Code = "CHART_ERROR"
	CodeInternal   Code = "INTERNAL_ERROR"
)

// Error is a categorized error with an HTTP status and optional detail
// lines (e.g. the individual validation checks that failed).
type Error struct {
	Code    Code
	Status  int
	Message string
	Details []string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports a rejected input before any network call is made.
func Validation(message string, details ...string) *Error {
	return &Error{Code: CodeValidation, Status: http.StatusBadRequest, Message: message, Details: details}
}

// RateLimited reports a rejected request due to client throttling.
func RateLimited(message string) *Error {
	return &Error{Code: CodeRateLimit, Status: http.StatusTooManyRequests, Message: message}
}

// DataSource reports an upstream fetch failure or malformed upstream data.
func DataSource(message string, cause error) *Error {
	return &Error{Code: CodeDataSource, Status: http.StatusBadGateway, Message: message, Err: cause}
}

// Analysis reports insufficient data or an internal computation failure.
func Analysis(message string, cause error) *Error {
	return &Error{Code: CodeAnalysis, Status: http.StatusInternalServerError, Message: message, Err: cause}
}

// Chart reports insufficient history for the display window, distinct
// from insufficient history for analysis.
func Chart(message string) *Error {
	return &Error{Code: CodeChart, Status: http.StatusInternalServerError, Message: message}
}

// CodeOf extracts the category from any error, defaulting to internal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// StatusOf extracts the HTTP status from any error, defaulting to 500.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

// DetailsOf extracts the detail lines from any error.
func DetailsOf(err error) []string {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}
