// Package domainerrors defines coded errors for validation and business
// failures. Infrastructure facts (timeouts, missing upstreams) live in
// pkg/platform/sentinel; services translate those into coded errors at the
// boundary so transport can map them onto HTTP statuses consistently.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code identifies the class of a domain error. The string value is what
// clients see in the error envelope.
type Code string

const (
	CodeBadRequest     Code = "bad_request"
	CodeInvalidInput   Code = "invalid_input"
	CodeValidation     Code = "validation_error"
	CodeNotFound       Code = "not_found"
	CodeUpstreamStatus Code = "upstream_status_error"
	CodeUpstreamFormat Code = "upstream_format_error"
	CodeUpstream       Code = "upstream_unavailable"
	CodeInternal       Code = "internal_error"
)

// Error is a coded domain error with a human-readable description.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a coded error that preserves the underlying cause for
// errors.Is / errors.As chains.
func Wrap(cause error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is an alias for HasCode kept for call-site readability.
func Is(err error, code Code) bool { return HasCode(err, code) }

// CodeOf extracts the code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code onto the HTTP status used by the transport layer.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeInvalidInput, CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUpstreamStatus, CodeUpstreamFormat, CodeUpstream:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
