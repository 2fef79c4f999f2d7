// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr is the single error vocabulary between Vidtube services and the
HTTP edge.

Services return an [*AppError] (or wrap one with fmt.Errorf); the respond
package turns it into the JSON error envelope. Anything else reaching the edge
is treated as INTERNAL_ERROR, so [Ensure] is called at every service boundary.
*/
package apperr

import (
	"errors"
	"net/http"
)

// # Error Codes

const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeRateLimited     = "RATE_LIMITED"
	CodePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	CodeInternal        = "INTERNAL_ERROR"
	CodeUnavailable     = "SERVICE_UNAVAILABLE"
)

const internalMessage = "An unexpected error occurred"

/*
AppError is a client-safe failure.

Message and Details are rendered to the caller. Cause is kept for logs and
[errors.Is] only; it never leaves the server.
*/
type AppError struct {
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

// FieldError names one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

func newError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # 4xx

// InvalidRequest rejects input that is well-formed but not allowed, such as
// subscribing to one's own channel.
func InvalidRequest(message string) *AppError {
	return newError(http.StatusBadRequest, CodeInvalidRequest, message)
}

// ValidationError carries every failed field at once. See the validate package.
func ValidationError(message string, details ...FieldError) *AppError {
	e := newError(http.StatusBadRequest, CodeValidation, message)
	e.Details = details
	return e
}

func Unauthorized(message string) *AppError {
	return newError(http.StatusUnauthorized, CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return newError(http.StatusForbidden, CodeForbidden, message)
}

// NotFound renders as "<resource> not found", e.g. NotFound("Video").
func NotFound(resource string) *AppError {
	return NotFoundMsg(resource + " not found")
}

// NotFoundMsg is NotFound with a caller-chosen message.
func NotFoundMsg(message string) *AppError {
	return newError(http.StatusNotFound, CodeNotFound, message)
}

func Conflict(message string) *AppError {
	return newError(http.StatusConflict, CodeConflict, message)
}

func PayloadTooLarge(message string) *AppError {
	return newError(http.StatusRequestEntityTooLarge, CodePayloadTooLarge, message)
}

// # 5xx

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	e := newError(http.StatusInternalServerError, CodeInternal, internalMessage)
	e.Cause = cause
	return e
}

// ServiceUnavailable reports a dependency that is switched off or down, such
// as media storage without a configured bucket.
func ServiceUnavailable(message string) *AppError {
	return newError(http.StatusServiceUnavailable, CodeUnavailable, message)
}

// # Inspection

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

func IsAppError(err error) bool {
	return As(err) != nil
}

// HasCode reports whether err carries an [*AppError] with code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}

func IsNotFound(err error) bool { return HasCode(err, CodeNotFound) }

func IsConflict(err error) bool { return HasCode(err, CodeConflict) }

// Ensure leaves nil and typed errors alone and turns everything else into
// [Internal].
func Ensure(err error) error {
	if err == nil || IsAppError(err) {
		return err
	}
	return Internal(err)
}
