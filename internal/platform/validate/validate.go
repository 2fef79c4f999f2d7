// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package validate collects input problems for a single service call and folds
them into one VALIDATION_ERROR.

Services build a [Validator], run every rule against the incoming payload and
return [Validator.Err]. Clients therefore see all broken fields of a form at
once instead of fixing them one round-trip at a time.
*/
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
)

// handlePattern accepts channel handles after identity normalization.
var handlePattern = regexp.MustCompile(`^[\p{L}\p{N}._-]+$`)

// ErrInvalidJSON is returned by request decoders when the body is not JSON.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

const failedMessage = "Validation failed"

// Validator accumulates field problems. The zero value is ready to use and
// must not be shared between requests.
type Validator struct {
	errs []apperr.FieldError
}

// # Presence and length

// Required rejects values that are empty after trimming whitespace.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(field, strings.TrimSpace(value) == "", "This field is required")
}

// MaxLen rejects values longer than max runes.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	return v.Custom(field, utf8.RuneCountInString(value) > max, fmt.Sprintf("Maximum %d characters", max))
}

// MinLen rejects values shorter than min runes.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	return v.Custom(field, utf8.RuneCountInString(value) < min, fmt.Sprintf("Minimum %d characters", min))
}

// # Formats

// Email rejects anything net/mail cannot parse as a single address.
func (v *Validator) Email(field, value string) *Validator {
	_, err := mail.ParseAddress(value)
	return v.Custom(field, err != nil, "Must be a valid email address")
}

// Username rejects channel handles containing whitespace or punctuation other
// than '.', '_' and '-'.
func (v *Validator) Username(field, value string) *Validator {
	return v.Custom(field, !handlePattern.MatchString(value), "Must contain only letters, digits, '.', '_' or '-'")
}

// URL rejects values that are not absolute http(s) links. Empty is allowed.
func (v *Validator) URL(field, value string) *Validator {
	if value == "" {
		return v
	}
	link, err := url.Parse(value)
	bad := err != nil || link.Host == "" || (link.Scheme != "http" && link.Scheme != "https")
	return v.Custom(field, bad, "Must be a valid http(s) URL")
}

// Custom records message against field when failed is true. Every other rule
// is expressed through it.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
	}
	return v
}

// # Result

// HasErrors reports whether any rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Err returns nil when every rule passed, otherwise one VALIDATION_ERROR
// carrying all collected fields.
func (v *Validator) Err() error {
	if !v.HasErrors() {
		return nil
	}
	return apperr.ValidationError(failedMessage, v.errs...)
}

// RequiredError builds a one-field VALIDATION_ERROR, used where a whole
// validator would be noise (missing multipart files).
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError(failedMessage, apperr.FieldError{Field: field, Message: message})
}
