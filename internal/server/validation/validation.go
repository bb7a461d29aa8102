// Package validation declares the typed request payloads of the HTTP API and
// their field-level validation rules. Handlers decode into these types and
// reject the request before any service call when Validate fails.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldError describes a single rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors aggregates every rejected field of one request.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// add appends a rejection; used by the request Validate methods.
func (e *FieldErrors) add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// orNil converts an empty list to a nil error.
func (e FieldErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

func checkEmail(errs *FieldErrors, email string) {
	if !emailPattern.MatchString(email) {
		errs.add("email", "must be a valid email address")
	}
}

func checkOneOf(errs *FieldErrors, field, value string, allowed []string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	errs.add(field, fmt.Sprintf("must be one of %s", strings.Join(allowed, ", ")))
}
