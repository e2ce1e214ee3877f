package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrPollNotFound   = errors.New("poll not found")
	ErrOptionNotFound = errors.New("option not found")
	ErrInternal       = errors.New("internal server error")
)

// Field validation messages returned to clients.
const (
	MsgRequired         = "This field is required."
	MsgBlank            = "This field may not be blank."
	MsgTooLong          = "Ensure this field has no more than 200 characters."
	MsgPubDateInPast    = "Publication date cannot be in the past."
	MsgPubDateFormat    = "Datetime has wrong format. Use RFC 3339."
	MsgOptionNotExist   = "Option does not exist."
	MsgOptionMismatch   = "Option does not belong to the specified poll."
	MsgPollNotExist     = "Poll does not exist."
	MsgPollPathMismatch = "Does not match the poll in the request path."
	MsgPollImmutable    = "Option cannot be moved to another poll."
)

// FieldErrors maps a payload field to a human readable message.
type FieldErrors map[string]string

func (fe FieldErrors) Add(field, msg string) {
	if _, ok := fe[field]; !ok {
		fe[field] = msg
	}
}

func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return &ValidationError{Fields: fe}
}

// ValidationError is a request-scoped rejection of a payload.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: FieldErrors{field: msg}}
}
