package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// Type classifies an error for transport-agnostic handling.
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeBusiness      Type = "BUSINESS"
	TypeExternal      Type = "EXTERNAL"
	TypeInternal      Type = "INTERNAL"
)

// Code is a registered error definition. Codes are namespaced by the
// registry that created them, e.g. "RESUME_NOT_FOUND".
type Code struct {
	Code       string
	Type       Type
	HTTPStatus int
	Message    string
}

// Registry namespaces error codes for a single domain.
type Registry struct {
	prefix string
}

// NewRegistry creates a registry whose codes are prefixed with the given
// domain name.
func NewRegistry(prefix string) *Registry {
	return &Registry{prefix: prefix}
}

// Register defines a new error code in this registry.
func (r *Registry) Register(code string, t Type, httpStatus int, message string) Code {
	return Code{
		Code:       fmt.Sprintf("%s_%s", r.prefix, code),
		Type:       t,
		HTTPStatus: httpStatus,
		Message:    message,
	}
}

// New creates an error for a registered code.
func (r *Registry) New(c Code) *Error {
	return &Error{
		Code:       c.Code,
		Type:       c.Type,
		Message:    c.Message,
		HTTPStatus: c.HTTPStatus,
	}
}

// NewWithCause creates an error for a registered code wrapping an underlying
// cause.
func (r *Registry) NewWithCause(c Code, cause error) *Error {
	e := r.New(c)
	e.cause = cause
	return e
}

// Error is a structured application error carrying an HTTP mapping.
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetail attaches a single key/value pair of diagnostic context.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails attaches multiple diagnostic values at once.
func (e *Error) WithDetails(details map[string]any) *Error {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// ToHTTPResponse returns the JSON body for this error.
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"error":   e.Message,
		"type":    e.Type,
		"code":    e.Code,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// Wrap converts an arbitrary error into an *Error of the given type.
func Wrap(err error, message string, t Type) *Error {
	status := http.StatusInternalServerError
	switch t {
	case TypeValidation:
		status = http.StatusBadRequest
	case TypeNotFound:
		status = http.StatusNotFound
	case TypeConflict:
		status = http.StatusConflict
	case TypeAuthorization:
		status = http.StatusForbidden
	case TypeExternal:
		status = http.StatusBadGateway
	}
	return &Error{
		Code:       fmt.Sprintf("%s_ERROR", t),
		Type:       t,
		Message:    message,
		HTTPStatus: status,
		cause:      err,
	}
}

// IsCode reports whether err is (or wraps) an *Error with the given code.
func IsCode(err error, c Code) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == c.Code
}
