package errx

import (
	"fmt"
	"net/http"
)

// Type classifies an error for transport mapping and retry decisions.
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeBusiness      Type = "BUSINESS"
	TypeInternal      Type = "INTERNAL"
)

// Code identifies a registered error within a registry.
type Code struct {
	registry string
	code     string
	errType  Type
	status   int
	message  string
}

// String returns the fully qualified code, e.g. "INGEST.LENGTH_MISMATCH".
func (c Code) String() string {
	return c.registry + "." + c.code
}

// Registry groups the error codes of one domain under a common prefix.
type Registry struct {
	prefix string
}

// NewRegistry creates a registry for the given domain prefix.
func NewRegistry(prefix string) *Registry {
	return &Registry{prefix: prefix}
}

// Register declares an error code with its type, HTTP status and default message.
func (r *Registry) Register(code string, t Type, httpStatus int, message string) Code {
	return Code{
		registry: r.prefix,
		code:     code,
		errType:  t,
		status:   httpStatus,
		message:  message,
	}
}

// New creates a fresh error for a registered code.
func (r *Registry) New(code Code) *Error {
	return &Error{
		Code:       code.String(),
		Type:       code.errType,
		HTTPStatus: code.status,
		Message:    code.message,
	}
}

// NewWithCause creates an error for a registered code wrapping an underlying cause.
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	e := r.New(code)
	e.Cause = cause
	return e
}

// Error is the structured error carried across layer boundaries.
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	HTTPStatus int            `json:"-"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail attaches a single key/value detail and returns the error for chaining.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = fmt.Sprintf("%v", value)
	return e
}

// WithDetails merges a detail map into the error.
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// ToHTTPResponse renders the wire representation used by the global error handler.
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"code":    e.Code,
		"type":    e.Type,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// Wrap converts an arbitrary error into an *Error with the given message and type.
// If err already is an *Error it is returned unchanged so codes survive layering.
func Wrap(err error, message string, t Type) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
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
	case TypeBusiness:
		status = http.StatusUnprocessableEntity
	}
	return &Error{
		Code:       string(t),
		Type:       t,
		HTTPStatus: status,
		Message:    message,
		Cause:      err,
	}
}
