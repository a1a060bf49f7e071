package ethproofs

import (
	"errors"
	"fmt"
)

// Common errors, matched with errors.Is against the typed errors below.
var (
	// ErrInvalidURL indicates the base URL could not be parsed
	ErrInvalidURL = errors.New("invalid URL")
	// ErrRequest indicates a transport-level failure
	ErrRequest = errors.New("request error")
	// ErrAPI indicates the service answered with a non-2xx status
	ErrAPI = errors.New("ethproofs API error")
	// ErrParse indicates a response did not match the expected type
	ErrParse = errors.New("failed to parse response")

	// ErrMissingField indicates a required request field was not set
	ErrMissingField = errors.New("missing field")
	// ErrInvalidField indicates a request field violates a range or length constraint
	ErrInvalidField = errors.New("invalid field")
	// ErrMalformedRequest indicates related request fields are inconsistent
	ErrMalformedRequest = errors.New("malformed request")
)

// InvalidURLError is returned when a Client is constructed with a base URL
// that cannot be parsed as an absolute URL.
type InvalidURLError struct {
	URL string
	Err error
}

func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid URL %q: %v", e.URL, e.Err)
}

func (e *InvalidURLError) Unwrap() error { return e.Err }

func (e *InvalidURLError) Is(target error) bool { return target == ErrInvalidURL }

// RequestError wraps a failure that happened before a response status was
// available: encoding the body, building the request, or the exchange itself.
type RequestError struct {
	Op       string
	Method   string
	Endpoint string
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request error: %s %s %s: %v", e.Op, e.Method, e.Endpoint, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) Is(target error) bool { return target == ErrRequest }

// APIError represents a non-2xx response. Message holds the raw response
// body verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("ethproofs API error (status: %d): %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool { return target == ErrAPI }

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}

// ParseError is returned when a response body does not decode into the
// expected type, or when a Response is narrowed to the wrong variant.
type ParseError struct {
	Expected string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to parse response as %s", e.Expected)
	}
	return fmt.Sprintf("failed to parse response as %s: %v", e.Expected, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ValidationKind classifies a ValidationError.
type ValidationKind int

const (
	// MissingField means a required field was never set
	MissingField ValidationKind = iota
	// InvalidField means a single field violates its constraint
	InvalidField
	// MalformedRequest means several related fields disagree with each other
	MalformedRequest
)

// String returns the string representation of a ValidationKind
func (k ValidationKind) String() string {
	switch k {
	case MissingField:
		return "missing field"
	case InvalidField:
		return "invalid field"
	case MalformedRequest:
		return "malformed request"
	default:
		return "unknown"
	}
}

// ValidationError is produced by the request builders. It never reaches the
// Client: a request that fails validation is never constructed.
type ValidationError struct {
	Kind   ValidationKind
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case MissingField:
		return fmt.Sprintf("missing field: %s", e.Field)
	case InvalidField:
		return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
	default:
		return fmt.Sprintf("malformed request: %s", e.Reason)
	}
}

func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrMissingField:
		return e.Kind == MissingField
	case ErrInvalidField:
		return e.Kind == InvalidField
	case ErrMalformedRequest:
		return e.Kind == MalformedRequest
	}
	return false
}

func missingField(name string) error {
	return &ValidationError{Kind: MissingField, Field: name}
}

func invalidField(name, reason string) error {
	return &ValidationError{Kind: InvalidField, Field: name, Reason: reason}
}

func malformedRequest(reason string) error {
	return &ValidationError{Kind: MalformedRequest, Reason: reason}
}
