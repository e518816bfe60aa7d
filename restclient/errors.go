package restclient

import (
	"errors"
	"fmt"
	nethttp "net/http"
)

// ClientError represents the different failure categories of the client
type ClientError interface {
	error
	Type() ErrorType
}

// ErrorType defines the category of client error
type ErrorType string

const (
	TransportErrorType     ErrorType = "transport"
	HTTPStatusErrorType    ErrorType = "http_status"
	SerializationErrorType ErrorType = "serialization"
	ValidationErrorType    ErrorType = "validation"
	InterceptorErrorType   ErrorType = "interceptor"
)

// TransportError reports that the underlying HTTP call could not complete
// (DNS, connection, timeout). Transport errors are retried up to the
// configured limit before being surfaced.
type TransportError struct {
	Message string
	Err     error
	Timeout bool
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transport error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("transport error: %s", e.Message)
}

func (e *TransportError) Type() ErrorType { return TransportErrorType }

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPStatusError reports a completed response with a non-2xx status that
// was not suppressed. It carries the full response so callers can branch
// on status or inspect the body without re-parsing message strings.
type HTTPStatusError struct {
	StatusCode int
	Headers    nethttp.Header
	Body       []byte
	Method     string
	URL        string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("http status error: %s %s returned %d", e.Method, e.URL, e.StatusCode)
}

func (e *HTTPStatusError) Type() ErrorType { return HTTPStatusErrorType }

// SerializationError reports a codec failure while encoding a request body
// or decoding a response body. Never retried.
type SerializationError struct {
	// Direction is "encode" or "decode"
	Direction string
	Err       error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization error (%s): %v", e.Direction, e.Err)
}

func (e *SerializationError) Type() ErrorType { return SerializationErrorType }

func (e *SerializationError) Unwrap() error { return e.Err }

// ValidationError reports invalid client configuration or call input.
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s (field: %s)", e.Message, e.Field)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Type() ErrorType { return ValidationErrorType }

// InterceptorError reports a failure raised by a request or response
// interceptor. Surfaced immediately, never retried.
type InterceptorError struct {
	Stage string
	Err   error
}

func (e *InterceptorError) Error() string {
	return fmt.Sprintf("interceptor error (stage: %s): %v", e.Stage, e.Err)
}

func (e *InterceptorError) Type() ErrorType { return InterceptorErrorType }

func (e *InterceptorError) Unwrap() error { return e.Err }

// NewTransportError creates a new transport error
func NewTransportError(message string, wrapped error) *TransportError {
	return &TransportError{Message: message, Err: wrapped}
}

// NewTimeoutError creates a transport error flagged as a timeout
func NewTimeoutError(message string, wrapped error) *TransportError {
	return &TransportError{Message: message, Err: wrapped, Timeout: true}
}

// NewHTTPStatusError creates a new HTTP status error from a response
func NewHTTPStatusError(method, url string, resp *Response) *HTTPStatusError {
	return &HTTPStatusError{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
		Method:     method,
		URL:        url,
	}
}

// NewSerializationError creates a new serialization error for the given
// direction ("encode" or "decode")
func NewSerializationError(direction string, wrapped error) *SerializationError {
	return &SerializationError{Direction: direction, Err: wrapped}
}

// NewValidationError creates a new validation error
func NewValidationError(message, field string) *ValidationError {
	return &ValidationError{Message: message, Field: field}
}

// NewInterceptorError creates a new interceptor error
func NewInterceptorError(stage string, wrapped error) *InterceptorError {
	return &InterceptorError{Stage: stage, Err: wrapped}
}

// IsErrorType checks if an error belongs to a specific category
func IsErrorType(err error, errorType ErrorType) bool {
	if err == nil {
		return false
	}
	var clientErr ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type() == errorType
	}
	return false
}

// IsHTTPStatus checks if an error is an HTTP status error with the given code
func IsHTTPStatus(err error, statusCode int) bool {
	var httpErr *HTTPStatusError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == statusCode
	}
	return false
}

// IsSuccessStatus checks if a status code represents success (2xx)
func IsSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
