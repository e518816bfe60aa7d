package restclient

import (
	"errors"
	"fmt"
	nethttp "net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTypes(t *testing.T) {
	tests := []struct {
		name     string
		err      ClientError
		expected ErrorType
	}{
		{"transport", NewTransportError("boom", errors.New("refused")), TransportErrorType},
		{"timeout", NewTimeoutError("slow", errors.New("deadline")), TransportErrorType},
		{"http status", NewHTTPStatusError("GET", "http://x/y", &Response{StatusCode: 500}), HTTPStatusErrorType},
		{"serialization", NewSerializationError("decode", errors.New("bad json")), SerializationErrorType},
		{"validation", NewValidationError("empty", "path"), ValidationErrorType},
		{"interceptor", NewInterceptorError("request", errors.New("no signature")), InterceptorErrorType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Type())
			assert.True(t, IsErrorType(tt.err, tt.expected))
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestIsErrorType(t *testing.T) {
	assert.False(t, IsErrorType(nil, TransportErrorType))
	assert.False(t, IsErrorType(errors.New("plain"), TransportErrorType))

	wrapped := fmt.Errorf("call failed: %w", NewTransportError("boom", nil))
	assert.True(t, IsErrorType(wrapped, TransportErrorType))
	assert.False(t, IsErrorType(wrapped, HTTPStatusErrorType))
}

func TestTransportErrorUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewTransportError("request execution failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")

	bare := NewTransportError("no cause", nil)
	assert.Equal(t, "transport error: no cause", bare.Error())
}

func TestTimeoutErrorFlag(t *testing.T) {
	err := NewTimeoutError("request timed out", errors.New("deadline exceeded"))
	assert.True(t, err.Timeout)
	assert.True(t, IsErrorType(err, TransportErrorType))
}

func TestHTTPStatusErrorDetail(t *testing.T) {
	resp := &Response{
		StatusCode: nethttp.StatusUnprocessableEntity,
		Headers:    nethttp.Header{"X-Reason": []string{"invalid color"}},
		Body:       []byte(`{"error":"invalid color"}`),
	}
	err := NewHTTPStatusError(nethttp.MethodPost, "http://svc/widgets", resp)

	assert.Equal(t, nethttp.StatusUnprocessableEntity, err.StatusCode)
	assert.Equal(t, "invalid color", err.Headers.Get("X-Reason"))
	assert.Equal(t, resp.Body, err.Body)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "POST")

	assert.True(t, IsHTTPStatus(err, nethttp.StatusUnprocessableEntity))
	assert.False(t, IsHTTPStatus(err, nethttp.StatusInternalServerError))
	assert.False(t, IsHTTPStatus(errors.New("plain"), nethttp.StatusInternalServerError))
}

func TestSerializationErrorDirection(t *testing.T) {
	cause := errors.New("unexpected token")
	err := NewSerializationError("decode", cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "decode")
}

func TestValidationErrorField(t *testing.T) {
	withField := NewValidationError("cannot be empty", "path")
	assert.Contains(t, withField.Error(), "field: path")

	withoutField := NewValidationError("broken", "")
	assert.NotContains(t, withoutField.Error(), "field:")
}

func TestIsSuccessStatus(t *testing.T) {
	assert.True(t, IsSuccessStatus(200))
	assert.True(t, IsSuccessStatus(204))
	assert.True(t, IsSuccessStatus(299))
	assert.False(t, IsSuccessStatus(199))
	assert.False(t, IsSuccessStatus(300))
	assert.False(t, IsSuccessStatus(404))
	assert.False(t, IsSuccessStatus(500))
}
