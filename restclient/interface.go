package restclient

import (
	"context"
	nethttp "net/http"
	"time"
)

// Client is the verb-level surface concrete service clients build on.
// Verb helpers return the decoded response body; Get returns (nil, nil)
// when the response status is 404 or 410 (absent resource).
type Client interface {
	Get(ctx context.Context, path string, opts ...CallOption) (any, error)
	Post(ctx context.Context, path string, body any, opts ...CallOption) (any, error)
	Put(ctx context.Context, path string, body any, opts ...CallOption) (any, error)
	Patch(ctx context.Context, path string, body any, opts ...CallOption) (any, error)
	Delete(ctx context.Context, path string, opts ...CallOption) (any, error)

	// Do is the shared verb primitive behind the helpers.
	Do(ctx context.Context, method, path string, body any, opts ...CallOption) (any, error)

	// Req sends an already-built request through the interceptor, retry,
	// and logging machinery and returns the raw response for any completed
	// HTTP exchange, regardless of status. It is the designated extension
	// point: wrappers inject per-request authentication (signing, custom
	// headers) here without touching the verb helpers.
	Req(ctx context.Context, req *nethttp.Request) (*Response, error)
}

// Response represents a completed HTTP exchange.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    nethttp.Header
	Stats      Stats
}

// Stats contains request execution statistics.
type Stats struct {
	ElapsedTime time.Duration
	Attempts    int
	CallCount   int64
}

// RequestInterceptor is called before sending each request attempt.
type RequestInterceptor func(ctx context.Context, req *nethttp.Request) error

// ResponseInterceptor is called after receiving a response.
type ResponseInterceptor func(ctx context.Context, req *nethttp.Request, resp *nethttp.Response) error

// Config holds the client configuration. It is fixed once the client is
// built; per-call options override headers and codecs for a single call.
type Config struct {
	// BaseURL is the service root every call path is resolved against.
	BaseURL string `validate:"required,url"`
	// Timeout bounds each attempt, enforced by the underlying transport.
	Timeout time.Duration `validate:"gte=0"`
	// MaxRetries is the number of additional attempts after the first.
	MaxRetries int `validate:"gte=0"`
	// RetryDelay is the base backoff delay between attempts.
	RetryDelay time.Duration `validate:"gte=0"`
	// ContentType is sent with serialized request bodies.
	ContentType string
	// DefaultHeaders are sent with every request unless overridden per call.
	DefaultHeaders map[string]string
	// Serializer is the instance default for request bodies (nil = JSON).
	Serializer Serializer
	// Deserializer is the instance default for response bodies (nil = JSON).
	Deserializer Deserializer

	RequestInterceptors  []RequestInterceptor
	ResponseInterceptors []ResponseInterceptor

	// LogPayloads enables logging of headers and body payloads.
	LogPayloads bool
	// MaxPayloadLogBytes caps the body bytes logged when LogPayloads is set.
	MaxPayloadLogBytes int
	// TraceIDHeader is the header used for trace ID propagation.
	TraceIDHeader string
	// EnableW3CTrace turns on traceparent/tracestate propagation.
	EnableW3CTrace bool
}

const (
	// DefaultTimeout is the default per-attempt timeout
	DefaultTimeout = 10 * time.Second

	// DefaultMaxRetries is the default number of retries for failed requests
	DefaultMaxRetries = 0

	// DefaultRetryDelay is the default base delay between retries
	DefaultRetryDelay = 1 * time.Second

	// DefaultContentType is sent with serialized request bodies
	DefaultContentType = "application/json"

	// DefaultMaxPayloadLogBytes caps logged payload sizes
	DefaultMaxPayloadLogBytes = 2048
)
