package restclient

import (
	nethttp "net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gaborage/go-restkit/logger"
	"github.com/gaborage/go-restkit/trace"
)

var validate = validator.New()

// Builder provides a fluent interface for configuring the REST client
type Builder struct {
	config     *Config
	logger     logger.Logger
	httpClient *nethttp.Client
	transport  nethttp.RoundTripper
}

// NewBuilder creates a client builder for the given service base URL.
// A nil logger disables logging.
func NewBuilder(baseURL string, log logger.Logger) *Builder {
	return &Builder{
		config: &Config{
			BaseURL:            baseURL,
			Timeout:            DefaultTimeout,
			MaxRetries:         DefaultMaxRetries,
			RetryDelay:         DefaultRetryDelay,
			ContentType:        DefaultContentType,
			DefaultHeaders:     make(map[string]string),
			MaxPayloadLogBytes: DefaultMaxPayloadLogBytes,
			TraceIDHeader:      trace.HeaderXRequestID,
		},
		logger: log,
	}
}

// WithTimeout sets the per-attempt request timeout
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	b.config.Timeout = timeout
	return b
}

// WithRetries sets the retry configuration
func (b *Builder) WithRetries(maxRetries int, retryDelay time.Duration) *Builder {
	b.config.MaxRetries = maxRetries
	b.config.RetryDelay = retryDelay
	return b
}

// WithContentType sets the content type sent with serialized request bodies
func (b *Builder) WithContentType(contentType string) *Builder {
	if contentType != "" {
		b.config.ContentType = contentType
	}
	return b
}

// WithDefaultHeader adds a header sent with all requests
func (b *Builder) WithDefaultHeader(key, value string) *Builder {
	b.config.DefaultHeaders[key] = value
	return b
}

// WithSerializer sets the instance default request body serializer.
// Pass Raw for bodies that are already encoded.
func (b *Builder) WithSerializer(s Serializer) *Builder {
	b.config.Serializer = s
	return b
}

// WithDeserializer sets the instance default response body deserializer.
// Pass Raw to receive raw response bytes.
func (b *Builder) WithDeserializer(d Deserializer) *Builder {
	b.config.Deserializer = d
	return b
}

// WithBasicAuth installs a request interceptor that sets basic
// authentication credentials on every request
func (b *Builder) WithBasicAuth(username, password string) *Builder {
	return b.WithRequestInterceptor(BasicAuthInterceptor(username, password))
}

// WithRequestInterceptor adds a request interceptor
func (b *Builder) WithRequestInterceptor(interceptor RequestInterceptor) *Builder {
	b.config.RequestInterceptors = append(b.config.RequestInterceptors, interceptor)
	return b
}

// WithResponseInterceptor adds a response interceptor
func (b *Builder) WithResponseInterceptor(interceptor ResponseInterceptor) *Builder {
	b.config.ResponseInterceptors = append(b.config.ResponseInterceptors, interceptor)
	return b
}

// WithPayloadLogging enables header/body logging, capped at maxBytes per
// payload (0 keeps the default cap)
func (b *Builder) WithPayloadLogging(maxBytes int) *Builder {
	b.config.LogPayloads = true
	if maxBytes > 0 {
		b.config.MaxPayloadLogBytes = maxBytes
	}
	return b
}

// WithTraceIDHeader overrides the header used for trace ID propagation.
// An empty value keeps the default.
func (b *Builder) WithTraceIDHeader(header string) *Builder {
	if header != "" {
		b.config.TraceIDHeader = header
	}
	return b
}

// WithW3CTrace enables traceparent/tracestate propagation
func (b *Builder) WithW3CTrace() *Builder {
	b.config.EnableW3CTrace = true
	return b
}

// WithHTTPClient supplies a pre-configured *http.Client. A zero timeout
// on the supplied client is replaced with the builder's timeout.
func (b *Builder) WithHTTPClient(hc *nethttp.Client) *Builder {
	b.httpClient = hc
	return b
}

// WithTransport supplies a custom transport for the default HTTP client
func (b *Builder) WithTransport(rt nethttp.RoundTripper) *Builder {
	b.transport = rt
	return b
}

// Build validates the configuration and creates the client.
func (b *Builder) Build() (Client, error) {
	if err := validate.Struct(b.config); err != nil {
		return nil, NewValidationError("invalid client configuration: "+err.Error(), "config")
	}

	log := b.logger
	if log == nil {
		log = logger.NewNoop()
	}

	hc := b.httpClient
	if hc == nil {
		hc = &nethttp.Client{Timeout: b.config.Timeout}
	}
	if hc.Timeout == 0 {
		hc.Timeout = b.config.Timeout
	}
	if b.transport != nil {
		hc.Transport = b.transport
	}

	// Trace propagation runs before user interceptors so auth hooks can
	// see the correlation headers.
	reqInterceptors := []RequestInterceptor{TraceIDInterceptor(b.config.TraceIDHeader)}
	if b.config.EnableW3CTrace {
		reqInterceptors = append(reqInterceptors, W3CTraceInterceptor())
	}
	reqInterceptors = append(reqInterceptors, b.config.RequestInterceptors...)

	return &client{
		httpClient:           hc,
		logger:               log,
		config:               b.config,
		requestInterceptors:  reqInterceptors,
		responseInterceptors: b.config.ResponseInterceptors,
	}, nil
}

// New creates a client with default configuration for the given base URL.
// A nil logger disables logging.
func New(baseURL string, log logger.Logger) (Client, error) {
	return NewBuilder(baseURL, log).Build()
}
