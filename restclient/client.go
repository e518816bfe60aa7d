package restclient

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"errors"
	"io"
	"math/big"
	"net"
	nethttp "net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gaborage/go-restkit/logger"
)

const headerContentType = "Content-Type"

// client implements the Client interface
type client struct {
	httpClient           *nethttp.Client
	logger               logger.Logger
	config               *Config
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
	callCount            int64
}

var _ Client = (*client)(nil)

// Get performs a GET request. Status 404 and 410 yield (nil, nil).
func (c *client) Get(ctx context.Context, path string, opts ...CallOption) (any, error) {
	return c.Do(ctx, nethttp.MethodGet, path, nil, opts...)
}

// Post performs a POST request with a serialized body
func (c *client) Post(ctx context.Context, path string, body any, opts ...CallOption) (any, error) {
	return c.Do(ctx, nethttp.MethodPost, path, body, opts...)
}

// Put performs a PUT request with a serialized body
func (c *client) Put(ctx context.Context, path string, body any, opts ...CallOption) (any, error) {
	return c.Do(ctx, nethttp.MethodPut, path, body, opts...)
}

// Patch performs a PATCH request with a serialized body
func (c *client) Patch(ctx context.Context, path string, body any, opts ...CallOption) (any, error) {
	return c.Do(ctx, nethttp.MethodPatch, path, body, opts...)
}

// Delete performs a DELETE request
func (c *client) Delete(ctx context.Context, path string, opts ...CallOption) (any, error) {
	return c.Do(ctx, nethttp.MethodDelete, path, nil, opts...)
}

// Do turns a verb call into a full HTTP exchange and a decoded result.
func (c *client) Do(ctx context.Context, method, path string, body any, opts ...CallOption) (any, error) {
	call := newCallOptions(opts)

	target, err := c.resolveURL(path, call.query)
	if err != nil {
		return nil, err
	}

	payload, contentType, err := c.encodeBody(body, call)
	if err != nil {
		return nil, err
	}

	httpReq, err := c.buildRequest(ctx, method, target, payload, contentType, call)
	if err != nil {
		return nil, err
	}

	resp, err := c.Req(ctx, httpReq)
	if err != nil {
		return nil, err
	}

	if IsSuccessStatus(resp.StatusCode) {
		return c.decodeBody(resp.Body, call)
	}

	// Missing resources are a regular outcome for lookups, not a failure.
	if method == nethttp.MethodGet &&
		(resp.StatusCode == nethttp.StatusNotFound || resp.StatusCode == nethttp.StatusGone) {
		return nil, nil
	}

	return nil, NewHTTPStatusError(method, target, resp)
}

// Req sends a prepared request through the interceptor, retry, and logging
// machinery. Any completed HTTP exchange returns a Response regardless of
// status; errors are transport or interceptor failures. Retryable outcomes
// (transport errors, 5xx) are re-attempted up to MaxRetries times with the
// request rebuilt on each attempt.
func (c *client) Req(ctx context.Context, req *nethttp.Request) (*Response, error) {
	if req == nil {
		return nil, NewValidationError("request cannot be nil", "request")
	}

	start := time.Now()
	callCount := atomic.AddInt64(&c.callCount, 1)
	maxRetries := c.config.MaxRetries

	for attempt := 0; ; attempt++ {
		httpReq, err := c.prepareAttempt(ctx, req)
		if err != nil {
			return nil, err
		}

		c.logRequest(httpReq, attempt)

		httpResp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if attempt < maxRetries {
				time.Sleep(c.backoffDelay(attempt))
				continue
			}
			if c.isTimeout(err) {
				return nil, NewTimeoutError("request timed out", err)
			}
			return nil, NewTransportError("request execution failed", err)
		}

		resp, err := c.readResponse(ctx, start, callCount, attempt, httpReq, httpResp)
		if err != nil {
			if IsErrorType(err, TransportErrorType) && attempt < maxRetries {
				time.Sleep(c.backoffDelay(attempt))
				continue
			}
			return nil, err
		}

		if c.isRetryableStatus(resp.StatusCode) && attempt < maxRetries {
			c.logResponse(httpReq, resp)
			time.Sleep(c.backoffDelay(attempt))
			continue
		}

		c.logResponse(httpReq, resp)
		return resp, nil
	}
}

// resolveURL composes base URL + path + encoded query parameters.
func (c *client) resolveURL(path string, query url.Values) (string, error) {
	if path == "" {
		return "", NewValidationError("path cannot be empty", "path")
	}

	full := strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
	u, err := url.Parse(full)
	if err != nil {
		return "", NewValidationError("invalid request URL: "+err.Error(), "path")
	}

	if len(query) > 0 {
		q := u.Query()
		for key, values := range query {
			for _, value := range values {
				q.Add(key, value)
			}
		}
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

// encodeBody applies the resolved serializer to the structured body and
// reports the content type to send, empty for raw pass-through bodies.
func (c *client) encodeBody(body any, call *callOptions) ([]byte, string, error) {
	if body == nil {
		return nil, "", nil
	}

	s := resolveSerializer(call.serializer, c.config.Serializer)
	payload, err := s.Encode(body)
	if err != nil {
		return nil, "", NewSerializationError("encode", err)
	}

	if isRaw(s) {
		return payload, "", nil
	}
	return payload, c.config.ContentType, nil
}

// decodeBody applies the resolved deserializer to the response body.
// Empty bodies decode to an absent value.
func (c *client) decodeBody(body []byte, call *callOptions) (any, error) {
	if len(body) == 0 {
		return nil, nil
	}

	d := resolveDeserializer(call.deserializer, c.config.Deserializer)
	v, err := d.Decode(body)
	if err != nil {
		return nil, NewSerializationError("decode", err)
	}
	return v, nil
}

// buildRequest constructs the transport request and applies default and
// per-call headers. Per-call headers override instance defaults.
func (c *client) buildRequest(ctx context.Context, method, target string, payload []byte, contentType string, call *callOptions) (*nethttp.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, NewValidationError("failed to build request: "+err.Error(), "request")
	}

	for key, value := range c.config.DefaultHeaders {
		httpReq.Header.Set(key, value)
	}
	for key, value := range call.headers {
		httpReq.Header.Set(key, value)
	}
	if contentType != "" && httpReq.Header.Get(headerContentType) == "" {
		httpReq.Header.Set(headerContentType, contentType)
	}

	return httpReq, nil
}

// prepareAttempt clones the request for one attempt, rewinds the body, and
// runs the request interceptors. Interceptor failures are not retried.
func (c *client) prepareAttempt(ctx context.Context, req *nethttp.Request) (*nethttp.Request, error) {
	httpReq := req.Clone(ctx)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, NewTransportError("failed to rewind request body", err)
		}
		httpReq.Body = body
	}

	for _, interceptor := range c.requestInterceptors {
		if err := interceptor(ctx, httpReq); err != nil {
			return nil, NewInterceptorError("request", err)
		}
	}
	return httpReq, nil
}

// readResponse runs response interceptors, drains the body, and builds a
// Response.
func (c *client) readResponse(ctx context.Context, start time.Time, callCount int64, attempt int, httpReq *nethttp.Request, httpResp *nethttp.Response) (*Response, error) {
	defer httpResp.Body.Close()

	for _, interceptor := range c.responseInterceptors {
		if err := interceptor(ctx, httpReq, httpResp); err != nil {
			return nil, NewInterceptorError("response", err)
		}
	}

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, NewTransportError("failed to read response body", err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Body:       respBody,
		Headers:    httpResp.Header,
		Stats: Stats{
			ElapsedTime: time.Since(start),
			Attempts:    attempt + 1,
			CallCount:   callCount,
		},
	}, nil
}

// backoffDelay returns the exponential backoff delay for the given attempt,
// using RetryDelay as the base and capping to a reasonable maximum.
func (c *client) backoffDelay(attempt int) time.Duration {
	base := c.config.RetryDelay
	if base <= 0 {
		base = 50 * time.Millisecond
	}
	// Cap attempt to avoid overflow when computing the multiplier
	if attempt > 20 {
		attempt = 20
	}
	mult := 1 << attempt
	d := base * time.Duration(mult)
	const maxBackoff = 30 * time.Second
	if d > maxBackoff {
		d = maxBackoff
	}
	// Full jitter: random duration in [0, d)
	if d <= 0 {
		return base
	}
	n, err := crand.Int(crand.Reader, big.NewInt(int64(d)))
	if err != nil {
		return d
	}
	return time.Duration(n.Int64())
}

func (c *client) isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func (c *client) isRetryableStatus(code int) bool {
	return code >= 500 && code < 600
}

// logRequest logs the outgoing request attempt
func (c *client) logRequest(req *nethttp.Request, attempt int) {
	evt := c.logger.Info().
		Str("direction", "outbound").
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("attempt", attempt+1)

	if c.config.LogPayloads {
		evt = evt.Interface("headers", flattenHeaders(req.Header))
		if req.GetBody != nil {
			if rc, err := req.GetBody(); err == nil {
				b, _ := io.ReadAll(io.LimitReader(rc, int64(c.config.MaxPayloadLogBytes)))
				rc.Close()
				evt = evt.Bytes("body", b)
			}
		}
	}

	evt.Msg("REST client request")
}

// logResponse logs the incoming response
func (c *client) logResponse(req *nethttp.Request, resp *Response) {
	evt := c.logger.Info().
		Str("direction", "inbound").
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Dur("elapsed", resp.Stats.ElapsedTime).
		Int("attempt", resp.Stats.Attempts).
		Int64("call_count", resp.Stats.CallCount)

	if c.config.LogPayloads && len(resp.Body) > 0 {
		b := resp.Body
		if len(b) > c.config.MaxPayloadLogBytes {
			b = b[:c.config.MaxPayloadLogBytes]
		}
		evt = evt.Bytes("body", b)
	}

	evt.Msg("REST client response")
}

// flattenHeaders reduces a header map to first values for logging
func flattenHeaders(h nethttp.Header) map[string]string {
	out := make(map[string]string, len(h))
	for key := range h {
		out[key] = h.Get(key)
	}
	return out
}
