package restclient

import (
	"context"
	nethttp "net/http"

	"github.com/gaborage/go-restkit/trace"
)

// BasicAuthInterceptor returns a request interceptor that sets basic
// authentication credentials. It is the reference implementation of the
// per-request auth hook: service clients with bespoke signing schemes
// register their own interceptor the same way.
func BasicAuthInterceptor(username, password string) RequestInterceptor {
	return func(_ context.Context, req *nethttp.Request) error {
		req.SetBasicAuth(username, password)
		return nil
	}
}

// TraceIDInterceptor returns a request interceptor that propagates the
// context's trace ID in the given header, generating one when the context
// carries none. An empty header name falls back to X-Request-ID.
func TraceIDInterceptor(header string) RequestInterceptor {
	if header == "" {
		header = trace.HeaderXRequestID
	}
	return func(ctx context.Context, req *nethttp.Request) error {
		if req.Header.Get(header) == "" {
			req.Header.Set(header, trace.EnsureID(ctx))
		}
		return nil
	}
}

// W3CTraceInterceptor returns a request interceptor that sets the W3C
// traceparent header, deriving a child hop from any parent in the context,
// and forwards tracestate when present.
func W3CTraceInterceptor() RequestInterceptor {
	return func(ctx context.Context, req *nethttp.Request) error {
		if req.Header.Get(trace.HeaderTraceParent) == "" {
			if parent, ok := trace.ParentFromContext(ctx); ok {
				req.Header.Set(trace.HeaderTraceParent, trace.ChildParent(parent))
			} else {
				req.Header.Set(trace.HeaderTraceParent, trace.NewParent())
			}
		}
		if req.Header.Get(trace.HeaderTraceState) == "" {
			if state, ok := trace.StateFromContext(ctx); ok {
				req.Header.Set(trace.HeaderTraceState, state)
			}
		}
		return nil
	}
}
