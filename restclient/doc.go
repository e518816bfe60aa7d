// Package restclient is a reusable base for building REST service clients:
// verb helpers over a shared request/response pipeline with pluggable
// serialization, typed errors, structured logging, and retries. Concrete
// clients embed or wrap the Client interface and only add their endpoint
// methods.
//
// Results
//   - Verb helpers return the decoded response body (JSON by default).
//   - Get returns (nil, nil) for status 404 and 410: a missing resource is
//     an absent value for lookups, not an error. Other verbs always surface
//     non-2xx statuses as *HTTPStatusError.
//   - Empty response bodies decode to nil.
//
// Serialization
//   - Resolution order per direction: per-call option, then the instance
//     default, then the package JSON codec.
//   - The Raw sentinel disables processing for a direction: bodies are sent
//     as-is ([]byte or string) and response bytes returned unmodified.
//
// Retries
//   - Controlled via Builder.WithRetries(maxRetries, retryDelay);
//     maxRetries N means N+1 total attempts.
//   - Retries occur on transport errors, timeouts, and HTTP 5xx responses.
//   - 4xx responses, serialization errors, and interceptor errors are not
//     retried.
//
// Backoff
//   - Exponential from retryDelay: delay = retryDelay * 2^attempt, with
//     full jitter (actual sleep random in [0, delay)) and a 30s cap.
//   - Requests are rebuilt on each attempt so bodies re-send.
//
// Extension
//   - Req sends an already-built *http.Request through the same retry,
//     interceptor, and logging machinery. Per-request authentication
//     (signing, basic auth) belongs in request interceptors; see
//     BasicAuthInterceptor for the pattern.
package restclient
