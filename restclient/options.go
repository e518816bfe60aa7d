package restclient

import "net/url"

// CallOption customizes a single call without touching instance defaults.
type CallOption func(*callOptions)

// callOptions collects the per-call overrides resolved for one request.
type callOptions struct {
	headers      map[string]string
	query        url.Values
	serializer   Serializer
	deserializer Deserializer
}

func newCallOptions(opts []CallOption) *callOptions {
	co := &callOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(co)
		}
	}
	return co
}

// WithHeader sets a header for this call only. It overrides any default
// header with the same name.
func WithHeader(name, value string) CallOption {
	return func(co *callOptions) {
		if co.headers == nil {
			co.headers = make(map[string]string)
		}
		co.headers[name] = value
	}
}

// WithHeaders sets multiple headers for this call only.
func WithHeaders(headers map[string]string) CallOption {
	return func(co *callOptions) {
		if co.headers == nil {
			co.headers = make(map[string]string, len(headers))
		}
		for k, v := range headers {
			co.headers[k] = v
		}
	}
}

// WithQuery adds a query parameter. Repeated values become repeated
// parameters in the encoded query string.
func WithQuery(key string, values ...string) CallOption {
	return func(co *callOptions) {
		if co.query == nil {
			co.query = url.Values{}
		}
		for _, v := range values {
			co.query.Add(key, v)
		}
	}
}

// WithQueryValues merges a full url.Values set into the call's query.
func WithQueryValues(values url.Values) CallOption {
	return func(co *callOptions) {
		if co.query == nil {
			co.query = url.Values{}
		}
		for k, vs := range values {
			for _, v := range vs {
				co.query.Add(k, v)
			}
		}
	}
}

// WithSerializer overrides the request body serializer for this call.
// Pass Raw to send the body as-is.
func WithSerializer(s Serializer) CallOption {
	return func(co *callOptions) {
		co.serializer = s
	}
}

// WithDeserializer overrides the response body deserializer for this call.
// Pass Raw to receive the raw response bytes.
func WithDeserializer(d Deserializer) CallOption {
	return func(co *callOptions) {
		co.deserializer = d
	}
}

// WithRawBody marks both directions of this call as unprocessed: the body
// is sent as-is and the response bytes are returned undecoded.
func WithRawBody() CallOption {
	return func(co *callOptions) {
		co.serializer = Raw
		co.deserializer = Raw
	}
}
