package restclient

import (
	"encoding/json"
	"fmt"
)

// Serializer encodes a structured request body into wire bytes.
type Serializer interface {
	Encode(v any) ([]byte, error)
}

// Deserializer decodes wire bytes into a structured value.
type Deserializer interface {
	Decode(data []byte) (any, error)
}

// SerializerFunc adapts a plain function to the Serializer interface.
type SerializerFunc func(v any) ([]byte, error)

func (f SerializerFunc) Encode(v any) ([]byte, error) { return f(v) }

// DeserializerFunc adapts a plain function to the Deserializer interface.
type DeserializerFunc func(data []byte) (any, error)

func (f DeserializerFunc) Decode(data []byte) (any, error) { return f(data) }

// jsonCodec is the default codec: encoding/json with UTF-8 text.
type jsonCodec struct{}

func (jsonCodec) Encode(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Decode(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// JSON is the default serializer/deserializer pair.
var JSON interface {
	Serializer
	Deserializer
} = jsonCodec{}

// rawCodec passes bodies through untouched in both directions.
type rawCodec struct{}

func (rawCodec) Encode(v any) ([]byte, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		return nil, fmt.Errorf("raw body must be []byte or string, got %T", v)
	}
}

func (rawCodec) Decode(data []byte) (any, error) { return data, nil }

// Raw is the explicit "no processing" sentinel. Set as serializer it sends
// the body as-is (which must already be []byte or string); set as
// deserializer it returns the raw response bytes unmodified. Distinct from
// leaving the codec nil, which selects the instance default.
var Raw interface {
	Serializer
	Deserializer
} = rawCodec{}

// isRaw reports whether the given codec is the Raw sentinel.
func isRaw(codec any) bool {
	_, ok := codec.(rawCodec)
	return ok
}

// resolveSerializer applies the tri-state resolution order:
// per-call override, then instance default, then the package JSON codec.
func resolveSerializer(perCall, instance Serializer) Serializer {
	if perCall != nil {
		return perCall
	}
	if instance != nil {
		return instance
	}
	return JSON
}

// resolveDeserializer mirrors resolveSerializer for the inbound direction.
func resolveDeserializer(perCall, instance Deserializer) Deserializer {
	if perCall != nil {
		return perCall
	}
	if instance != nil {
		return instance
	}
	return JSON
}
