package restclient

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONCodec(t *testing.T) {
	t.Run("encode", func(t *testing.T) {
		data, err := JSON.Encode(map[string]any{"color": "blue"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"color":"blue"}`, string(data))
	})

	t.Run("decode", func(t *testing.T) {
		v, err := JSON.Decode([]byte(`{"id":1,"tags":["a","b"]}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"id": float64(1), "tags": []any{"a", "b"}}, v)
	})

	t.Run("decode failure", func(t *testing.T) {
		_, err := JSON.Decode([]byte(`{broken`))
		require.Error(t, err)
	})

	t.Run("encode failure", func(t *testing.T) {
		_, err := JSON.Encode(make(chan int))
		require.Error(t, err)
	})
}

func TestRawCodec(t *testing.T) {
	t.Run("bytes pass through", func(t *testing.T) {
		data, err := Raw.Encode([]byte{0x00, 0xff, 0x42})
		require.NoError(t, err)
		assert.Equal(t, []byte{0x00, 0xff, 0x42}, data)
	})

	t.Run("strings pass through", func(t *testing.T) {
		data, err := Raw.Encode("plain text")
		require.NoError(t, err)
		assert.Equal(t, []byte("plain text"), data)
	})

	t.Run("nil passes through", func(t *testing.T) {
		data, err := Raw.Encode(nil)
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("structured values are rejected", func(t *testing.T) {
		_, err := Raw.Encode(map[string]string{"a": "b"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "raw body")
	})

	t.Run("decode returns bytes unchanged", func(t *testing.T) {
		v, err := Raw.Decode([]byte("anything at all"))
		require.NoError(t, err)
		assert.Equal(t, []byte("anything at all"), v)
	})
}

func TestCodecResolution(t *testing.T) {
	custom := SerializerFunc(func(v any) ([]byte, error) {
		return []byte(strings.ToUpper(v.(string))), nil
	})
	instance := SerializerFunc(func(v any) ([]byte, error) {
		return []byte(v.(string)), nil
	})

	t.Run("per-call wins", func(t *testing.T) {
		s := resolveSerializer(custom, instance)
		data, err := s.Encode("x")
		require.NoError(t, err)
		assert.Equal(t, "X", string(data))
	})

	t.Run("instance default next", func(t *testing.T) {
		s := resolveSerializer(nil, instance)
		data, err := s.Encode("x")
		require.NoError(t, err)
		assert.Equal(t, "x", string(data))
	})

	t.Run("JSON is the package fallback", func(t *testing.T) {
		assert.Equal(t, JSON, resolveSerializer(nil, nil))
		assert.Equal(t, JSON, resolveDeserializer(nil, nil))
	})

	t.Run("raw sentinel is detected only for Raw", func(t *testing.T) {
		assert.True(t, isRaw(Raw))
		assert.False(t, isRaw(JSON))
		assert.False(t, isRaw(custom))
		assert.False(t, isRaw(nil))
	})
}

func TestDeserializerFunc(t *testing.T) {
	d := DeserializerFunc(func(data []byte) (any, error) {
		return strings.TrimSpace(string(data)), nil
	})
	v, err := d.Decode([]byte("  trimmed  "))
	require.NoError(t, err)
	assert.Equal(t, "trimmed", v)
}
