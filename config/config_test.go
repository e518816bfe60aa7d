package config

import (
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBytesDefaults(t *testing.T) {
	s, err := LoadBytes([]byte("client:\n  baseurl: https://svc.example.com/api\n"))
	require.NoError(t, err)

	assert.Equal(t, "https://svc.example.com/api", s.Client.BaseURL)
	assert.Equal(t, 10*time.Second, s.Client.Timeout)
	assert.Equal(t, 0, s.Client.MaxRetries)
	assert.Equal(t, time.Second, s.Client.RetryDelay)
	assert.Equal(t, "application/json", s.Client.ContentType)
	assert.Equal(t, "info", s.Log.Level)
	assert.False(t, s.Log.Pretty)
	assert.Equal(t, "X-Request-ID", s.Trace.Header)
	assert.False(t, s.Trace.W3C)
}

func TestLoadBytesOverrides(t *testing.T) {
	yml := `
client:
  baseurl: https://svc.example.com/api
  timeout: 3s
  maxretries: 2
  retrydelay: 250ms
  contenttype: application/vnd.widgets+json
  headers:
    User-Agent: widgets-client/1.0
log:
  level: debug
  payloads: true
  maxpayloadbytes: 512
trace:
  header: X-Correlation-ID
  w3c: true
`
	s, err := LoadBytes([]byte(yml))
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, s.Client.Timeout)
	assert.Equal(t, 2, s.Client.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, s.Client.RetryDelay)
	assert.Equal(t, "application/vnd.widgets+json", s.Client.ContentType)
	assert.Equal(t, "widgets-client/1.0", s.Client.Headers["User-Agent"])
	assert.Equal(t, "debug", s.Log.Level)
	assert.True(t, s.Log.Payloads)
	assert.Equal(t, 512, s.Log.MaxPayloadBytes)
	assert.Equal(t, "X-Correlation-ID", s.Trace.Header)
	assert.True(t, s.Trace.W3C)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("RESTKIT_CLIENT_BASEURL", "https://env.example.com")
	t.Setenv("RESTKIT_CLIENT_MAXRETRIES", "4")
	t.Setenv("RESTKIT_LOG_LEVEL", "warn")

	s, err := LoadBytes([]byte("client:\n  baseurl: https://file.example.com\n  maxretries: 1\n"))
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", s.Client.BaseURL)
	assert.Equal(t, 4, s.Client.MaxRetries)
	assert.Equal(t, "warn", s.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "client.yaml")
	require.NoError(t, os.WriteFile(path, []byte("client:\n  baseurl: https://svc.example.com\n  timeout: 5s\n"), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://svc.example.com", s.Client.BaseURL)
	assert.Equal(t, 5*time.Second, s.Client.Timeout)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadWithoutFileUsesDefaultsAndEnv(t *testing.T) {
	t.Setenv("RESTKIT_CLIENT_BASEURL", "https://env-only.example.com")

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://env-only.example.com", s.Client.BaseURL)
}

func TestValidation(t *testing.T) {
	t.Run("missing base URL", func(t *testing.T) {
		_, err := LoadBytes([]byte("log:\n  level: info\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid settings")
	})

	t.Run("malformed base URL", func(t *testing.T) {
		_, err := LoadBytes([]byte("client:\n  baseurl: not a url\n"))
		require.Error(t, err)
	})

	t.Run("negative retries", func(t *testing.T) {
		_, err := LoadBytes([]byte("client:\n  baseurl: https://svc.example.com\n  maxretries: -1\n"))
		require.Error(t, err)
	})
}

func TestBuildProducesWorkingClient(t *testing.T) {
	server := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, "widgets-client/1.0", r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get("X-Correlation-ID"))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	yml := "client:\n  baseurl: " + server.URL + "\n  headers:\n    User-Agent: widgets-client/1.0\ntrace:\n  header: X-Correlation-ID\n"
	s, err := LoadBytes([]byte(yml))
	require.NoError(t, err)

	client, err := s.Build(nil)
	require.NoError(t, err)

	result, err := client.Get(context.Background(), "/widgets")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, result)
}
