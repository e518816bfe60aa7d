// Package config loads REST client settings from layered sources:
// built-in defaults, an optional YAML file, and environment variables,
// in ascending priority. Loaded settings validate before use and build
// ready-to-use clients.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/gaborage/go-restkit/logger"
	"github.com/gaborage/go-restkit/restclient"
)

// envPrefix namespaces the environment variables the loader reads,
// e.g. RESTKIT_CLIENT_BASEURL maps to client.baseurl.
const envPrefix = "RESTKIT_"

// Settings is the full configuration tree for one client.
type Settings struct {
	Client ClientSettings `koanf:"client"`
	Log    LogSettings    `koanf:"log"`
	Trace  TraceSettings  `koanf:"trace"`
}

// ClientSettings configures the request pipeline.
type ClientSettings struct {
	BaseURL     string            `koanf:"baseurl" validate:"required,url"`
	Timeout     time.Duration     `koanf:"timeout" validate:"gte=0"`
	MaxRetries  int               `koanf:"maxretries" validate:"gte=0"`
	RetryDelay  time.Duration     `koanf:"retrydelay" validate:"gte=0"`
	ContentType string            `koanf:"contenttype"`
	Headers     map[string]string `koanf:"headers"`
}

// LogSettings configures the structured logger.
type LogSettings struct {
	Level           string `koanf:"level"`
	Pretty          bool   `koanf:"pretty"`
	Payloads        bool   `koanf:"payloads"`
	MaxPayloadBytes int    `koanf:"maxpayloadbytes" validate:"gte=0"`
}

// TraceSettings configures outbound trace propagation.
type TraceSettings struct {
	Header string `koanf:"header"`
	W3C    bool   `koanf:"w3c"`
}

var validate = validator.New()

// Load reads settings with priority: environment variables over the YAML
// file at path (optional, pass "" to skip) over built-in defaults.
func Load(path string) (*Settings, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	if err := loadEnv(k); err != nil {
		return nil, err
	}

	return unmarshal(k)
}

// LoadBytes reads settings from in-memory YAML over built-in defaults,
// with the environment overlay applied last.
func LoadBytes(b []byte) (*Settings, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(rawbytes.Provider(b), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	if err := loadEnv(k); err != nil {
		return nil, err
	}

	return unmarshal(k)
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"client.timeout":     "10s",
		"client.maxretries":  0,
		"client.retrydelay":  "1s",
		"client.contenttype": "application/json",

		"log.level":           "info",
		"log.pretty":          false,
		"log.payloads":        false,
		"log.maxpayloadbytes": restclient.DefaultMaxPayloadLogBytes,

		"trace.header": "X-Request-ID",
		"trace.w3c":    false,
	}
	return k.Load(confmap.Provider(defaults, "."), nil)
}

func loadEnv(k *koanf.Koanf) error {
	err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			// RESTKIT_CLIENT_BASEURL becomes client.baseurl
			key = strings.TrimPrefix(key, envPrefix)
			return strings.ReplaceAll(strings.ToLower(key), "_", "."), value
		},
	}), nil)
	if err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}
	return nil
}

func unmarshal(k *koanf.Koanf) (*Settings, error) {
	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, nil
}

// Validate checks the settings tree against its constraints.
func (s *Settings) Validate() error {
	return validate.Struct(s)
}

// NewLogger constructs a logger from the log settings.
func (s *Settings) NewLogger() logger.Logger {
	return logger.New(s.Log.Level, s.Log.Pretty)
}

// Build assembles a REST client from the settings. A nil log builds one
// from the log settings.
func (s *Settings) Build(log logger.Logger) (restclient.Client, error) {
	if log == nil {
		log = s.NewLogger()
	}

	b := restclient.NewBuilder(s.Client.BaseURL, log).
		WithTimeout(s.Client.Timeout).
		WithRetries(s.Client.MaxRetries, s.Client.RetryDelay).
		WithContentType(s.Client.ContentType).
		WithTraceIDHeader(s.Trace.Header)

	for key, value := range s.Client.Headers {
		b.WithDefaultHeader(key, value)
	}
	if s.Log.Payloads {
		b.WithPayloadLogging(s.Log.MaxPayloadBytes)
	}
	if s.Trace.W3C {
		b.WithW3CTrace()
	}

	return b.Build()
}
