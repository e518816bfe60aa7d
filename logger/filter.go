package logger

import (
	"net/url"
	"strings"
)

const redactedPlaceholder = "[REDACTED]"

// SensitiveDataFilter masks credential-bearing values before they reach
// the log output. An HTTP client routinely logs request headers and URLs,
// so the filter targets the fields where credentials leak: Authorization
// headers, API keys, cookies, and URL userinfo.
type SensitiveDataFilter struct {
	sensitiveKeys map[string]struct{}
}

// NewSensitiveDataFilter creates a filter with the default sensitive key set.
func NewSensitiveDataFilter() *SensitiveDataFilter {
	keys := []string{
		"authorization",
		"proxy-authorization",
		"cookie",
		"set-cookie",
		"x-api-key",
		"api_key",
		"apikey",
		"password",
		"secret",
		"token",
		"access_token",
		"refresh_token",
	}
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return &SensitiveDataFilter{sensitiveKeys: m}
}

// IsSensitiveKey reports whether values logged under key must be masked.
// Matching is case-insensitive.
func (f *SensitiveDataFilter) IsSensitiveKey(key string) bool {
	_, ok := f.sensitiveKeys[strings.ToLower(key)]
	return ok
}

// FilterString masks the value when the key is sensitive. Values logged
// under a "url" key have their userinfo redacted instead.
func (f *SensitiveDataFilter) FilterString(key, value string) string {
	if f.IsSensitiveKey(key) {
		return redactedPlaceholder
	}
	if strings.EqualFold(key, "url") {
		return RedactURL(value)
	}
	return value
}

// FilterValue masks sensitive values inside structured fields. Maps of
// strings (header maps) are filtered per entry; everything else is masked
// wholesale when the key itself is sensitive.
func (f *SensitiveDataFilter) FilterValue(key string, value any) any {
	if f.IsSensitiveKey(key) {
		return redactedPlaceholder
	}
	switch v := value.(type) {
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, val := range v {
			out[k] = f.FilterString(k, val)
		}
		return out
	case map[string]any:
		return f.FilterFields(v)
	}
	return value
}

// FilterFields returns a copy of fields with sensitive entries masked.
func (f *SensitiveDataFilter) FilterFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if f.IsSensitiveKey(k) {
			out[k] = redactedPlaceholder
			continue
		}
		out[k] = f.FilterValue(k, v)
	}
	return out
}

// RedactURL masks the password (and keeps the username) in a URL's
// userinfo segment so request URLs are safe to log. URLs without userinfo
// pass through unchanged; unparsable input is returned as-is since it
// carries no parsed credentials to leak.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}

	userInfo := "****:****"
	if name := u.User.Username(); name != "" {
		userInfo = name + ":****"
	}

	// Rebuild manually so the mask asterisks stay unescaped.
	var b strings.Builder
	b.WriteString(u.Scheme)
	b.WriteString("://")
	b.WriteString(userInfo)
	b.WriteString("@")
	b.WriteString(u.Host)
	if u.RawPath != "" {
		b.WriteString(u.RawPath)
	} else if u.Path != "" {
		b.WriteString(u.Path)
	}
	if u.RawQuery != "" {
		b.WriteString("?")
		b.WriteString(u.RawQuery)
	}
	return b.String()
}
