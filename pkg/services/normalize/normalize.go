package normalize

import (
	"net/url"
	"strings"
)

// URL canonicalizes free-form user input into a fully qualified HTTPS
// address. Empty or whitespace-only input yields an empty string, which
// callers must treat as a validation failure. No trailing-slash or case
// normalization happens here; downstream code tolerates minor variation.
func URL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	if strings.HasPrefix(trimmed, "http://") {
		return "https://" + strings.TrimPrefix(trimmed, "http://")
	}
	return "https://" + trimmed
}

// ExtractDomain returns the lowercased hostname of raw with a leading
// "www." stripped. It never fails: when raw does not parse as a URL it
// falls back to a textual heuristic, since this value feeds a security
// check that must always receive something comparable.
func ExtractDomain(raw string) string {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return ""
	}
	withScheme := candidate
	if !strings.Contains(withScheme, "://") {
		withScheme = "https://" + withScheme
	}
	if u, err := url.Parse(withScheme); err == nil && u.Hostname() != "" {
		return strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	}
	return fallbackDomain(candidate)
}

func fallbackDomain(raw string) string {
	s := raw
	for _, scheme := range []string{"https://", "http://"} {
		s = strings.TrimPrefix(s, scheme)
	}
	s = strings.TrimPrefix(s, "www.")
	if i := strings.Index(s, "/"); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(s)
}
