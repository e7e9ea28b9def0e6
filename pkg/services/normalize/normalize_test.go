package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "NoScheme", input: "example.com", expected: "https://example.com"},
		{name: "HTTPUpgraded", input: "http://example.com", expected: "https://example.com"},
		{name: "HTTPSPassthrough", input: "https://example.com", expected: "https://example.com"},
		{name: "PathPreserved", input: "https://example.com/path", expected: "https://example.com/path"},
		{name: "HTTPWithPath", input: "http://example.com/a/b", expected: "https://example.com/a/b"},
		{name: "Empty", input: "", expected: ""},
		{name: "WhitespaceOnly", input: "   ", expected: ""},
		{name: "SurroundingWhitespace", input: "  example.com  ", expected: "https://example.com"},
		{name: "NoLowercasing", input: "Example.COM", expected: "https://Example.COM"},
		{name: "NoTrailingSlashStripping", input: "example.com/", expected: "https://example.com/"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, URL(tc.input))
		})
	}
}

func TestURL_Idempotent(t *testing.T) {
	inputs := []string{"example.com", "http://example.com", "https://example.com/path?q=1", "sub.domain.fr"}
	for _, in := range inputs {
		once := URL(in)
		assert.Equal(t, once, URL(once), "normalize must be idempotent for %q", in)
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Plain", input: "example.com", expected: "example.com"},
		{name: "Scheme", input: "https://example.com", expected: "example.com"},
		{name: "WWWStripped", input: "https://www.example.com", expected: "example.com"},
		{name: "Lowercased", input: "https://Example.COM/Path", expected: "example.com"},
		{name: "PathDropped", input: "example.com/contact", expected: "example.com"},
		{name: "SubdomainKept", input: "https://mail.example.com", expected: "mail.example.com"},
		{name: "Port", input: "https://example.com:8443/x", expected: "example.com"},
		{name: "Empty", input: "", expected: ""},
		{name: "MalformedFallsBack", input: "https://exa mple.com/x", expected: "exa mple.com"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ExtractDomain(tc.input))
		})
	}
}
