// Package gate implements the domain-match check binding report delivery
// to proof of control over the audited domain: the delivery address must
// belong to the exact domain that was audited.
package gate

import (
	"strings"

	"github.com/ouestweb/siteaudit/pkg/services/normalize"
)

// EmailDomain returns the lowercased domain part of an email address, or
// an empty string when there is none.
func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// Validate reports whether the email's domain exactly equals the audited
// URL's domain. No subdomain leniency: mail.example.com does not match
// example.com.
func Validate(email, url string) bool {
	emailDomain := EmailDomain(email)
	if emailDomain == "" {
		return false
	}
	urlDomain := normalize.ExtractDomain(url)
	if urlDomain == "" {
		return false
	}
	return emailDomain == urlDomain
}
