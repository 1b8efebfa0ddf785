// Package validation normalizes and checks everything a user can type or
// upload before it reaches the backend.
package validation

import (
	"net/url"
	"regexp"
	"strings"

	"emailfinder/pkg/serrors"
)

// MaxDomainLength is the RFC 1035 limit on a full domain name.
const MaxDomainLength = 253

var (
	domainPattern = regexp.MustCompile(
		`^[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*\.[a-zA-Z]{2,}$`,
	)
	schemePattern = regexp.MustCompile(`(?i)^https?://`)
)

// Errors returned while the user is typing.
var (
	ErrDomainRequired      = serrors.With(serrors.ErrBadRequest, "Domain is required")
	ErrInvalidDomainFormat = serrors.With(serrors.ErrBadRequest, "Invalid domain format")
)

func stripWWW(s string) string {
	if len(s) >= 4 && strings.EqualFold(s[:4], "www.") {
		return s[4:]
	}

	return s
}

// ExtractDomain turns whatever was pasted into the domain field into a bare
// lowercase host:
//
//	https://www.example.com/path -> example.com
//	example.com/about            -> example.com
//	WWW.Example.com              -> example.com
//
// Input that looks like a URL but cannot be parsed is returned trimmed.
func ExtractDomain(input string) string {
	s := strings.TrimSpace(input)
	if s == "" {
		return ""
	}

	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil || u.Hostname() == "" {
			return s
		}

		return strings.ToLower(stripWWW(u.Hostname()))
	}

	if i := strings.Index(s, "/"); i >= 0 {
		s = s[:i]
	}

	return strings.ToLower(stripWWW(s))
}

// ValidateDomainFormat reports whether domain is syntactically a registrable
// name with an alphabetic TLD. A leading "www." is ignored.
func ValidateDomainFormat(domain string) bool {
	if domain == "" || len(domain) > MaxDomainLength {
		return false
	}

	return domainPattern.MatchString(stripWWW(domain))
}

// ValidateDomainRealTime is the cheap check run on every keystroke. It accepts
// scheme and path noise and only rejects what can never become valid.
func ValidateDomainRealTime(input string) error {
	s := strings.TrimSpace(input)
	if s == "" {
		return ErrDomainRequired
	}

	s = stripWWW(schemePattern.ReplaceAllString(s, ""))
	if i := strings.Index(s, "/"); i >= 0 {
		s = s[:i]
	}

	if !ValidateDomainFormat(s) {
		return ErrInvalidDomainFormat
	}

	return nil
}
