package validation

import (
	"regexp"
	"strings"
)

// Length limits for free-text fields.
const (
	MaxNameLength       = 50
	MaxCustomNameLength = 20
)

var (
	notDomainChars     = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
	angleBrackets      = regexp.MustCompile(`[<>]`)
	notCustomNameChars = regexp.MustCompile(`[^a-zA-Z0-9-]`)
	emailPattern       = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	namePattern        = regexp.MustCompile(`^[\p{L}\s'-]*$`)
)

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n])
}

// SanitizeDomain drops every character that cannot appear in a host name.
func SanitizeDomain(s string) string {
	return truncate(notDomainChars.ReplaceAllString(s, ""), MaxDomainLength)
}

// SanitizeName drops markup characters from a person name.
func SanitizeName(s string) string {
	return truncate(angleBrackets.ReplaceAllString(s, ""), MaxNameLength)
}

// SanitizeCustomName reduces s to a lowercase email local part.
func SanitizeCustomName(s string) string {
	return strings.ToLower(truncate(notCustomNameChars.ReplaceAllString(s, ""), MaxCustomNameLength))
}

// ValidateEmail reports whether s looks like a deliverable address.
func ValidateEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidateName accepts letters, spaces, hyphens and apostrophes up to
// MaxNameLength runes. The empty string is valid since every name is optional.
func ValidateName(s string) bool {
	return len([]rune(s)) <= MaxNameLength && namePattern.MatchString(s)
}
