package usecase

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxIdentifierLength = 254

// ValidateOwnerIdentifier checks that s is usable as a ticket owner
// reference: a non-empty email or username without whitespace or control
// characters. Owners are not required to exist in the credential store.
func ValidateOwnerIdentifier(s string) bool {
	if s == "" || len(s) > maxIdentifierLength || !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	if at := strings.Count(s, "@"); at > 0 {
		if at > 1 {
			return false
		}
		local, domain, _ := strings.Cut(s, "@")
		if local == "" || domain == "" {
			return false
		}
	}
	return true
}
