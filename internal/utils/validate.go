package utils

import (
	"net/mail"
	"strings"
)

// ValidEmail reports whether s looks like a plain RFC 5322 address. Display
// names ("Jo <jo@x>") are rejected; the forms only ever submit bare addresses.
func ValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}
