package logging

import (
	"crypto/sha256"
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`(?:\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`)
)

// HashPhone returns the hex SHA-256 of the digits of a phone number, so
// "(619) 555-0123" and "619-555-0123" hash the same.
func HashPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	h := sha256.Sum256([]byte(b.String()))
	return fmt.Sprintf("%x", h)
}

// ScrubPII replaces emails with [EMAIL] and phone numbers with [PHONE].
// Digit runs glued to other identifiers, such as BOOK-1760889600123, are kept.
func ScrubPII(text string) string {
	text = emailRe.ReplaceAllString(text, "[EMAIL]")

	var b strings.Builder
	last := 0
	for _, loc := range phoneRe.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if start > 0 && isIdentByte(text[start-1], true) {
			continue
		}
		if end < len(text) && isIdentByte(text[end], false) {
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString("[PHONE]")
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

func isIdentByte(c byte, before bool) bool {
	switch {
	case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		return true
	case before && c == '-':
		return true
	}
	return false
}
