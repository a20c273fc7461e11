// Package sanitize cleans free-text form input before it is rendered
// into an email. Stripping happens on intake; html/template escapes the
// remainder on render.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	tagRe        = regexp.MustCompile(`<[^>]*>?`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Same shape the form uses client-side: local@domain.tld, no spaces.
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Text strips markup, null bytes and control characters from a single-line
// text field and collapses runs of whitespace.
func Text(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	s = tagRe.ReplaceAllString(s, "")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}

	return strings.TrimSpace(whitespaceRe.ReplaceAllString(b.String(), " "))
}

// IsEmail reports whether s looks like a plausible email address.
func IsEmail(s string) bool {
	return emailRe.MatchString(s)
}
