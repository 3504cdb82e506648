package fluri

import "strings"

// upperhex is the digit set of the percent-encoded bytes.
const upperhex = "0123456789ABCDEF"

// httpUnescaper restores the characters that a browser-side component encoder
// leaves untouched.
var httpUnescaper = strings.NewReplacer(
	"%7E", "~",
	"%21", "!",
	"%28", "(",
	"%29", ")",
	"%27", "'",
)

// Escape percent-encodes the s.
//
// Spaces are always encoded as "%20", never as "+". When the forHTTP is true,
// the "~", "!", "(", ")" and "'" are left as they are (the profile used by the
// components of the `HTTPURL`). Otherwise they are encoded too (the profile
// used by the `FileURL`, `DataURL`, `TelnetURL` and `MailtoURL`).
func Escape(s string, forHTTP bool) string {
	es := strings.ReplaceAll(formEscape(s), "+", "%20")
	if forHTTP {
		es = httpUnescaper.Replace(es)
	}

	return es
}

// formEscape encodes the s in the "application/x-www-form-urlencoded" form.
// Only "A-Z", "a-z", "0-9", ".", "-", "*" and "_" are kept, spaces become "+".
func formEscape(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if c := s[i]; c != ' ' && shouldFormEscape(c) {
			n++
		}
	}

	if n == 0 {
		if !strings.Contains(s, " ") {
			return s
		}

		return strings.ReplaceAll(s, " ", "+")
	}

	b := make([]byte, 0, len(s)+2*n)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == ' ':
			b = append(b, '+')
		case shouldFormEscape(c):
			b = append(b, '%', upperhex[c>>4], upperhex[c&15])
		default:
			b = append(b, c)
		}
	}

	return string(b)
}

// shouldFormEscape reports whether the c must be percent-encoded.
func shouldFormEscape(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return false
	case c == '.', c == '-', c == '*', c == '_':
		return false
	}

	return true
}
