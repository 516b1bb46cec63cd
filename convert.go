package dbfield

import (
	"net/url"
	"strings"
)

// Escaping helpers for the output contexts a field value can be rendered in.
// All of them are total: an empty input yields an empty output.

var xmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

var jsReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"'", `\'`,
)

// Raw2XML escapes s for an HTML/XML body or a quoted attribute.
func Raw2XML(s string) string {
	return xmlReplacer.Replace(s)
}

// Raw2Att escapes s for use inside a quoted HTML attribute.
func Raw2Att(s string) string {
	return Raw2XML(s)
}

// Raw2HTMLAtt reduces s to characters safe in an id or class attribute.
func Raw2HTMLAtt(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Raw2JS escapes s for embedding in a JavaScript string literal.
func Raw2JS(s string) string {
	return jsReplacer.Replace(s)
}

// URLEncode form-encodes s, spaces become '+'. Only letters, digits and
// "-_." pass through, so '~' is escaped too.
func URLEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "~", "%7E")
}

// RawURLEncode percent-encodes s per RFC 3986, spaces become "%20".
func RawURLEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
