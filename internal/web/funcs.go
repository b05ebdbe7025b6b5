package web

import (
	"html/template"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Funcs is the template function map shared by all pages.
func Funcs() template.FuncMap {
	return template.FuncMap{
		// safeHTML marks trusted markup (admin-authored titles, rendered
		// Markdown) as HTML.
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
		"initials": Initials,
		"add":      func(a, b int) int { return a + b },
		"telHref":  TelHref,
	}
}

// Initials returns up to two upper-case initials of name.
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, f := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(f)
		b.WriteRune(unicode.ToUpper(r))
		if n++; n == 2 {
			break
		}
	}
	return b.String()
}

// TelHref turns a display phone number into a tel: URL.
func TelHref(phone string) template.URL {
	var b strings.Builder
	for i, r := range phone {
		if unicode.IsDigit(r) || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return template.URL("tel:" + b.String())
}
