package templates

import (
	"strings"
	"text/template"
	"unicode"
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"quote":      CSharpQuote,
		"lowerFirst": LowerFirst,
		"join":       strings.Join,
	}
}

// CSharpQuote renders s as a regular C# string literal
func CSharpQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// LowerFirst lower-cases the first rune: DoWork -> doWork
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// SanitizeIdentifier collapses every run of characters that cannot appear in
// an identifier into a single underscore and trims underscores at the ends:
// "List<int>?" -> "List_int", "(int, string)" -> "int_string".
func SanitizeIdentifier(s string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}
