package client

import (
	"strings"
	"unicode"
)

// ToCamelCase turns a local snake_case name into the API's camelCase:
// "cc_first_name" -> "ccFirstName", "subscription[plan_code]" ->
// "subscription[planCode]". Names without underscores are returned as is.
func ToCamelCase(name string) string {
	if !strings.Contains(name, "_") {
		return name
	}

	var b strings.Builder
	b.Grow(len(name))
	upper := false
	for _, r := range name {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToSnakeCase is the inverse of ToCamelCase: "ccFirstName" -> "cc_first_name".
// Already snake_case input is unchanged.
func ToSnakeCase(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	prev := rune(0)
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 && prev != '_' && prev != '[' {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}
