// Package translit maps accented Latin, Cyrillic and Greek letters to
// plain ASCII approximations for search and sort keys.
package translit

//go:generate go run ../cmd/translitgen -out translit_data.go

import "strings"

// Lookup returns the ASCII replacement for r.
func Lookup(r rune) (string, bool) {
	s, ok := table[r]
	return s, ok
}

// String replaces every mapped code point in s. Unmapped code points,
// ASCII included, are copied unchanged.
func String(s string) string {
	idx := strings.IndexFunc(s, mapped)
	if idx < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:idx])
	for _, r := range s[idx:] {
		if repl, ok := table[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Len reports the number of mapped code points.
func Len() int {
	return len(table)
}

func mapped(r rune) bool {
	_, ok := table[r]
	return ok
}
