package engine

import (
	"fmt"
	"strings"
)

// preprocessSource rewrites script source before it reaches zygomys.
//
// Keywords are compass headings, so :north (or :n, :East, ...) expands
// to a (direction "north") call and reaches builtins as a direction
// value. Hyphenated names become snake_case because zygomys reads a bare
// hyphen as subtraction, and ; comments become // comments. Double-quoted
// strings pass through unchanged.
func preprocessSource(source string) string {
	var out strings.Builder
	out.Grow(len(source) + len(source)/4)

	for i := 0; i < len(source); {
		c := source[i]
		switch {
		case c == '"':
			end := stringEnd(source, i)
			out.WriteString(source[i:end])
			i = end

		case c == ';':
			body := i
			for body < len(source) && source[body] == ';' {
				body++
			}
			end := lineEnd(source, body)
			out.WriteString("//")
			out.WriteString(source[body:end])
			i = end

		case c == ':' && i+1 < len(source) && isLetter(source[i+1]):
			end := wordEnd(source, i+1)
			fmt.Fprintf(&out, "(direction %q)", source[i+1:end])
			i = end

		case c == '-' && i > 0 && i+1 < len(source) &&
			isNameChar(source[i-1]) && isLetter(source[i+1]):
			out.WriteByte('_')
			i++

		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// stringEnd returns the index just past the string literal opening at i.
// An unterminated literal runs to the end of source.
func stringEnd(s string, i int) int {
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '"':
			return j + 1
		}
	}
	return len(s)
}

func lineEnd(s string, i int) int {
	if n := strings.IndexByte(s[i:], '\n'); n >= 0 {
		return i + n
	}
	return len(s)
}

// wordEnd returns the index just past a keyword name starting at i.
func wordEnd(s string, i int) int {
	for i < len(s) && (isNameChar(s[i]) || s[i] == '-') {
		i++
	}
	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}
