package graph

import (
	"strconv"
	"strings"
)

// quoteWideInts rewrites integer literals that do not fit in 32 bits as string
// literals. graphql-go parses every inline Int literal as int32 and panics on
// wider values, which rules out inline epoch-millisecond dates; Date accepts
// the quoted form. Int arguments reject a quoted literal during validation, as
// they reject an out-of-range one.
//
// Strings, block strings, comments and names are copied unchanged.
func quoteWideInts(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := len(query)
	for i := 0; i < n; {
		c := query[i]
		switch {
		case strings.HasPrefix(query[i:], `"""`):
			end := blockStringEnd(query, i+3)
			b.WriteString(query[i:end])
			i = end
		case c == '"':
			end := stringEnd(query, i+1)
			b.WriteString(query[i:end])
			i = end
		case c == '#':
			end := strings.IndexByte(query[i:], '\n')
			if end < 0 {
				end = n
			} else {
				end += i
			}
			b.WriteString(query[i:end])
			i = end
		case isNameStart(c):
			j := i + 1
			for j < n && isNameContinue(query[j]) {
				j++
			}
			b.WriteString(query[i:j])
			i = j
		case isDigit(c) || (c == '-' && i+1 < n && isDigit(query[i+1])):
			j := i + 1
			for j < n && isDigit(query[j]) {
				j++
			}
			if j < n && (query[j] == '.' || query[j] == 'e' || query[j] == 'E') {
				// Float literal; floats are parsed as float64 already.
				for j < n && isFloatChar(query[j]) {
					j++
				}
				b.WriteString(query[i:j])
				i = j
				continue
			}
			lit := query[i:j]
			if _, err := strconv.ParseInt(lit, 10, 32); err != nil {
				b.WriteByte('"')
				b.WriteString(lit)
				b.WriteByte('"')
			} else {
				b.WriteString(lit)
			}
			i = j
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// stringEnd returns the index just past the closing quote of a string whose
// body starts at i, or len(s) when it is unterminated.
func stringEnd(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case '\\':
			i += 2
		case '"', '\n':
			return i + 1
		default:
			i++
		}
	}
	return len(s)
}

// blockStringEnd is stringEnd for """block strings""", where \""" is an escape.
func blockStringEnd(s string, i int) int {
	for i < len(s) {
		if strings.HasPrefix(s[i:], `\"""`) {
			i += 4
			continue
		}
		if strings.HasPrefix(s[i:], `"""`) {
			return i + 3
		}
		i++
	}
	return len(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameContinue(c byte) bool { return isNameStart(c) || isDigit(c) }

func isFloatChar(c byte) bool {
	return isDigit(c) || c == '.' || c == 'e' || c == 'E' || c == '+' || c == '-'
}
