package toon

import "strings"

// ============================================================
// Lexical rules: quoting, escaping, literals
// ============================================================
//
// TOON strings carry exactly five escape sequences inside quotes:
//
//   \\  backslash
//   \"  double quote
//   \n  newline
//   \r  carriage return
//   \t  tab
//
// Everything else passes through literally. A string may stay unquoted
// only when no rule below would make it ambiguous on the wire.

// Reserved literals that can never be unquoted strings.
var reservedLiterals = map[string]bool{
	"true":  true,
	"false": true,
	"null":  true,
}

// Structural characters that force quoting anywhere in a string.
const structuralChars = ":[]{}"

// isBlockIndicator reports whether a token is a block-scalar header. The
// decoder intercepts these after "key:", so string values equal to one
// must be quoted.
func isBlockIndicator(s string) bool {
	switch s {
	case "|", ">", "|-", ">-", "|+", ">+":
		return true
	}
	return false
}

// escapeString escapes a string for quoted output (without the quotes).
func escapeString(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// unescapeString reverses escapeString on quoted string content.
// Unknown escapes and a trailing backslash are errors.
func unescapeString(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", syntaxErrf(0, "backslash at end of string")
		}
		switch s[i] {
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		default:
			return "", syntaxErrf(0, "invalid escape sequence \\%c", s[i])
		}
	}
	return sb.String(), nil
}

// isSafeUnquoted reports whether a string can be written without quotes
// under the active delimiter.
func isSafeUnquoted(s string, delim Delimiter) bool {
	if s == "" {
		return false
	}
	if s != strings.TrimSpace(s) {
		return false
	}
	if reservedLiterals[strings.ToLower(s)] {
		return false
	}
	if isBlockIndicator(s) {
		return false
	}
	if isNumericLike(s) {
		return false
	}
	if strings.ContainsAny(s, structuralChars) {
		return false
	}
	if strings.ContainsAny(s, "\"\\") {
		return false
	}
	if strings.ContainsAny(s, "\n\r\t") {
		return false
	}
	if strings.Contains(s, string(delim)) {
		return false
	}
	if s[0] == '-' {
		return false
	}
	return true
}

// isNumericLike reports whether a token is made of number characters and
// therefore competes with number literals on the wire. It is a superset
// of the valid literals: "007" is numeric-like but not valid, so the
// encoder quotes it and the strict decoder rejects it bare.
func isNumericLike(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case '-', '+', '.':
	default:
		if s[0] < '0' || s[0] > '9' {
			return false
		}
	}
	digits := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digits = true
		case c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E':
		default:
			return false
		}
	}
	return digits
}

// isValidNumberLiteral validates a decimal literal: optional minus sign,
// integer part without leading zeros (except exactly "0"), optional
// fraction with at least one digit, optional exponent.
func isValidNumberLiteral(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	// Integer part
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	n := i - start
	if n == 0 {
		return false
	}
	if n > 1 && s[start] == '0' {
		return false
	}
	// Fraction
	if i < len(s) && s[i] == '.' {
		i++
		start = i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}
	// Exponent
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		start = i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == start {
			return false
		}
	}
	return i == len(s)
}

// isIdentifierSegment reports whether a string is a plain identifier
// segment. Only such segments participate in key folding and path
// expansion.
func isIdentifierSegment(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	if !(c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if !(c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}

// isExpandablePath reports whether a dotted key expands into nested
// objects: every segment must be an identifier segment.
func isExpandablePath(key string) bool {
	if !strings.Contains(key, ".") {
		return false
	}
	for _, seg := range strings.Split(key, ".") {
		if !isIdentifierSegment(seg) {
			return false
		}
	}
	return true
}

// ============================================================
// Line scanning helpers
// ============================================================

// findUnquotedColon returns the index of the first colon outside quotes,
// or -1.
func findUnquotedColon(line string) int {
	inQuotes := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			if inQuotes && i+1 < len(line) {
				i++
			}
		case '"':
			inQuotes = !inQuotes
		case ':':
			if !inQuotes {
				return i
			}
		}
	}
	return -1
}

// findClosingQuote returns the index of the quote closing the one at
// start, or -1.
func findClosingQuote(s string, start int) int {
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

// splitDelimited splits a string on the delimiter, respecting quoted
// sections. Segments are trimmed but keep their quotes.
func splitDelimited(s string, delim Delimiter) []string {
	d := delim[0]
	var result []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && inQuotes && i+1 < len(s):
			cur.WriteByte(c)
			i++
			cur.WriteByte(s[i])
		case c == '"':
			inQuotes = !inQuotes
			cur.WriteByte(c)
		case c == d && !inQuotes:
			result = append(result, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	result = append(result, strings.TrimSpace(cur.String()))
	return result
}
