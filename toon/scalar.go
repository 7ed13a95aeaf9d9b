package toon

// encodeScalar renders a scalar value as its wire text: the bare literal
// for null/bool/number, a possibly quoted string otherwise.
func encodeScalar(v *Value, delim Delimiter) (string, error) {
	if v.IsNull() {
		return "null", nil
	}
	switch v.kind {
	case KindBool:
		if v.boolVal {
			return "true", nil
		}
		return "false", nil
	case KindNumber:
		return v.numVal, nil
	case KindString:
		return encodeStringLiteral(v.strVal, delim), nil
	default:
		return "", &EncodingError{Message: "cannot encode " + v.kind.String() + " as scalar"}
	}
}

// encodeStringLiteral renders a string, quoting and escaping when the
// quoting predicate requires it.
func encodeStringLiteral(s string, delim Delimiter) string {
	if isSafeUnquoted(s, delim) {
		return s
	}
	return `"` + escapeString(s) + `"`
}

// encodeKey renders an object key or tabular field name. Keys also quote
// on internal spaces, which isSafeUnquoted alone would admit.
func encodeKey(key string, delim Delimiter) string {
	if key == "" {
		return `""`
	}
	for i := 0; i < len(key); i++ {
		if key[i] == ' ' {
			return `"` + escapeString(key) + `"`
		}
	}
	if isSafeUnquoted(key, delim) {
		return key
	}
	return `"` + escapeString(key) + `"`
}

// parseScalar parses one scalar token. Strict mode turns malformed
// numeric-like literals into syntax errors; otherwise they fall back to
// strings.
func parseScalar(token string, strict bool, line int) (*Value, error) {
	if token == "" {
		return Str(""), nil
	}
	if token[0] == '"' {
		s, err := parseStringLiteral(token, line)
		if err != nil {
			return nil, err
		}
		return Str(s), nil
	}
	switch token {
	case "null":
		return Null(), nil
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}
	if isNumericLike(token) {
		if isValidNumberLiteral(token) {
			return &Value{kind: KindNumber, numVal: token}, nil
		}
		if strict {
			return nil, syntaxErrf(line, "malformed number literal %q", token)
		}
	}
	return Str(token), nil
}

// parseStringLiteral parses a quoted token into its string content.
// Content after the closing quote is ignored, matching the reference
// grammar.
func parseStringLiteral(token string, line int) (string, error) {
	end := findClosingQuote(token, 0)
	if end == -1 {
		return "", syntaxErrf(line, "unterminated string %s", token)
	}
	s, err := unescapeString(token[1:end])
	if err != nil {
		return "", syntaxErrf(line, "%s", err.(*SyntaxError).Message)
	}
	return s, nil
}

// parseKey parses an object key or field name, unquoting when needed.
// The returned flag reports whether the key was quoted in source.
func parseKey(key string, line int) (string, bool, error) {
	if key == "" {
		return "", false, nil
	}
	if key[0] == '"' && len(key) > 1 && key[len(key)-1] == '"' {
		s, err := unescapeString(key[1 : len(key)-1])
		if err != nil {
			return "", false, syntaxErrf(line, "%s", err.(*SyntaxError).Message)
		}
		return s, true, nil
	}
	return key, false, nil
}
