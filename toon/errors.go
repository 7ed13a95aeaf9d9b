package toon

import "fmt"

// SyntaxError reports a line that cannot be tokenized: bad indentation,
// unterminated quote, invalid escape, malformed array header, or a
// malformed numeric literal in strict mode.
type SyntaxError struct {
	Line    int // 1-based line number, 0 if unknown
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("toon: syntax error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("toon: syntax error: %s", e.Message)
}

// SchemaError reports a structural mismatch: declared array length vs
// actual children, tabular row field count vs header, or a duplicate key
// within one object scope.
type SchemaError struct {
	Line    int    // 1-based line number, 0 if unknown
	Key     string // offending key or array key, may be empty
	Message string
}

func (e *SchemaError) Error() string {
	msg := e.Message
	if e.Key != "" {
		msg = fmt.Sprintf("%s (key %q)", msg, e.Key)
	}
	if e.Line > 0 {
		return fmt.Sprintf("toon: schema error at line %d: %s", e.Line, msg)
	}
	return fmt.Sprintf("toon: schema error: %s", msg)
}

// EncodingError reports an invalid option combination or an input value
// outside the supported scalar/container set.
type EncodingError struct {
	Message string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("toon: encoding error: %s", e.Message)
}

func syntaxErrf(line int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Line: line, Message: fmt.Sprintf(format, args...)}
}

func schemaErrf(line int, key, format string, args ...any) *SchemaError {
	return &SchemaError{Line: line, Key: key, Message: fmt.Sprintf(format, args...)}
}
