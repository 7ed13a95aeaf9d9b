package toon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSafeUnquoted(t *testing.T) {
	tests := []struct {
		name  string
		input string
		delim Delimiter
		safe  bool
	}{
		{"plain word", "hello", DelimComma, true},
		{"internal space", "hello world", DelimComma, true},
		{"empty", "", DelimComma, false},
		{"leading space", " x", DelimComma, false},
		{"trailing space", "x ", DelimComma, false},
		{"reserved true", "true", DelimComma, false},
		{"reserved mixed case", "True", DelimComma, false},
		{"reserved null", "null", DelimComma, false},
		{"numeric", "42", DelimComma, false},
		{"numeric-like invalid", "007", DelimComma, false},
		{"colon", "a:b", DelimComma, false},
		{"bracket", "a[b", DelimComma, false},
		{"brace", "a}b", DelimComma, false},
		{"quote", `a"b`, DelimComma, false},
		{"backslash", `a\b`, DelimComma, false},
		{"newline", "a\nb", DelimComma, false},
		{"tab char", "a\tb", DelimComma, false},
		{"active comma", "a,b", DelimComma, false},
		{"comma under pipe delim", "a,b", DelimPipe, true},
		{"pipe under pipe delim", "a|b", DelimPipe, false},
		{"leading dash", "-x", DelimComma, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.safe, isSafeUnquoted(tt.input, tt.delim))
		})
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	inputs := []string{
		"plain",
		`back\slash`,
		`quo"te`,
		"new\nline",
		"car\rreturn",
		"ta\tb",
		"mixed \\ \" \n \r \t end",
		"unicode: héllo ☃",
	}
	for _, in := range inputs {
		out, err := unescapeString(escapeString(in))
		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestUnescapeInvalid(t *testing.T) {
	_, err := unescapeString(`bad \x escape`)
	require.Error(t, err)

	_, err = unescapeString(`trailing \`)
	require.Error(t, err)
}

func TestIsValidNumberLiteral(t *testing.T) {
	valid := []string{"0", "-0", "7", "-13", "3.14", "0.5", "-0.5", "1e3", "1E3", "1e+3", "1.5e-10", "1.50"}
	for _, s := range valid {
		assert.True(t, isValidNumberLiteral(s), s)
	}

	invalid := []string{"", "007", "01", "+1", ".5", "1.", "1e", "1e+", "--1", "1.2.3", "0x10", "1 "}
	for _, s := range invalid {
		assert.False(t, isValidNumberLiteral(s), s)
	}
}

func TestIsNumericLike(t *testing.T) {
	// Numeric-like is a strict superset of valid literals.
	like := []string{"0", "007", "+1", ".5", "1.", "1e", "-", "1-2", "1..2"}
	for _, s := range like {
		if s == "-" {
			// No digit at all.
			assert.False(t, isNumericLike(s), s)
			continue
		}
		assert.True(t, isNumericLike(s), s)
	}

	notLike := []string{"", "abc", "e5", "1x", "NaN", "Infinity"}
	for _, s := range notLike {
		assert.False(t, isNumericLike(s), s)
	}
}

func TestSplitDelimited(t *testing.T) {
	tests := []struct {
		name  string
		input string
		delim Delimiter
		want  []string
	}{
		{"simple", "a,b,c", DelimComma, []string{"a", "b", "c"}},
		{"trims cells", " a , b ", DelimComma, []string{"a", "b"}},
		{"quoted comma", `"a,b",c`, DelimComma, []string{`"a,b"`, "c"}},
		{"escaped quote inside", `"a\",b",c`, DelimComma, []string{`"a\",b"`, "c"}},
		{"trailing empty", "a,b,", DelimComma, []string{"a", "b", ""}},
		{"single", "a", DelimComma, []string{"a"}},
		{"pipe", "a|b", DelimPipe, []string{"a", "b"}},
		{"tab", "a\tb", DelimTab, []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitDelimited(tt.input, tt.delim))
		})
	}
}

func TestFindUnquotedColon(t *testing.T) {
	assert.Equal(t, 3, findUnquotedColon("key: value"))
	assert.Equal(t, -1, findUnquotedColon("no colon here"))
	assert.Equal(t, 7, findUnquotedColon(`"a:b:c": 1`))
	assert.Equal(t, -1, findUnquotedColon(`"a:b"`))
}

func TestIsExpandablePath(t *testing.T) {
	assert.True(t, isExpandablePath("a.b"))
	assert.True(t, isExpandablePath("server.http.port_v2"))
	assert.False(t, isExpandablePath("plain"))
	assert.False(t, isExpandablePath("a..b"))
	assert.False(t, isExpandablePath(".a"))
	assert.False(t, isExpandablePath("a.1b"))
	assert.False(t, isExpandablePath("a.b-c"))
}
