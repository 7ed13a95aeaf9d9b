package toon

import (
	"regexp"
	"strconv"
	"strings"
)

// Array header: key[N<delim?>]{fields}: rest
//
// The key is optional (root arrays, dash lines) and may be quoted. A
// non-comma delimiter is recorded inside the bracket, e.g. users[2|].
var arrayHeaderRE = regexp.MustCompile(
	`^((?:[^:\[\]{}"]+|"(?:[^"\\]|\\.)*")?)` + // optional key, possibly quoted
		`\[(\d+)([,\t|])?\]` + // [N<delim?>]
		`(?:\{([^}]*)\})?` + // optional {fields}
		`:(.*)$`) // colon and rest

// arrayHeader is a parsed array header line.
type arrayHeader struct {
	keyRaw string    // key text as written, "" for bare headers
	length int       // declared element count
	delim  Delimiter // delimiter for this array's values
	fields []string  // decoded field names, empty for non-tabular
	rest   string    // trimmed text after the colon
}

// parseArrayHeader matches content against the array header grammar.
// A non-match is not an error; the line is then an ordinary key-value.
func parseArrayHeader(content string, num int) (*arrayHeader, bool, error) {
	m := arrayHeaderRE.FindStringSubmatch(content)
	if m == nil {
		return nil, false, nil
	}

	length, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, false, syntaxErrf(num, "invalid array length %q", m[2])
	}

	delim := DelimComma
	if m[3] != "" {
		delim = Delimiter(m[3])
	}

	hdr := &arrayHeader{
		keyRaw: strings.TrimSpace(m[1]),
		length: length,
		delim:  delim,
		rest:   strings.TrimSpace(m[5]),
	}

	if m[4] != "" {
		for _, f := range splitDelimited(m[4], delim) {
			name, _, err := parseKey(f, num)
			if err != nil {
				return nil, false, err
			}
			hdr.fields = append(hdr.fields, name)
		}
	}

	return hdr, true, nil
}
