package toon

import (
	"strings"
)

// Decode parses TOON text into a Value with default options.
func Decode(text string) (*Value, error) {
	return DecodeWithOptions(text, DefaultDecodeOptions())
}

// DecodeWithOptions parses TOON text into a Value. Failures are
// *SyntaxError (untokenizable line) or *SchemaError (structural
// mismatch, strict mode).
func DecodeWithOptions(text string, opts DecodeOptions) (*Value, error) {
	return DecodeLinesWithOptions(strings.Split(text, "\n"), opts)
}

// DecodeLines parses pre-split lines with default options.
func DecodeLines(lines []string) (*Value, error) {
	return DecodeLinesWithOptions(lines, DefaultDecodeOptions())
}

// DecodeLinesWithOptions parses pre-split lines.
func DecodeLinesWithOptions(lines []string, opts DecodeOptions) (*Value, error) {
	return decodeFrom(&sliceSource{lines: lines}, opts)
}

// ============================================================
// Line cursor
// ============================================================

// parsedLine is one non-blank input line with indentation resolved.
type parsedLine struct {
	content string // after indentation, trailing whitespace trimmed
	depth   int    // indent / opts.Indent
	num     int    // 1-based line number
}

// cursor pulls lines one at a time from a lineSource. Its lookahead is a
// single line, so memory use is bounded by nesting depth, not document
// size.
type cursor struct {
	src  lineSource
	opts DecodeOptions

	raw    string // raw one-line lookahead (for block scalars)
	rawNum int
	hasRaw bool
	eof    bool

	parsed *parsedLine // parsed non-blank lookahead
	n      int         // lines pulled so far
}

func (c *cursor) peekRaw() (string, int, bool, error) {
	if c.hasRaw {
		return c.raw, c.rawNum, true, nil
	}
	if c.eof {
		return "", 0, false, nil
	}
	line, ok, err := c.src.nextLine()
	if err != nil {
		return "", 0, false, err
	}
	if !ok {
		c.eof = true
		return "", 0, false, nil
	}
	c.n++
	c.raw, c.rawNum, c.hasRaw = line, c.n, true
	return c.raw, c.rawNum, true, nil
}

func (c *cursor) consumeRaw() {
	c.hasRaw = false
}

// peek returns the next non-blank line without consuming it.
func (c *cursor) peek() (*parsedLine, error) {
	if c.parsed != nil {
		return c.parsed, nil
	}
	for {
		raw, num, ok, err := c.peekRaw()
		if err != nil || !ok {
			return nil, err
		}
		pl, err := c.parseLine(raw, num)
		if err != nil {
			return nil, err
		}
		c.consumeRaw()
		if pl.content == "" {
			continue
		}
		c.parsed = pl
		return pl, nil
	}
}

func (c *cursor) advance() (*parsedLine, error) {
	pl, err := c.peek()
	c.parsed = nil
	return pl, err
}

// peekAtDepth returns the next line only if it sits at the given depth.
func (c *cursor) peekAtDepth(depth int) (*parsedLine, error) {
	pl, err := c.peek()
	if err != nil || pl == nil || pl.depth != depth {
		return nil, err
	}
	return pl, nil
}

func (c *cursor) parseLine(raw string, num int) (*parsedLine, error) {
	stripped := strings.TrimLeft(raw, " ")
	indent := len(raw) - len(stripped)
	content := strings.TrimRight(stripped, " \t\r")
	if content == "" {
		return &parsedLine{num: num}, nil
	}
	if c.opts.Strict {
		if stripped[0] == '\t' {
			return nil, syntaxErrf(num, "tab in indentation (use spaces)")
		}
		if indent%c.opts.Indent != 0 {
			return nil, syntaxErrf(num, "indentation %d is not a multiple of %d", indent, c.opts.Indent)
		}
	}
	return &parsedLine{content: content, depth: indent / c.opts.Indent, num: num}, nil
}

// ============================================================
// Decoder
// ============================================================

type decoder struct {
	cur  *cursor
	opts DecodeOptions
}

func decodeFrom(src lineSource, opts DecodeOptions) (*Value, error) {
	opts = opts.normalized()
	d := &decoder{cur: &cursor{src: src, opts: opts}, opts: opts}

	v, err := d.root()
	if err != nil {
		return nil, err
	}
	if opts.Strict {
		pl, err := d.cur.peek()
		if err != nil {
			return nil, err
		}
		if pl != nil {
			return nil, syntaxErrf(pl.num, "unexpected content after document")
		}
	}
	return v, nil
}

func (d *decoder) root() (*Value, error) {
	pl, err := d.cur.peek()
	if err != nil {
		return nil, err
	}
	if pl == nil {
		return Null(), nil
	}

	if strings.HasPrefix(pl.content, "[") {
		return d.rootArray()
	}

	if findUnquotedColon(pl.content) == -1 {
		// A single scalar line is a scalar document.
		if _, err := d.cur.advance(); err != nil {
			return nil, err
		}
		next, err := d.cur.peekAtDepth(0)
		if err != nil {
			return nil, err
		}
		if next == nil {
			return parseScalar(pl.content, d.opts.Strict, pl.num)
		}
		return nil, syntaxErrf(pl.num, "expected key: value or array header")
	}

	return d.object(0)
}

func (d *decoder) rootArray() (*Value, error) {
	pl, err := d.cur.advance()
	if err != nil {
		return nil, err
	}
	hdr, ok, err := parseArrayHeader(pl.content, pl.num)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, syntaxErrf(pl.num, "invalid array header: %s", pl.content)
	}
	return d.arrayBody("", hdr, 1, pl.num)
}

// arrayBody decodes the body of an array whose header has been consumed.
// bodyDepth is where list items or tabular rows live.
func (d *decoder) arrayBody(key string, hdr *arrayHeader, bodyDepth, headerNum int) (*Value, error) {
	switch {
	case len(hdr.fields) > 0:
		return d.tabularRows(key, hdr, bodyDepth, headerNum)
	case hdr.rest != "":
		return d.inlineValues(key, hdr, headerNum)
	default:
		return d.listItems(key, hdr, bodyDepth, headerNum)
	}
}

// ============================================================
// Objects
// ============================================================

func (d *decoder) object(depth int) (*Value, error) {
	obj := Obj()
	for {
		pl, err := d.cur.peekAtDepth(depth)
		if err != nil {
			return nil, err
		}
		if pl == nil {
			break
		}
		if _, err := d.cur.advance(); err != nil {
			return nil, err
		}
		key, quoted, val, err := d.keyValue(pl, depth)
		if err != nil {
			return nil, err
		}
		if err := d.insert(obj, key, quoted, val, pl.num); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// keyValue decodes one member line, consuming any child lines the value
// owns (nested objects, array bodies, block scalars).
func (d *decoder) keyValue(pl *parsedLine, depth int) (string, bool, *Value, error) {
	hdr, ok, err := parseArrayHeader(pl.content, pl.num)
	if err != nil {
		return "", false, nil, err
	}
	if ok {
		key, quoted, err := parseKey(hdr.keyRaw, pl.num)
		if err != nil {
			return "", false, nil, err
		}
		val, err := d.arrayBody(key, hdr, depth+1, pl.num)
		return key, quoted, val, err
	}

	colon := findUnquotedColon(pl.content)
	if colon == -1 {
		return "", false, nil, syntaxErrf(pl.num, "expected colon in key: value")
	}
	keyPart := strings.TrimSpace(pl.content[:colon])
	valuePart := strings.TrimSpace(pl.content[colon+1:])

	key, quoted, err := parseKey(keyPart, pl.num)
	if err != nil {
		return "", false, nil, err
	}

	if valuePart != "" {
		if isBlockIndicator(valuePart) {
			val, err := d.blockScalar(depth, valuePart)
			return key, quoted, val, err
		}
		val, err := parseScalar(valuePart, d.opts.Strict, pl.num)
		return key, quoted, val, err
	}

	// No inline value: a deeper block is a nested object, otherwise the
	// member is an empty object.
	next, err := d.cur.peek()
	if err != nil {
		return "", false, nil, err
	}
	if next != nil && next.depth > depth {
		val, err := d.object(depth + 1)
		return key, quoted, val, err
	}
	return key, quoted, Obj(), nil
}

// ============================================================
// Arrays
// ============================================================

func (d *decoder) inlineValues(key string, hdr *arrayHeader, num int) (*Value, error) {
	arr := Arr()
	if hdr.rest == "" {
		if d.opts.Strict && hdr.length > 0 {
			return nil, schemaErrf(num, key, "inline array length mismatch: declared %d, got 0", hdr.length)
		}
		return arr, nil
	}
	for _, token := range splitDelimited(hdr.rest, hdr.delim) {
		v, err := parseScalar(token, d.opts.Strict, num)
		if err != nil {
			return nil, err
		}
		arr.Append(v)
	}
	if d.opts.Strict && arr.Len() != hdr.length {
		return nil, schemaErrf(num, key, "inline array length mismatch: declared %d, got %d", hdr.length, arr.Len())
	}
	return arr, nil
}

func (d *decoder) listItems(key string, hdr *arrayHeader, depth, headerNum int) (*Value, error) {
	arr := Arr()
	for arr.Len() < hdr.length {
		pl, err := d.cur.peekAtDepth(depth)
		if err != nil {
			return nil, err
		}
		if pl == nil {
			break
		}
		if pl.content != "-" && !strings.HasPrefix(pl.content, "- ") {
			break
		}
		if _, err := d.cur.advance(); err != nil {
			return nil, err
		}
		item, err := d.listItem(pl, depth)
		if err != nil {
			return nil, err
		}
		arr.Append(item)
	}
	if d.opts.Strict {
		if arr.Len() != hdr.length {
			return nil, schemaErrf(headerNum, key, "array length mismatch: declared %d, got %d", hdr.length, arr.Len())
		}
		pl, err := d.cur.peekAtDepth(depth)
		if err != nil {
			return nil, err
		}
		if pl != nil && (pl.content == "-" || strings.HasPrefix(pl.content, "- ")) {
			return nil, schemaErrf(pl.num, key, "array has more items than the declared %d", hdr.length)
		}
	}
	return arr, nil
}

func (d *decoder) listItem(pl *parsedLine, depth int) (*Value, error) {
	if pl.content == "-" {
		return d.dashBlock(depth)
	}

	itemContent := strings.TrimSpace(pl.content[2:])
	if itemContent == "" {
		return d.dashBlock(depth)
	}

	hdr, ok, err := parseArrayHeader(itemContent, pl.num)
	if err != nil {
		return nil, err
	}
	if ok {
		return d.listItemArray(hdr, depth, pl.num)
	}

	if colon := findUnquotedColon(itemContent); colon != -1 {
		return d.listItemObject(itemContent, colon, depth, pl.num)
	}

	return parseScalar(itemContent, d.opts.Strict, pl.num)
}

// dashBlock decodes a bare "-" item: a nested object when deeper lines
// follow, an empty object otherwise.
func (d *decoder) dashBlock(depth int) (*Value, error) {
	next, err := d.cur.peek()
	if err != nil {
		return nil, err
	}
	if next != nil && next.depth > depth {
		return d.object(depth + 1)
	}
	return Obj(), nil
}

// listItemArray decodes a list item whose dash line carries an array
// header. With a key the item is an object whose first field is that
// array and whose body sits two levels below the dash; a bare header's
// body sits one level below.
func (d *decoder) listItemArray(hdr *arrayHeader, depth, num int) (*Value, error) {
	key, quoted, err := parseKey(hdr.keyRaw, num)
	if err != nil {
		return nil, err
	}

	bodyDepth := depth + 2
	if key == "" {
		bodyDepth = depth + 1
	}
	arr, err := d.arrayBody(key, hdr, bodyDepth, num)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return arr, nil
	}

	obj := Obj()
	if err := d.insert(obj, key, quoted, arr, num); err != nil {
		return nil, err
	}
	if err := d.remainingFields(obj, depth); err != nil {
		return nil, err
	}
	return obj, nil
}

// listItemObject decodes a list item whose first field rides the dash
// line; the remaining fields follow one level below.
func (d *decoder) listItemObject(itemContent string, colon, depth, num int) (*Value, error) {
	keyPart := strings.TrimSpace(itemContent[:colon])
	valuePart := strings.TrimSpace(itemContent[colon+1:])

	// "key: [N]..." is an array header split by the colon.
	if strings.HasPrefix(valuePart, "[") {
		hdr, ok, err := parseArrayHeader(keyPart+valuePart, num)
		if err != nil {
			return nil, err
		}
		if ok {
			return d.listItemArray(hdr, depth, num)
		}
	}

	key, quoted, err := parseKey(keyPart, num)
	if err != nil {
		return nil, err
	}

	var val *Value
	if valuePart != "" {
		val, err = parseScalar(valuePart, d.opts.Strict, num)
		if err != nil {
			return nil, err
		}
	} else {
		next, err := d.cur.peek()
		if err != nil {
			return nil, err
		}
		if next != nil && next.depth > depth+1 {
			val, err = d.object(depth + 2)
			if err != nil {
				return nil, err
			}
		} else {
			val = Obj()
		}
	}

	obj := Obj()
	if err := d.insert(obj, key, quoted, val, num); err != nil {
		return nil, err
	}
	if err := d.remainingFields(obj, depth); err != nil {
		return nil, err
	}
	return obj, nil
}

// remainingFields consumes the fields of a list-item object that follow
// the dash line, one level below it.
func (d *decoder) remainingFields(obj *Value, depth int) error {
	for {
		pl, err := d.cur.peekAtDepth(depth + 1)
		if err != nil {
			return err
		}
		if pl == nil {
			return nil
		}
		if _, err := d.cur.advance(); err != nil {
			return err
		}
		key, quoted, val, err := d.keyValue(pl, depth+1)
		if err != nil {
			return err
		}
		if err := d.insert(obj, key, quoted, val, pl.num); err != nil {
			return err
		}
	}
}

func (d *decoder) tabularRows(key string, hdr *arrayHeader, depth, headerNum int) (*Value, error) {
	arr := Arr()
	for arr.Len() < hdr.length {
		pl, err := d.cur.peekAtDepth(depth)
		if err != nil {
			return nil, err
		}
		if pl == nil {
			break
		}
		if _, err := d.cur.advance(); err != nil {
			return nil, err
		}

		values := splitDelimited(pl.content, hdr.delim)
		if len(values) != len(hdr.fields) {
			if d.opts.Strict {
				return nil, schemaErrf(pl.num, key, "row has %d values, header declares %d fields",
					len(values), len(hdr.fields))
			}
			for len(values) < len(hdr.fields) {
				values = append(values, "")
			}
			values = values[:len(hdr.fields)]
		}

		row := Obj()
		for i, field := range hdr.fields {
			cell, err := parseScalar(values[i], d.opts.Strict, pl.num)
			if err != nil {
				return nil, err
			}
			if err := d.insert(row, field, false, cell, pl.num); err != nil {
				return nil, err
			}
		}
		arr.Append(row)
	}
	if d.opts.Strict {
		if arr.Len() != hdr.length {
			return nil, schemaErrf(headerNum, key, "tabular array length mismatch: declared %d, got %d",
				hdr.length, arr.Len())
		}
		// Nothing but rows lives at row depth, so a leftover line here is
		// a row past the declared count.
		pl, err := d.cur.peekAtDepth(depth)
		if err != nil {
			return nil, err
		}
		if pl != nil {
			return nil, schemaErrf(pl.num, key, "tabular array has more rows than the declared %d", hdr.length)
		}
	}
	return arr, nil
}

// ============================================================
// Block scalars
// ============================================================

// blockScalar decodes a literal (|) or folded (>) block with optional
// strip (-) or keep (+) chomping. The first content line fixes the block
// indent; a shallower non-blank line ends the block. Decode-only: the
// encoder always emits escaped single-line strings.
func (d *decoder) blockScalar(depth int, indicator string) (*Value, error) {
	literal := indicator[0] == '|'
	chomp := byte(0) // clip
	if c := indicator[len(indicator)-1]; c == '-' || c == '+' {
		chomp = c
	}

	minIndent := (depth + 1) * d.opts.Indent
	blockIndent := -1
	var lines []string

	for {
		raw, _, ok, err := d.cur.peekRaw()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		stripped := strings.TrimLeft(raw, " ")
		curIndent := len(raw) - len(stripped)
		blank := strings.TrimSpace(stripped) == ""

		if blockIndent == -1 {
			if blank {
				d.cur.consumeRaw()
				lines = append(lines, "")
				continue
			}
			if curIndent < minIndent {
				break
			}
			blockIndent = curIndent
		}
		if blank {
			d.cur.consumeRaw()
			lines = append(lines, "")
			continue
		}
		if curIndent < blockIndent {
			break
		}
		d.cur.consumeRaw()
		lines = append(lines, strings.TrimRight(raw[blockIndent:], "\r\n"))
	}

	switch chomp {
	case '-':
		for len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
	case 0:
		for len(lines) > 1 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
	}

	var result string
	if literal {
		result = strings.Join(lines, "\n")
	} else {
		// Folded: single newlines become spaces, blank lines stay breaks.
		var parts []string
		var para []string
		for _, l := range lines {
			if l == "" {
				if len(para) > 0 {
					parts = append(parts, strings.Join(para, " "))
					para = nil
				}
				parts = append(parts, "")
			} else {
				para = append(para, l)
			}
		}
		if len(para) > 0 {
			parts = append(parts, strings.Join(para, " "))
		}
		result = strings.Join(parts, "\n")
	}

	if result != "" && chomp != '-' {
		result += "\n"
	}
	return Str(result), nil
}
