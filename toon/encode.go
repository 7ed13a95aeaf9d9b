package toon

import (
	"math"
	"strconv"
	"strings"
)

// Encode converts a Value to TOON text with default options.
func Encode(v *Value) string {
	text, err := EncodeWithOptions(v, DefaultEncodeOptions())
	if err != nil {
		// Default options always validate.
		panic(err)
	}
	return text
}

// EncodeWithOptions converts a Value to TOON text. It fails only on
// option misuse; well-formed Values never fail.
func EncodeWithOptions(v *Value, opts EncodeOptions) (string, error) {
	it, err := EncodeLinesWithOptions(v, opts)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	first := true
	for {
		line, ok := it.Next()
		if !ok {
			break
		}
		if !first {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)
		first = false
	}
	return sb.String(), nil
}

// EncodeLines returns a lazy line iterator with default options.
func EncodeLines(v *Value) *LineIter {
	it, err := EncodeLinesWithOptions(v, DefaultEncodeOptions())
	if err != nil {
		panic(err)
	}
	return it
}

// EncodeLinesWithOptions returns a lazy line iterator over the encoding
// of v. The iterator is single-pass and cannot be restarted; it must not
// be shared across consumers.
func EncodeLinesWithOptions(v *Value, opts EncodeOptions) (*LineIter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	e := &encoder{opts: opts}
	return &LineIter{stack: []lineWork{{expand: func() []lineWork {
		return e.root(v)
	}}}}, nil
}

// LineIter is a pull cursor over encoded lines. Each Next call advances
// the traversal by exactly one emitted line.
type LineIter struct {
	stack []lineWork
}

// lineWork is either a ready line or a deferred expansion of one node.
type lineWork struct {
	line   string
	expand func() []lineWork
}

// Next returns the next line, or false when the encoding is exhausted.
func (it *LineIter) Next() (string, bool) {
	for len(it.stack) > 0 {
		w := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]
		if w.expand != nil {
			items := w.expand()
			for i := len(items) - 1; i >= 0; i-- {
				it.stack = append(it.stack, items[i])
			}
			continue
		}
		return w.line, true
	}
	return "", false
}

// Collect drains the iterator into a slice.
func (it *LineIter) Collect() []string {
	var lines []string
	for {
		line, ok := it.Next()
		if !ok {
			return lines
		}
		lines = append(lines, line)
	}
}

// ============================================================
// Encoder
// ============================================================

type encoder struct {
	opts EncodeOptions
}

func (e *encoder) indent(depth int) string {
	return strings.Repeat(" ", e.opts.Indent*depth)
}

// scalar renders a scalar node; callers guarantee the kind.
func (e *encoder) scalar(v *Value) string {
	s, err := encodeScalar(v, e.opts.Delimiter)
	if err != nil {
		panic(err)
	}
	return s
}

func (e *encoder) key(k string) string {
	return encodeKey(k, e.opts.Delimiter)
}

func line(s string) lineWork {
	return lineWork{line: s}
}

func (e *encoder) root(v *Value) []lineWork {
	switch v.Kind() {
	case KindObject:
		return e.objectLines(v.objVal, 0)
	case KindArray:
		return e.arrayLines("", v.arrVal, 0)
	default:
		return []lineWork{line(e.scalar(v))}
	}
}

// objectLines encodes an object's members, one deferred expansion per
// member so the iterator stays lazy.
func (e *encoder) objectLines(fields []Field, depth int) []lineWork {
	work := make([]lineWork, 0, len(fields))
	for _, f := range fields {
		f := f
		work = append(work, lineWork{expand: func() []lineWork {
			if e.opts.KeyFolding == KeyFoldingSafe && e.canFold(f.Key, f.Value) {
				return e.foldedLines(f.Key, f.Value, depth)
			}
			return e.memberLines(f, depth)
		}})
	}
	return work
}

// memberLines encodes a single key-value member without folding.
func (e *encoder) memberLines(f Field, depth int) []lineWork {
	ind := e.indent(depth)
	key := e.key(f.Key)
	switch f.Value.Kind() {
	case KindObject:
		if f.Value.Len() == 0 {
			return []lineWork{line(ind + key + ":")}
		}
		children := f.Value.objVal
		return []lineWork{
			line(ind + key + ":"),
			{expand: func() []lineWork { return e.objectLines(children, depth+1) }},
		}
	case KindArray:
		return e.arrayLines(key, f.Value.arrVal, depth)
	default:
		return []lineWork{line(ind + key + ": " + e.scalar(f.Value))}
	}
}

// ============================================================
// Arrays
// ============================================================

// arrayLines encodes an array under an already-encoded key ("" at root)
// using the fixed representation precedence: inline, tabular, list.
func (e *encoder) arrayLines(encodedKey string, arr []*Value, depth int) []lineWork {
	ind := e.indent(depth)
	switch {
	case len(arr) == 0:
		return []lineWork{line(ind + encodedKey + e.bracket(0) + ":")}
	case isInlineArray(arr):
		return []lineWork{line(ind + encodedKey + e.bracket(len(arr)) + ": " + e.joinScalars(arr))}
	case isTabularArray(arr):
		fields := tabularFields(arr[0])
		work := []lineWork{line(ind + e.tabularHeader(encodedKey, len(arr), fields))}
		return append(work, e.tabularRows(arr, fields, depth+1)...)
	default:
		work := []lineWork{line(ind + encodedKey + e.bracket(len(arr)) + ":")}
		return append(work, e.listItems(arr, depth+1)...)
	}
}

// bracket renders [N], recording non-comma delimiters inside the bracket.
func (e *encoder) bracket(n int) string {
	if e.opts.Delimiter == DelimComma {
		return "[" + strconv.Itoa(n) + "]"
	}
	return "[" + strconv.Itoa(n) + string(e.opts.Delimiter) + "]"
}

func (e *encoder) tabularHeader(encodedKey string, n int, fields []string) string {
	encoded := make([]string, len(fields))
	for i, f := range fields {
		encoded[i] = e.key(f)
	}
	return encodedKey + e.bracket(n) + "{" + strings.Join(encoded, string(e.opts.Delimiter)) + "}:"
}

func (e *encoder) joinScalars(arr []*Value) string {
	parts := make([]string, len(arr))
	for i, v := range arr {
		parts[i] = e.scalar(v)
	}
	return strings.Join(parts, string(e.opts.Delimiter))
}

func (e *encoder) tabularRows(arr []*Value, fields []string, depth int) []lineWork {
	work := make([]lineWork, 0, len(arr))
	for _, row := range arr {
		row := row
		work = append(work, lineWork{expand: func() []lineWork {
			cells := make([]string, len(fields))
			for i, f := range fields {
				cells[i] = e.scalar(row.Get(f))
			}
			return []lineWork{line(e.indent(depth) + strings.Join(cells, string(e.opts.Delimiter)))}
		}})
	}
	return work
}

// ============================================================
// List items
// ============================================================

func (e *encoder) listItems(arr []*Value, depth int) []lineWork {
	work := make([]lineWork, 0, len(arr))
	for _, item := range arr {
		item := item
		work = append(work, lineWork{expand: func() []lineWork {
			return e.listItem(item, depth)
		}})
	}
	return work
}

// listItem encodes one "- " block. An object element puts its first
// field on the dash line; tabular headers ride the dash line with their
// rows two levels deeper.
func (e *encoder) listItem(item *Value, depth int) []lineWork {
	ind := e.indent(depth)
	switch item.Kind() {
	case KindObject:
		if item.Len() == 0 {
			return []lineWork{line(ind + "-")}
		}
		return e.objectListItem(item.objVal, depth)
	case KindArray:
		arr := item.arrVal
		if isInlineArray(arr) {
			return []lineWork{line(ind + "- " + e.bracket(len(arr)) + ": " + e.joinScalars(arr))}
		}
		work := []lineWork{line(ind + "- " + e.bracket(len(arr)) + ":")}
		return append(work, e.listItems(arr, depth+1)...)
	default:
		return []lineWork{line(ind + "- " + e.scalar(item))}
	}
}

func (e *encoder) objectListItem(fields []Field, depth int) []lineWork {
	ind := e.indent(depth)
	first := fields[0]
	rest := fields[1:]
	var work []lineWork

	switch first.Value.Kind() {
	case KindObject:
		if first.Value.Len() == 0 {
			work = []lineWork{line(ind + "- " + e.key(first.Key) + ":")}
		} else {
			children := first.Value.objVal
			work = []lineWork{
				line(ind + "- " + e.key(first.Key) + ":"),
				{expand: func() []lineWork { return e.objectLines(children, depth+2) }},
			}
		}
	case KindArray:
		work = e.dashArrayFirst(first.Key, first.Value.arrVal, depth)
	default:
		work = []lineWork{line(ind + "- " + e.key(first.Key) + ": " + e.scalar(first.Value))}
	}

	for _, f := range rest {
		f := f
		work = append(work, lineWork{expand: func() []lineWork {
			return e.memberLines(f, depth+1)
		}})
	}
	return work
}

// dashArrayFirst encodes a list-item object whose first field is an
// array: the array header shares the dash line and any body sits two
// levels below the dash.
func (e *encoder) dashArrayFirst(key string, arr []*Value, depth int) []lineWork {
	ind := e.indent(depth)
	k := e.key(key)
	switch {
	case len(arr) == 0:
		return []lineWork{line(ind + "- " + k + e.bracket(0) + ":")}
	case isInlineArray(arr):
		return []lineWork{line(ind + "- " + k + e.bracket(len(arr)) + ": " + e.joinScalars(arr))}
	case isTabularArray(arr):
		fields := tabularFields(arr[0])
		work := []lineWork{line(ind + "- " + e.tabularHeader(k, len(arr), fields))}
		return append(work, e.tabularRows(arr, fields, depth+2)...)
	default:
		work := []lineWork{line(ind + "- " + k + e.bracket(len(arr)) + ":")}
		return append(work, e.listItems(arr, depth+2)...)
	}
}

// ============================================================
// Key folding
// ============================================================

func (e *encoder) canFold(key string, v *Value) bool {
	if !isIdentifierSegment(key) {
		return false
	}
	if v.Kind() != KindObject || v.Len() != 1 {
		return false
	}
	return isIdentifierSegment(v.objVal[0].Key)
}

// foldedLines collapses a chain of single-key objects into one dotted
// key, bounded by FlattenDepth.
func (e *encoder) foldedLines(key string, v *Value, depth int) []lineWork {
	maxDepth := math.MaxInt
	if e.opts.FlattenDepth != nil {
		maxDepth = *e.opts.FlattenDepth
	}

	path := []string{key}
	current := v
	for current.Kind() == KindObject && current.Len() == 1 && len(path) <= maxDepth {
		next := current.objVal[0]
		if !isIdentifierSegment(next.Key) {
			break
		}
		path = append(path, next.Key)
		current = next.Value
	}

	ind := e.indent(depth)
	folded := strings.Join(path, ".")

	switch current.Kind() {
	case KindObject:
		if current.Len() == 0 {
			return []lineWork{line(ind + folded + ":")}
		}
		children := current.objVal
		return []lineWork{
			line(ind + folded + ":"),
			{expand: func() []lineWork { return e.objectLines(children, depth+1) }},
		}
	case KindArray:
		return e.arrayLines(folded, current.arrVal, depth)
	default:
		return []lineWork{line(ind + folded + ": " + e.scalar(current))}
	}
}

// ============================================================
// Array shape detection
// ============================================================

func isScalar(v *Value) bool {
	k := v.Kind()
	return k != KindArray && k != KindObject
}

// isInlineArray reports whether every element is a scalar.
func isInlineArray(arr []*Value) bool {
	if len(arr) == 0 {
		return false
	}
	for _, v := range arr {
		if !isScalar(v) {
			return false
		}
	}
	return true
}

// isTabularArray reports whether every element is an object sharing one
// key set (any order; the first element's order becomes header order)
// with all-scalar values.
func isTabularArray(arr []*Value) bool {
	if len(arr) == 0 {
		return false
	}
	first := arr[0]
	if first.Kind() != KindObject || first.Len() == 0 {
		return false
	}
	keys := make(map[string]bool, first.Len())
	for _, f := range first.objVal {
		keys[f.Key] = true
	}
	for _, v := range arr {
		if v.Kind() != KindObject || v.Len() != len(keys) {
			return false
		}
		for _, f := range v.objVal {
			if !keys[f.Key] {
				return false
			}
			if !isScalar(f.Value) {
				return false
			}
		}
	}
	return true
}

func tabularFields(first *Value) []string {
	fields := make([]string, len(first.objVal))
	for i, f := range first.objVal {
		fields[i] = f.Key
	}
	return fields
}
