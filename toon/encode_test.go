package toon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeScalars(t *testing.T) {
	tests := []struct {
		name string
		v    *Value
		want string
	}{
		{"null", Null(), "null"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"int", Int(42), "42"},
		{"negative", Int(-7), "-7"},
		{"float", Float(3.14), "3.14"},
		{"string", Str("hello"), "hello"},
		{"string with space", Str("hello world"), "hello world"},
		{"empty string", Str(""), `""`},
		{"reserved literal", Str("true"), `"true"`},
		{"numeric-like string", Str("007"), `"007"`},
		{"valid-number string", Str("42"), `"42"`},
		{"structural chars", Str("a:b"), `"a:b"`},
		{"leading dash", Str("-flag"), `"-flag"`},
		{"newline", Str("a\nb"), `"a\nb"`},
		{"padded", Str(" x "), `" x "`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.v))
		})
	}
}

func TestEncodeDecimalPreserved(t *testing.T) {
	n, err := Num("1.50")
	require.NoError(t, err)
	assert.Equal(t, "1.50", Encode(n))
}

func TestEncodeObject(t *testing.T) {
	v := Obj(
		F("id", Int(1)),
		F("name", Str("Ada")),
		F("active", Bool(true)),
	)
	assert.Equal(t, "id: 1\nname: Ada\nactive: true", Encode(v))
}

func TestEncodeNestedObject(t *testing.T) {
	v := Obj(
		F("server", Obj(
			F("host", Str("localhost")),
			F("port", Int(8080)),
		)),
		F("debug", Bool(false)),
	)
	want := strings.Join([]string{
		"server:",
		"  host: localhost",
		"  port: 8080",
		"debug: false",
	}, "\n")
	assert.Equal(t, want, Encode(v))
}

func TestEncodeEmptyContainers(t *testing.T) {
	assert.Equal(t, "a:", Encode(Obj(F("a", Obj()))))
	assert.Equal(t, "a[0]:", Encode(Obj(F("a", Arr()))))
	assert.Equal(t, "", Encode(Obj()))
	assert.Equal(t, "[0]:", Encode(Arr()))
}

func TestEncodeInlineArray(t *testing.T) {
	v := Obj(F("tags", Arr(Str("reading"), Str("gaming"), Int(3))))
	assert.Equal(t, "tags[3]: reading,gaming,3", Encode(v))
}

func TestEncodeInlineArrayQuoting(t *testing.T) {
	v := Obj(F("vals", Arr(Str("a,b"), Str("plain"))))
	assert.Equal(t, `vals[2]: "a,b",plain`, Encode(v))
}

func TestEncodeRootArray(t *testing.T) {
	assert.Equal(t, "[3]: 1,2,3", Encode(Arr(Int(1), Int(2), Int(3))))
}

func TestEncodeRootScalar(t *testing.T) {
	assert.Equal(t, "42", Encode(Int(42)))
	assert.Equal(t, `"true"`, Encode(Str("true")))
}

func TestEncodeTabularArray(t *testing.T) {
	v := Obj(F("users", Arr(
		Obj(F("id", Int(1)), F("name", Str("Alice"))),
		Obj(F("id", Int(2)), F("name", Str("Bob"))),
	)))
	want := strings.Join([]string{
		"users[2]{id,name}:",
		"  1,Alice",
		"  2,Bob",
	}, "\n")
	assert.Equal(t, want, Encode(v))
}

func TestEncodeTabularHeaderOrderFromFirstElement(t *testing.T) {
	// Same key set in a different order still qualifies as tabular; the
	// first element fixes the header order.
	v := Obj(F("rows", Arr(
		Obj(F("a", Int(1)), F("b", Int(2))),
		Obj(F("b", Int(4)), F("a", Int(3))),
	)))
	want := strings.Join([]string{
		"rows[2]{a,b}:",
		"  1,2",
		"  3,4",
	}, "\n")
	assert.Equal(t, want, Encode(v))
}

func TestEncodeTabularFallsBackToList(t *testing.T) {
	// Mismatched key sets cannot be tabular.
	v := Obj(F("rows", Arr(
		Obj(F("a", Int(1))),
		Obj(F("b", Int(2))),
	)))
	want := strings.Join([]string{
		"rows[2]:",
		"  - a: 1",
		"  - b: 2",
	}, "\n")
	assert.Equal(t, want, Encode(v))

	// Non-scalar cell values also disqualify the tabular form.
	v = Obj(F("rows", Arr(
		Obj(F("a", Arr(Int(1)))),
		Obj(F("a", Arr(Int(2)))),
	)))
	want = strings.Join([]string{
		"rows[2]:",
		"  - a[1]: 1",
		"  - a[1]: 2",
	}, "\n")
	assert.Equal(t, want, Encode(v))
}

func TestEncodeListArray(t *testing.T) {
	v := Arr(
		Int(1),
		Obj(F("a", Int(2)), F("b", Int(3))),
		Arr(Str("x"), Str("y")),
		Obj(),
	)
	want := strings.Join([]string{
		"[4]:",
		"  - 1",
		"  - a: 2",
		"    b: 3",
		"  - [2]: x,y",
		"  -",
	}, "\n")
	assert.Equal(t, want, Encode(v))
}

func TestEncodeListItemNestedObjectFirstField(t *testing.T) {
	v := Obj(F("items", Arr(
		Obj(
			F("meta", Obj(F("k", Str("v")))),
			F("id", Int(1)),
		),
	)))
	want := strings.Join([]string{
		"items[1]:",
		"  - meta:",
		"      k: v",
		"    id: 1",
	}, "\n")
	assert.Equal(t, want, Encode(v))
}

func TestEncodeListItemArrayFirstField(t *testing.T) {
	v := Obj(F("items", Arr(
		Obj(
			F("nums", Arr(Int(1), Int(2))),
			F("name", Str("x")),
		),
	)))
	want := strings.Join([]string{
		"items[1]:",
		"  - nums[2]: 1,2",
		"    name: x",
	}, "\n")
	assert.Equal(t, want, Encode(v))
}

func TestEncodeListItemTabularFirstField(t *testing.T) {
	v := Obj(F("items", Arr(
		Obj(
			F("rows", Arr(
				Obj(F("a", Int(1))),
				Obj(F("a", Int(2))),
			)),
			F("name", Str("x")),
		),
	)))
	want := strings.Join([]string{
		"items[1]:",
		"  - rows[2]{a}:",
		"      1",
		"      2",
		"    name: x",
	}, "\n")
	assert.Equal(t, want, Encode(v))
}

func TestEncodeNestedListArrays(t *testing.T) {
	v := Obj(F("matrix", Arr(
		Arr(Int(1), Int(2)),
		Arr(Arr(Int(3))),
	)))
	want := strings.Join([]string{
		"matrix[2]:",
		"  - [2]: 1,2",
		"  - [1]:",
		"    - [1]: 3",
	}, "\n")
	assert.Equal(t, want, Encode(v))
}

func TestEncodeDelimiters(t *testing.T) {
	v := Obj(
		F("tags", Arr(Str("a"), Str("b"))),
		F("rows", Arr(
			Obj(F("x", Int(1)), F("y", Int(2))),
		)),
	)

	opts := DefaultEncodeOptions()
	opts.Delimiter = DelimPipe
	got, err := EncodeWithOptions(v, opts)
	require.NoError(t, err)
	want := strings.Join([]string{
		"tags[2|]: a|b",
		"rows[1|]{x|y}:",
		"  1|2",
	}, "\n")
	assert.Equal(t, want, got)

	opts.Delimiter = DelimTab
	got, err = EncodeWithOptions(v, opts)
	require.NoError(t, err)
	want = strings.Join([]string{
		"tags[2\t]: a\tb",
		"rows[1\t]{x\ty}:",
		"  1\t2",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestEncodeDelimiterAwareQuoting(t *testing.T) {
	// With a pipe delimiter a comma is safe but a pipe is not.
	v := Obj(F("vals", Arr(Str("a,b"), Str("c|d"))))
	opts := DefaultEncodeOptions()
	opts.Delimiter = DelimPipe
	got, err := EncodeWithOptions(v, opts)
	require.NoError(t, err)
	assert.Equal(t, `vals[2|]: a,b|"c|d"`, got)
}

func TestEncodeKeyQuoting(t *testing.T) {
	v := Obj(
		F("plain", Int(1)),
		F("with space", Int(2)),
		F("with:colon", Int(3)),
		F("", Int(4)),
	)
	want := strings.Join([]string{
		"plain: 1",
		`"with space": 2`,
		`"with:colon": 3`,
		`"": 4`,
	}, "\n")
	assert.Equal(t, want, Encode(v))
}

func TestEncodeKeyFolding(t *testing.T) {
	v := Obj(F("a", Obj(F("b", Obj(F("c", Int(1)))))))

	opts := DefaultEncodeOptions()
	opts.KeyFolding = KeyFoldingSafe
	got, err := EncodeWithOptions(v, opts)
	require.NoError(t, err)
	assert.Equal(t, "a.b.c: 1", got)

	// Folding off by default.
	assert.Equal(t, "a:\n  b:\n    c: 1", Encode(v))
}

func TestEncodeKeyFoldingStopsAtMultiKey(t *testing.T) {
	v := Obj(F("a", Obj(F("b", Obj(
		F("c", Int(1)),
		F("d", Int(2)),
	)))))
	opts := DefaultEncodeOptions()
	opts.KeyFolding = KeyFoldingSafe
	got, err := EncodeWithOptions(v, opts)
	require.NoError(t, err)
	assert.Equal(t, "a.b:\n  c: 1\n  d: 2", got)
}

func TestEncodeKeyFoldingSkipsNonIdentifiers(t *testing.T) {
	v := Obj(F("a", Obj(F("not safe", Obj(F("c", Int(1)))))))
	opts := DefaultEncodeOptions()
	opts.KeyFolding = KeyFoldingSafe
	got, err := EncodeWithOptions(v, opts)
	require.NoError(t, err)
	assert.Equal(t, "a:\n  \"not safe\":\n    c: 1", got)
}

func TestEncodeFlattenDepth(t *testing.T) {
	v := Obj(F("a", Obj(F("b", Obj(F("c", Obj(F("d", Int(1)))))))))
	depth := 1
	opts := DefaultEncodeOptions()
	opts.KeyFolding = KeyFoldingSafe
	opts.FlattenDepth = &depth
	got, err := EncodeWithOptions(v, opts)
	require.NoError(t, err)
	assert.Equal(t, "a.b:\n  c.d: 1", got)
}

func TestEncodeFoldedArrayValue(t *testing.T) {
	v := Obj(F("a", Obj(F("b", Arr(Int(1), Int(2))))))
	opts := DefaultEncodeOptions()
	opts.KeyFolding = KeyFoldingSafe
	got, err := EncodeWithOptions(v, opts)
	require.NoError(t, err)
	assert.Equal(t, "a.b[2]: 1,2", got)
}

func TestEncodeOptionsValidate(t *testing.T) {
	opts := DefaultEncodeOptions()
	opts.Indent = 0
	_, err := EncodeWithOptions(Null(), opts)
	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)

	opts = DefaultEncodeOptions()
	opts.Delimiter = ";"
	_, err = EncodeWithOptions(Null(), opts)
	require.ErrorAs(t, err, &encErr)

	opts = DefaultEncodeOptions()
	opts.KeyFolding = "aggressive"
	_, err = EncodeWithOptions(Null(), opts)
	require.ErrorAs(t, err, &encErr)
}

func TestEncodeLinesMatchesEncode(t *testing.T) {
	v := Obj(
		F("id", Int(1)),
		F("users", Arr(
			Obj(F("id", Int(1)), F("name", Str("Alice"))),
			Obj(F("id", Int(2)), F("name", Str("Bob"))),
		)),
		F("nested", Obj(F("deep", Arr(Int(1), Obj(F("k", Str("v"))))))),
	)
	lines := EncodeLines(v).Collect()
	assert.Equal(t, Encode(v), strings.Join(lines, "\n"))
}

func TestEncodeLinesIsIncremental(t *testing.T) {
	v := Obj(F("a", Int(1)), F("b", Int(2)))
	it := EncodeLines(v)

	first, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, "a: 1", first)

	second, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, "b: 2", second)

	_, ok = it.Next()
	assert.False(t, ok)
}
