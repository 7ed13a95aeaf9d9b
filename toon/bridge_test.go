package toon

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromNativeScalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *Value
	}{
		{"nil", nil, Null()},
		{"bool", true, Bool(true)},
		{"string", "hi", Str("hi")},
		{"int", 42, Int(42)},
		{"int64", int64(-9), Int(-9)},
		{"uint64", uint64(18446744073709551615), mustNum(t, "18446744073709551615")},
		{"float64", 2.5, Float(2.5)},
		{"float32", float32(0.5), mustNum(t, "0.5")},
		{"json number", json.Number("1.50"), mustNum(t, "1.50")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromNative(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", Encode(got))
		})
	}
}

func mustNum(t *testing.T, lit string) *Value {
	t.Helper()
	n, err := Num(lit)
	require.NoError(t, err)
	return n
}

func TestFromNativeContainers(t *testing.T) {
	got, err := FromNative(map[string]any{
		"b": 1,
		"a": []any{"x", true, nil},
	})
	require.NoError(t, err)

	// Map keys sort.
	want := Obj(
		F("a", Arr(Str("x"), Bool(true), Null())),
		F("b", Int(1)),
	)
	assert.True(t, want.Equal(got), "got %s", Encode(got))
}

func TestFromNativeTypedSlicesAndMaps(t *testing.T) {
	got, err := FromNative([]string{"x", "y"})
	require.NoError(t, err)
	assert.True(t, Arr(Str("x"), Str("y")).Equal(got))

	got, err = FromNative(map[string]int{"b": 2, "a": 1})
	require.NoError(t, err)
	assert.True(t, Obj(F("a", Int(1)), F("b", Int(2))).Equal(got))

	_, err = FromNative(map[int]string{1: "x"})
	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)

	_, err = FromNative(struct{}{})
	require.ErrorAs(t, err, &encErr)
}

func TestToNative(t *testing.T) {
	v := Obj(
		F("n", mustNum(t, "1.50")),
		F("s", Str("x")),
		F("b", Bool(false)),
		F("z", Null()),
		F("arr", Arr(Int(1), Int(2))),
	)
	native := ToNative(v)
	m, ok := native.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("1.50"), m["n"])
	assert.Equal(t, "x", m["s"])
	assert.Equal(t, false, m["b"])
	assert.Nil(t, m["z"])
	assert.Equal(t, []any{json.Number("1"), json.Number("2")}, m["arr"])
}

func TestFromJSONPreservesOrderAndLiterals(t *testing.T) {
	v, err := FromJSON([]byte(`{"b":1.50,"a":{"y":2,"x":3},"list":[1,"two",null]}`))
	require.NoError(t, err)

	fields, err := v.AsObj()
	require.NoError(t, err)
	require.Len(t, fields, 3)
	assert.Equal(t, "b", fields[0].Key)
	assert.Equal(t, "a", fields[1].Key)
	assert.Equal(t, "list", fields[2].Key)

	lit, err := v.Get("b").NumberLiteral()
	require.NoError(t, err)
	assert.Equal(t, "1.50", lit)

	inner, err := v.Get("a").AsObj()
	require.NoError(t, err)
	assert.Equal(t, "y", inner[0].Key)
	assert.Equal(t, "x", inner[1].Key)
}

func TestFromJSONErrors(t *testing.T) {
	_, err := FromJSON([]byte(`{"a":`))
	require.Error(t, err)

	_, err = FromJSON([]byte(`{"a":1} trailing`))
	require.Error(t, err)
}

func TestToJSON(t *testing.T) {
	v := Obj(
		F("b", mustNum(t, "1.50")),
		F("a", Str("x\"y")),
		F("list", Arr(Int(1), Null(), Bool(true))),
		F("empty", Obj()),
	)
	b, err := ToJSON(v)
	require.NoError(t, err)
	assert.Equal(t, `{"b":1.50,"a":"x\"y","list":[1,null,true],"empty":{}}`, string(b))
}

func TestJSONRoundTrip(t *testing.T) {
	src := `{"users":[{"id":1,"name":"Alice"},{"id":2,"name":"Bob"}],"total":2,"rate":0.50}`
	v, err := FromJSON([]byte(src))
	require.NoError(t, err)

	out, err := ToJSON(v)
	require.NoError(t, err)
	assert.Equal(t, src, string(out))

	// And through TOON text.
	opts := DefaultDecodeOptions()
	opts.Strict = true
	back, err := DecodeWithOptions(Encode(v), opts)
	require.NoError(t, err)
	out, err = ToJSON(back)
	require.NoError(t, err)
	assert.Equal(t, src, string(out))
}
