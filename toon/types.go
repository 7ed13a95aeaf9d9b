package toon

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies TOON value kinds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a TOON value: a closed variant over null, bool, number, string,
// array, and object. Object key order is preserved end-to-end.
type Value struct {
	kind Kind

	// Scalar values (only one valid based on kind)
	boolVal bool
	numVal  string // canonical literal text, decimal-preserving
	strVal  string

	// Container values
	arrVal []*Value
	objVal []Field
}

// Field is one key-value entry of an object.
type Field struct {
	Key   string
	Value *Value
}

// F creates a Field for use in Obj construction.
func F(key string, value *Value) Field {
	return Field{Key: key, Value: value}
}

// ============================================================
// Constructors
// ============================================================

// Null creates a null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool creates a boolean value.
func Bool(v bool) *Value {
	return &Value{kind: KindBool, boolVal: v}
}

// Int creates a number value from an integer.
func Int(v int64) *Value {
	return &Value{kind: KindNumber, numVal: strconv.FormatInt(v, 10)}
}

// Float creates a number value from a float. NaN and infinities become
// null and negative zero normalizes to 0, matching encoder normalization.
func Float(v float64) *Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Null()
	}
	if v == 0 {
		return &Value{kind: KindNumber, numVal: "0"}
	}
	return &Value{kind: KindNumber, numVal: strconv.FormatFloat(v, 'g', -1, 64)}
}

// Num creates a number value from a literal, preserving the exact decimal
// text (e.g. "1.50" stays "1.50"). The literal must be well formed.
func Num(literal string) (*Value, error) {
	if !isValidNumberLiteral(literal) {
		return nil, fmt.Errorf("toon: invalid number literal %q", literal)
	}
	return &Value{kind: KindNumber, numVal: literal}, nil
}

// Str creates a string value.
func Str(v string) *Value {
	return &Value{kind: KindString, strVal: v}
}

// Arr creates an array value.
func Arr(values ...*Value) *Value {
	return &Value{kind: KindArray, arrVal: values}
}

// Obj creates an object value from key-value fields.
func Obj(fields ...Field) *Value {
	return &Value{kind: KindObject, objVal: fields}
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the value kind.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull returns true if this is a null value.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// AsBool returns the boolean value.
func (v *Value) AsBool() (bool, error) {
	if v == nil {
		return false, fmt.Errorf("toon: nil value")
	}
	if v.kind != KindBool {
		return false, fmt.Errorf("toon: expected bool, got %s", v.kind)
	}
	return v.boolVal, nil
}

// NumberLiteral returns the canonical literal text of a number value.
func (v *Value) NumberLiteral() (string, error) {
	if v == nil {
		return "", fmt.Errorf("toon: nil value")
	}
	if v.kind != KindNumber {
		return "", fmt.Errorf("toon: expected number, got %s", v.kind)
	}
	return v.numVal, nil
}

// Int64 returns the number value as an int64.
func (v *Value) Int64() (int64, error) {
	lit, err := v.NumberLiteral()
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("toon: number %s is not an int64", lit)
	}
	return n, nil
}

// Float64 returns the number value as a float64.
func (v *Value) Float64() (float64, error) {
	lit, err := v.NumberLiteral()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, fmt.Errorf("toon: number %s is not a float64", lit)
	}
	return f, nil
}

// AsStr returns the string value.
func (v *Value) AsStr() (string, error) {
	if v == nil {
		return "", fmt.Errorf("toon: nil value")
	}
	if v.kind != KindString {
		return "", fmt.Errorf("toon: expected string, got %s", v.kind)
	}
	return v.strVal, nil
}

// AsArr returns the array elements.
func (v *Value) AsArr() ([]*Value, error) {
	if v == nil {
		return nil, fmt.Errorf("toon: nil value")
	}
	if v.kind != KindArray {
		return nil, fmt.Errorf("toon: expected array, got %s", v.kind)
	}
	return v.arrVal, nil
}

// AsObj returns the object fields in order.
func (v *Value) AsObj() ([]Field, error) {
	if v == nil {
		return nil, fmt.Errorf("toon: nil value")
	}
	if v.kind != KindObject {
		return nil, fmt.Errorf("toon: expected object, got %s", v.kind)
	}
	return v.objVal, nil
}

// Len returns the length of an array or object.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindArray:
		return len(v.arrVal)
	case KindObject:
		return len(v.objVal)
	default:
		return 0
	}
}

// Get returns a field value by key from an object, or nil.
func (v *Value) Get(key string) *Value {
	if v == nil || v.kind != KindObject {
		return nil
	}
	for _, f := range v.objVal {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

// Index returns the i-th element of an array.
func (v *Value) Index(i int) (*Value, error) {
	if v == nil || v.kind != KindArray {
		return nil, fmt.Errorf("toon: not an array")
	}
	if i < 0 || i >= len(v.arrVal) {
		return nil, fmt.Errorf("toon: index %d out of bounds (len=%d)", i, len(v.arrVal))
	}
	return v.arrVal[i], nil
}

// ============================================================
// Mutators
// ============================================================

// Set sets a field value on an object, preserving the position of an
// existing key and appending a new one.
func (v *Value) Set(key string, val *Value) {
	if v.kind != KindObject {
		panic("toon: cannot set on non-object")
	}
	for i := range v.objVal {
		if v.objVal[i].Key == key {
			v.objVal[i].Value = val
			return
		}
	}
	v.objVal = append(v.objVal, Field{Key: key, Value: val})
}

// Append adds an element to an array.
func (v *Value) Append(val *Value) {
	if v.kind != KindArray {
		panic("toon: cannot append to non-array")
	}
	v.arrVal = append(v.arrVal, val)
}

// ============================================================
// Equality
// ============================================================

// Equal reports deep equality. Objects compare by ordered fields; numbers
// compare by literal text.
func (v *Value) Equal(o *Value) bool {
	if v.IsNull() || o.IsNull() {
		return v.IsNull() && o.IsNull()
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.boolVal == o.boolVal
	case KindNumber:
		return v.numVal == o.numVal
	case KindString:
		return v.strVal == o.strVal
	case KindArray:
		if len(v.arrVal) != len(o.arrVal) {
			return false
		}
		for i := range v.arrVal {
			if !v.arrVal[i].Equal(o.arrVal[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.objVal) != len(o.objVal) {
			return false
		}
		for i := range v.objVal {
			if v.objVal[i].Key != o.objVal[i].Key {
				return false
			}
			if !v.objVal[i].Value.Equal(o.objVal[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
