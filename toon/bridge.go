package toon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// ============================================================
// Native Go values
// ============================================================

// FromNative converts a native Go value into a Value. Maps with string
// keys encode with sorted keys; use Obj directly when insertion order
// matters. Numbers keep their exact formatting where the input carries
// one (json.Number).
func FromNative(v any) (*Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case *Value:
		if t == nil {
			return Null(), nil
		}
		return t, nil
	case bool:
		return Bool(t), nil
	case string:
		return Str(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return uintValue(uint64(t)), nil
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		return uintValue(t), nil
	case float32:
		return floatValue(strconv.FormatFloat(float64(t), 'g', -1, 32)), nil
	case float64:
		return Float(t), nil
	case json.Number:
		return Num(t.String())
	case []any:
		arr := Arr()
		for _, e := range t {
			ev, err := FromNative(e)
			if err != nil {
				return nil, err
			}
			arr.Append(ev)
		}
		return arr, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := Obj()
		for _, k := range keys {
			ev, err := FromNative(t[k])
			if err != nil {
				return nil, err
			}
			obj.Set(k, ev)
		}
		return obj, nil
	}
	return fromNativeReflect(v)
}

func uintValue(u uint64) *Value {
	return &Value{kind: KindNumber, numVal: strconv.FormatUint(u, 10)}
}

func floatValue(lit string) *Value {
	if !isValidNumberLiteral(lit) {
		return Null()
	}
	return &Value{kind: KindNumber, numVal: lit}
}

// fromNativeReflect handles typed slices and string-keyed maps that the
// concrete switch misses, e.g. []string or map[string]int.
func fromNativeReflect(v any) (*Value, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		arr := Arr()
		for i := 0; i < rv.Len(); i++ {
			ev, err := FromNative(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			arr.Append(ev)
		}
		return arr, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, &EncodingError{Message: fmt.Sprintf("unsupported map key type %s", rv.Type().Key())}
		}
		keys := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			keys = append(keys, iter.Key().String())
		}
		sort.Strings(keys)
		obj := Obj()
		for _, k := range keys {
			ev, err := FromNative(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface())
			if err != nil {
				return nil, err
			}
			obj.Set(k, ev)
		}
		return obj, nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return FromNative(rv.Elem().Interface())
	}
	return nil, &EncodingError{Message: fmt.Sprintf("unsupported native type %T", v)}
}

// ToNative converts a Value into native Go data: nil, bool, json.Number,
// string, []any, and map[string]any. Object key order does not survive
// the map conversion.
func ToNative(v *Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.kind {
	case KindBool:
		return v.boolVal
	case KindNumber:
		return json.Number(v.numVal)
	case KindString:
		return v.strVal
	case KindArray:
		out := make([]any, len(v.arrVal))
		for i, e := range v.arrVal {
			out[i] = ToNative(e)
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.objVal))
		for _, f := range v.objVal {
			out[f.Key] = ToNative(f.Value)
		}
		return out
	default:
		return nil
	}
}

// ============================================================
// JSON bridge
// ============================================================

// FromJSON parses a JSON document into a Value, preserving object key
// order and the literal text of numbers.
func FromJSON(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := jsonValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err == nil {
		return nil, fmt.Errorf("toon: trailing content after JSON document")
	}
	return v, nil
}

func jsonValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return jsonToken(dec, tok)
}

func jsonToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return Str(t), nil
	case json.Number:
		return &Value{kind: KindNumber, numVal: t.String()}, nil
	case json.Delim:
		switch t {
		case '[':
			arr := Arr()
			for dec.More() {
				ev, err := jsonValue(dec)
				if err != nil {
					return nil, err
				}
				arr.Append(ev)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		case '{':
			obj := Obj()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("toon: unexpected JSON key token %v", keyTok)
				}
				ev, err := jsonValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, ev)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		}
	}
	return nil, fmt.Errorf("toon: unexpected JSON token %v", tok)
}

// ToJSON renders a Value as compact JSON, keeping object key order and
// number literals intact.
func ToJSON(v *Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v *Value) error {
	if v.IsNull() {
		buf.WriteString("null")
		return nil
	}
	switch v.kind {
	case KindBool:
		if v.boolVal {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		// The number grammar is a subset of JSON's, so the literal is
		// valid as-is.
		buf.WriteString(v.numVal)
	case KindString:
		b, err := json.Marshal(v.strVal)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindArray:
		buf.WriteByte('[')
		for i, e := range v.arrVal {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, f := range v.objVal {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := json.Marshal(f.Key)
			if err != nil {
				return err
			}
			buf.Write(b)
			buf.WriteByte(':')
			if err := writeJSON(buf, f.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("toon: cannot render kind %s as JSON", v.kind)
	}
	return nil
}
