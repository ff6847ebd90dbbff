package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Kind
// --------------------------------------------------------------------------

// Kind is the JSON shape held by a Value.
type Kind uint8

const (
	KindNull   Kind = iota // 0: JSON null / absent
	KindString             // 1: JSON string
	KindNumber             // 2: JSON number (float64)
	KindBool               // 3: JSON true / false
	KindList               // 4: JSON array
	KindObject             // 5: JSON object
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Value
// --------------------------------------------------------------------------

// Value is a tagged union over the JSON-compatible shapes a named value can take.
// The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []Value
	obj  map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a number value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List returns a list value holding the given items. A nil item list
// yields an empty list, not null.
func List(items ...Value) Value {
	l := make([]Value, len(items))
	copy(l, items)
	return Value{kind: KindList, list: l}
}

// Object returns an object value holding a copy of m.
func Object(m map[string]Value) Value {
	o := make(map[string]Value, len(m))
	for k, v := range m {
		o[k] = v
	}
	return Value{kind: KindObject, obj: o}
}

// Kind returns the shape of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload and whether v is a string.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Items returns a copy of the list payload and whether v is a list.
func (v Value) Items() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	l := make([]Value, len(v.list))
	copy(l, v.list)
	return l, true
}

// Fields returns a copy of the object payload and whether v is an object.
func (v Value) Fields() (map[string]Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	o := make(map[string]Value, len(v.obj))
	for k, f := range v.obj {
		o[k] = f
	}
	return o, true
}

// Equal reports whether v and o hold the same logical value.
// Numbers compare numerically, lists element-wise and objects key-wise.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindBool:
		return v.b == o.b
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for k, a := range v.obj {
			b, ok := o.obj[k]
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders v as compact JSON. Values that cannot be encoded (NaN, Inf)
// render as their Go formatting.
func (v Value) String() string {
	data, err := v.Encode()
	if err != nil {
		return fmt.Sprintf("%v", v.Any())
	}
	return string(data)
}

// --------------------------------------------------------------------------
// Conversion
// --------------------------------------------------------------------------

// Any converts v into plain Go values (nil, string, float64, bool, []any, map[string]any).
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	case KindList:
		l := make([]any, len(v.list))
		for i, item := range v.list {
			l[i] = item.Any()
		}
		return l
	case KindObject:
		o := make(map[string]any, len(v.obj))
		for k, f := range v.obj {
			o[k] = f.Any()
		}
		return o
	default:
		return nil
	}
}

// FromAny converts plain Go values into a Value. Supported are nil, string,
// bool, all integer and float types, json.Number, []any, []string, map[string]any
// and Value itself.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int8:
		return Number(float64(t)), nil
	case int16:
		return Number(float64(t)), nil
	case int32:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case uint:
		return Number(float64(t)), nil
	case uint8:
		return Number(float64(t)), nil
	case uint16:
		return Number(float64(t)), nil
	case uint32:
		return Number(float64(t)), nil
	case uint64:
		return Number(float64(t)), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Null(), fmt.Errorf("invalid number %q: %w", t, err)
		}
		return Number(f), nil
	case []string:
		l := make([]Value, len(t))
		for i, s := range t {
			l[i] = String(s)
		}
		return Value{kind: KindList, list: l}, nil
	case []any:
		l := make([]Value, len(t))
		for i, item := range t {
			iv, err := FromAny(item)
			if err != nil {
				return Null(), err
			}
			l[i] = iv
		}
		return Value{kind: KindList, list: l}, nil
	case map[string]any:
		o := make(map[string]Value, len(t))
		for k, item := range t {
			iv, err := FromAny(item)
			if err != nil {
				return Null(), err
			}
			o[k] = iv
		}
		return Value{kind: KindObject, obj: o}, nil
	default:
		return Null(), fmt.Errorf("unsupported type %T", x)
	}
}

// --------------------------------------------------------------------------
// JSON encoding
// --------------------------------------------------------------------------

// Encode returns the compact JSON text of v. Object keys are emitted in sorted order.
func (v Value) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindString:
		if err := encodeString(buf, v.str); err != nil {
			return err
		}
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return fmt.Errorf("unsupported number %v", v.num)
		}
		if v.num == math.Trunc(v.num) && math.Abs(v.num) < 1e15 {
			buf.WriteString(strconv.FormatFloat(v.num, 'f', -1, 64))
		} else {
			buf.WriteString(strconv.FormatFloat(v.num, 'g', -1, 64))
		}
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindList:
		buf.WriteByte('[')
		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		keys := make([]string, 0, len(v.obj))
		for k := range v.obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := v.obj[k].encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("unknown kind %d", v.kind)
	}
	return nil
}

// encodeString writes s as a JSON string without HTML escaping.
func encodeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

// Decode parses JSON text into a Value. Surrounding whitespace is ignored;
// trailing data after the first JSON value is an error.
func Decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return Null(), err
	}
	if rest := strings.TrimSpace(string(data[dec.InputOffset():])); rest != "" {
		return Null(), fmt.Errorf("unexpected data after JSON value: %q", rest)
	}
	return FromAny(x)
}

// DecodeString is Decode for string input.
func DecodeString(s string) (Value, error) {
	return Decode([]byte(s))
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return v.Encode()
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	d, err := Decode(data)
	if err != nil {
		return err
	}
	*v = d
	return nil
}
