package template

import (
	"fmt"
	"sort"
)

// Value is a dynamically shaped template field. The set of variants is
// closed: String, Number, Bool, Null, Array and Record.
type Value interface {
	isValue()
}

type (
	String string
	Number float64
	Bool   bool
	Null   struct{}
	Array  []Value
	Record map[string]Value
)

func (String) isValue() {}
func (Number) isValue() {}
func (Bool) isValue()   {}
func (Null) isValue()   {}
func (Array) isValue()  {}
func (Record) isValue() {}

// SubstituteValue walks v and applies Substitute to every string it contains.
// Arrays and records are rebuilt; numbers, booleans and null are returned as is.
// The input is never modified.
func SubstituteValue(v Value, vars map[string]string) Value {
	switch x := v.(type) {
	case String:
		return String(Substitute(string(x), vars))
	case Array:
		out := make(Array, len(x))
		for i, el := range x {
			out[i] = SubstituteValue(el, vars)
		}
		return out
	case Record:
		out := make(Record, len(x))
		for k, el := range x {
			out[k] = SubstituteValue(el, vars)
		}
		return out
	default:
		return v
	}
}

// Str returns the string stored under key, or "" when it is missing or not a String.
func (r Record) Str(key string) string {
	if s, ok := r[key].(String); ok {
		return string(s)
	}
	return ""
}

// Keys returns the record's keys in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValueOf converts a decoded JSON value (as produced by encoding/json into an
// any) into a Value.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null{}, nil
	case string:
		return String(t), nil
	case float64:
		return Number(t), nil
	case int:
		return Number(t), nil
	case int64:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case []any:
		out := make(Array, len(t))
		for i, el := range t {
			v, err := ValueOf(el)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = v
		}
		return out, nil
	case map[string]any:
		out := make(Record, len(t))
		for k, el := range t {
			v, err := ValueOf(el)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", x)
	}
}

// Interface converts v back into plain Go values suitable for encoding/json.
func Interface(v Value) any {
	switch x := v.(type) {
	case String:
		return string(x)
	case Number:
		return float64(x)
	case Bool:
		return bool(x)
	case Array:
		out := make([]any, len(x))
		for i, el := range x {
			out[i] = Interface(el)
		}
		return out
	case Record:
		out := make(map[string]any, len(x))
		for k, el := range x {
			out[k] = Interface(el)
		}
		return out
	default:
		return nil
	}
}

// Variables flattens a decoded "variables" object into the string map used by
// Substitute. Numbers and booleans are formatted as text and null entries are
// dropped so their placeholders stay unresolved. Nested arrays and records are
// rejected.
func Variables(raw any) (map[string]string, error) {
	v, err := ValueOf(raw)
	if err != nil {
		return nil, err
	}
	if _, ok := v.(Null); ok {
		return map[string]string{}, nil
	}
	rec, ok := v.(Record)
	if !ok {
		return nil, fmt.Errorf("variables must be an object, got %T", raw)
	}
	out := make(map[string]string, len(rec))
	for _, k := range rec.Keys() {
		switch x := rec[k].(type) {
		case String:
			out[k] = string(x)
		case Number, Bool:
			out[k] = fmt.Sprint(Interface(x))
		case Null:
		default:
			return nil, fmt.Errorf("variable %q: nested values are not supported", k)
		}
	}
	return out, nil
}
