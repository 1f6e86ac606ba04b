package value

import (
	"fmt"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/jflat/internal/number"
)

// ToAny converts v to generic Go values: map[string]any, []any, string,
// bool and nil. Numbers become int64, uint64 or float64 when that is exact
// and json.Number otherwise. Member order is lost.
func ToAny(v Value) any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return number.FromText(v.text)
	case KindString:
		return v.text
	case KindObject:
		out := make(map[string]any, v.obj.Len())
		for _, m := range v.obj.Members() {
			out[m.Key] = ToAny(m.Value)
		}
		return out
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = ToAny(item)
		}
		return out
	default:
		return nil
	}
}

// FromAny converts a generic decoded value into a Value. Ordered YAML maps
// keep their member order; plain Go maps do not have one, so their members
// follow map iteration order.
func FromAny(x any) (Value, error) {
	return fromAny(x, 0)
}

func fromAny(x any, depth int) (Value, error) {
	switch current := x.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(current), nil
	case string:
		return String(current), nil
	case time.Time:
		return String(current.Format(time.RFC3339Nano)), nil
	case yaml.MapSlice, map[string]any, []any:
		if depth >= MaxDepth {
			return Value{}, fmt.Errorf("%w: nesting deeper than %d", ErrMalformed, MaxDepth)
		}
	}

	switch current := x.(type) {
	case yaml.MapSlice:
		obj := NewObject()
		for _, item := range current {
			member, err := fromAny(item.Value, depth+1)
			if err != nil {
				return Value{}, err
			}
			obj.Set(keyString(item.Key), member)
		}
		return ObjectValue(obj), nil
	case map[string]any:
		obj := NewObject()
		for key, item := range current {
			member, err := fromAny(item, depth+1)
			if err != nil {
				return Value{}, err
			}
			obj.Set(key, member)
		}
		return ObjectValue(obj), nil
	case []any:
		items := make([]Value, 0, len(current))
		for _, item := range current {
			converted, err := fromAny(item, depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, converted)
		}
		return Array(items...), nil
	default:
		if text, ok := number.ToText(x); ok {
			return Number(text), nil
		}
		return Value{}, fmt.Errorf("%w: unsupported value of type %T", ErrMalformed, x)
	}
}

func keyString(key any) string {
	if s, ok := key.(string); ok {
		return s
	}
	if key == nil {
		return "null"
	}
	if text, ok := number.ToText(key); ok {
		return text
	}
	return fmt.Sprint(key)
}
