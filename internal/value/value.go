package value

import (
	"slices"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

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
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is a JSON-like value. The zero Value is null.
//
// Numbers keep their literal text so that re-encoding does not change
// precision or notation.
type Value struct {
	kind Kind
	b    bool
	text string
	obj  *Object
	arr  []Value
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// Bool wraps a boolean.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Number wraps the textual form of a number. The caller is responsible for
// text being a valid JSON number.
func Number(text string) Value {
	return Value{kind: KindNumber, text: text}
}

// String wraps a string.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// ObjectValue wraps an ordered object. A nil object is treated as empty.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// Array wraps a sequence of values.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

// EmptyObject returns an object with no members.
func EmptyObject() Value {
	return ObjectValue(NewObject())
}

// EmptyArray returns an array with no items.
func EmptyArray() Value {
	return Array()
}

func (v Value) Kind() Kind {
	return v.kind
}

// AsObject returns the object and whether v holds one.
func (v Value) AsObject() (*Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// Items returns the array items and whether v holds an array. The returned
// slice must not be modified.
func (v Value) Items() ([]Value, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

// Len reports the number of children of a container, and 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindObject:
		return v.obj.Len()
	case KindArray:
		return len(v.arr)
	default:
		return 0
	}
}

// IsContainer reports whether v is an object or an array.
func (v Value) IsContainer() bool {
	return v.kind == KindObject || v.kind == KindArray
}

// IsEmptyContainer reports whether v is an object or array with no children.
func (v Value) IsEmptyContainer() bool {
	return v.IsContainer() && v.Len() == 0
}

// Equal reports deep equality. Object member order is significant and
// numbers compare by literal text.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber, KindString:
		return v.text == other.text
	case KindObject:
		return v.obj.equal(other.obj)
	case KindArray:
		return slices.EqualFunc(v.arr, other.arr, Value.Equal)
	default:
		return false
	}
}

// String renders v as compact JSON.
func (v Value) String() string {
	return string(AppendJSON(nil, v))
}
