// Package flat turns a tree into the ordered list of its leaves, each
// addressed by a path string.
package flat

import (
	"github.com/jacoelho/jflat/internal/path"
	"github.com/jacoelho/jflat/internal/value"
)

// Entry is one leaf of a flattened tree. Value is never a non-empty
// container.
type Entry struct {
	Path  string
	Value value.Value
}

// Flatten walks v depth first in pre-order and returns its leaves in
// traversal order. Empty objects and arrays are leaves. A scalar or empty
// root produces a single entry with the path "".
func Flatten(v value.Value) []Entry {
	var entries []Entry
	walk(path.Path{}, v, func(p path.Path, leaf value.Value) {
		entries = append(entries, Entry{Path: path.Format(p), Value: leaf})
	})
	return entries
}

func walk(p path.Path, v value.Value, emit func(path.Path, value.Value)) {
	switch v.Kind() {
	case value.KindObject:
		obj, _ := v.AsObject()
		if obj.Len() == 0 {
			emit(p, v)
			return
		}
		for _, m := range obj.Members() {
			walk(p.Field(m.Key), m.Value, emit)
		}
	case value.KindArray:
		items, _ := v.Items()
		if len(items) == 0 {
			emit(p, v)
			return
		}
		for i, item := range items {
			walk(p.Index(i), item, emit)
		}
	case value.KindNull, value.KindBool, value.KindNumber, value.KindString:
		emit(p, v)
	}
}

// Paths returns the path of every entry, in order.
func Paths(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}

// Filter returns the entries whose path is accepted by keep, in order.
func Filter(entries []Entry, keep func(string) bool) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if keep(e.Path) {
			out = append(out, e)
		}
	}
	return out
}
