// Package deepen rebuilds a tree from flat path/value entries.
package deepen

import (
	"fmt"

	"github.com/jacoelho/jflat/internal/flat"
	"github.com/jacoelho/jflat/internal/path"
	"github.com/jacoelho/jflat/internal/scope"
	"github.com/jacoelho/jflat/internal/value"
)

// Deepen builds a tree from the entries whose path is in s. Entries outside
// s are skipped. The first malformed path or conflict aborts the build and
// no tree is returned.
func Deepen(entries []flat.Entry, s scope.Set) (value.Value, error) {
	b := NewBuilder()
	for _, e := range entries {
		if !s.Contains(e.Path) {
			continue
		}
		if err := b.Add(e.Path, e.Value); err != nil {
			return value.Value{}, err
		}
	}
	return b.Value(), nil
}

// DeepenAll builds a tree from every entry.
func DeepenAll(entries []flat.Entry) (value.Value, error) {
	b := NewBuilder()
	for _, e := range entries {
		if err := b.Add(e.Path, e.Value); err != nil {
			return value.Value{}, err
		}
	}
	return b.Value(), nil
}

// Builder accumulates entries into a single tree. It is not safe for
// concurrent use.
//
// The accumulator is an object. Paths that address the root itself, or
// start with an index, are stored under the key "" and unwrapped by Value
// when nothing else was added at the top level.
type Builder struct {
	root *node
}

func NewBuilder() *Builder {
	return &Builder{root: newObjectNode()}
}

// Add parses p and stores v at that location, creating intermediate objects
// and arrays as needed. Arrays are padded with nulls up to the addressed
// index.
func (b *Builder) Add(p string, v value.Value) error {
	segs, err := path.Parse(p)
	if err != nil {
		return err
	}
	return b.AddPath(segs, v)
}

// AddPath is Add for an already parsed path. It enforces the same limits
// as path.Parse.
func (b *Builder) AddPath(p path.Path, v value.Value) error {
	if err := checkLimits(p); err != nil {
		return err
	}
	w := walker{entry: p, segs: p}
	if p.IsRoot() || p[0].Kind == path.IndexSegment {
		w.segs = append(path.Path{path.Field("")}, p...)
		w.synthetic = true
	}
	return w.store(b.root, v)
}

// Value freezes the accumulated tree.
func (b *Builder) Value() value.Value {
	if len(b.root.members) == 1 && b.root.members[0].key == "" {
		return b.root.members[0].child.freeze()
	}
	return b.root.freeze()
}

type walker struct {
	entry     path.Path
	segs      path.Path
	synthetic bool
}

func (w walker) store(root *node, v value.Value) error {
	cur := root
	for i, seg := range w.segs {
		if err := w.conform(cur, seg, i); err != nil {
			return err
		}
		last := i == len(w.segs)-1

		var slot **node
		switch seg.Kind {
		case path.FieldSegment:
			slot = cur.field(seg.Name)
		case path.IndexSegment:
			slot = cur.item(seg.Index)
		}

		if last {
			return w.assign(slot, v, i+1)
		}
		if *slot == nil {
			*slot = newContainerFor(w.segs[i+1])
		}
		cur = *slot
	}
	return nil
}

// conform makes n a container of the kind seg needs. An empty object or
// array leaf is promoted to a container of the same kind.
func (w walker) conform(n *node, seg path.Segment, depth int) error {
	want := objectNode
	if seg.Kind == path.IndexSegment {
		want = arrayNode
	}
	if n.kind == want {
		return nil
	}
	if n.kind == leafNode && n.leaf.IsEmptyContainer() && containerKind(n.leaf) == want {
		n.promote(want)
		return nil
	}
	return w.conflict(depth, want.String(), n.describe())
}

func (w walker) assign(slot **node, v value.Value, depth int) error {
	existing := *slot
	if existing == nil || existing.kind == leafNode {
		*slot = newLeafNode(v)
		return nil
	}
	if v.IsEmptyContainer() && containerKind(v) == existing.kind {
		return nil
	}
	return w.conflict(depth, v.Kind().String(), existing.describe())
}

func (w walker) conflict(depth int, expected, actual string) error {
	slot := w.segs[:depth]
	if w.synthetic && len(slot) > 0 {
		slot = slot[1:]
	}
	return &PathConflictError{
		Path:     path.Format(w.entry),
		Slot:     path.Format(slot),
		Expected: expected,
		Actual:   actual,
	}
}

func checkLimits(p path.Path) error {
	if len(p) > path.MaxDepth {
		return &path.MalformedPathError{Path: path.Format(p), Reason: fmt.Sprintf("more than %d segments", path.MaxDepth)}
	}
	for _, seg := range p {
		if seg.Kind == path.IndexSegment && (seg.Index < 0 || seg.Index > path.MaxIndex) {
			return &path.MalformedPathError{Path: path.Format(p), Reason: fmt.Sprintf("index %d outside 0..%d", seg.Index, path.MaxIndex)}
		}
	}
	return nil
}

func newContainerFor(next path.Segment) *node {
	if next.Kind == path.IndexSegment {
		return newArrayNode()
	}
	return newObjectNode()
}

func containerKind(v value.Value) nodeKind {
	switch v.Kind() {
	case value.KindObject:
		return objectNode
	case value.KindArray:
		return arrayNode
	default:
		return leafNode
	}
}
